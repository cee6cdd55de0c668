package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Ref identifies a catalog entry by its handbook number: Table is empty
// for the main numbered relations and an upper-case letter for an
// appendix.
type Ref struct {
	Table string
	Index int
}

// Main returns the reference of numbered relation i.
func Main(i int) Ref { return Ref{Index: i} }

// Appendix returns the reference of entry j in appendix letter.
func Appendix(letter string, j int) Ref { return Ref{Table: letter, Index: j} }

func (r Ref) String() string {
	return r.Table + strconv.Itoa(r.Index)
}

// Validate checks that r could name a handbook entry.
func (r Ref) Validate() error {
	if r.Index < 1 {
		return fmt.Errorf("%w: %q: index must be at least 1", ErrInvalidRef, r.String())
	}
	if r.Table == "" {
		return nil
	}
	if len(r.Table) != 1 || r.Table[0] < 'A' || r.Table[0] > 'Z' {
		return fmt.Errorf("%w: %q: appendix must be one letter A-Z", ErrInvalidRef, r.String())
	}
	return nil
}

// ParseRef reads "12" as main relation 12 and "A3" (or "a3") as entry 3
// of appendix A.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("%w: empty", ErrInvalidRef)
	}
	var r Ref
	if c := s[0]; (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		r.Table = strings.ToUpper(s[:1])
		s = s[1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidRef, r.Table+s)
	}
	r.Index = n
	if err := r.Validate(); err != nil {
		return Ref{}, err
	}
	return r, nil
}

// less orders main relations before appendices, appendices by letter,
// then by index.
func (r Ref) less(o Ref) bool {
	if r.Table != o.Table {
		return r.Table < o.Table
	}
	return r.Index < o.Index
}
