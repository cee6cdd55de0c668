package formula

import (
	"encoding/json"
	"math"
	"sort"
)

// Record maps quantity mnemonics (w, cl, v, ar, ...) to values. A mnemonic
// denotes the same physical quantity everywhere in the catalog. Records are
// per-session and must not be shared between concurrent calculations.
type Record map[string]float64

// Names is a set of quantity mnemonics.
type Names map[string]struct{}

func NewNames(names ...string) Names {
	out := make(Names, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

func (n Names) Has(name string) bool {
	_, ok := n[name]
	return ok
}

// Names returns a snapshot of the keys currently present in the record.
func (r Record) Names() Names {
	out := make(Names, len(r))
	for k := range r {
		out[k] = struct{}{}
	}
	return out
}

func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the record's mnemonics in lexical order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes non-finite values as null so a record holding
// domain failures still serializes.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]*float64, len(r))
	for k, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[k] = nil
			continue
		}
		v := v
		out[k] = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON treats null as an unknown quantity and leaves it out.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in map[string]*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Record, len(in))
	for k, v := range in {
		if v != nil {
			out[k] = *v
		}
	}
	*r = out
	return nil
}
