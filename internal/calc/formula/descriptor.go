// Package formula describes algebraic relations as sets of declared
// variants and solves them against a quantity record.
//
// A Descriptor is one variant: the ordered inputs it needs, the output it
// produces, and a pure compute function. A Group holds the variants of one
// relation and fills in whichever unknowns are derivable in a single
// relaxation pass.
package formula

import (
	"fmt"
	"math"
)

// Func computes an output from arguments given in the descriptor's input
// order. It returns NaN when the relation has no real solution for the
// arguments.
type Func func(args ...float64) float64

// Descriptor is one variant of an algebraic relation.
type Descriptor struct {
	Output  string
	Inputs  []string
	Compute Func

	// Roots names the root-selection policy for variants that invert a
	// polynomial. Empty for closed-form variants.
	Roots string
}

// Define is shorthand for a closed-form Descriptor.
func Define(output string, inputs []string, fn Func) Descriptor {
	return Descriptor{Output: output, Inputs: inputs, Compute: fn}
}

// Validate checks the descriptor's declared shape.
func (d Descriptor) Validate() error {
	if d.Output == "" {
		return fmt.Errorf("%w: missing output", ErrInvalidDescriptor)
	}
	if len(d.Inputs) == 0 {
		return fmt.Errorf("%w: %s has no inputs", ErrInvalidDescriptor, d.Output)
	}
	if d.Compute == nil {
		return fmt.Errorf("%w: %s has no compute function", ErrInvalidDescriptor, d.Output)
	}
	seen := make(map[string]bool, len(d.Inputs))
	for _, in := range d.Inputs {
		switch {
		case in == "":
			return fmt.Errorf("%w: %s has a blank input", ErrInvalidDescriptor, d.Output)
		case in == d.Output:
			return fmt.Errorf("%w: %s is listed among its own inputs", ErrInvalidDescriptor, d.Output)
		case seen[in]:
			return fmt.Errorf("%w: %s repeats input %s", ErrInvalidDescriptor, d.Output, in)
		}
		seen[in] = true
	}
	return nil
}

// Ready reports whether every input is present in known.
func (d Descriptor) Ready(known Names) bool {
	for _, in := range d.Inputs {
		if !known.Has(in) {
			return false
		}
	}
	return true
}

// Eval computes the output from the record. Missing inputs read as NaN.
// Non-finite results, and a compute function that panics, yield NaN.
func (d Descriptor) Eval(rec Record) (v float64) {
	args := make([]float64, len(d.Inputs))
	for i, in := range d.Inputs {
		x, ok := rec[in]
		if !ok {
			x = math.NaN()
		}
		args[i] = x
	}
	defer func() {
		if recover() != nil {
			v = math.NaN()
		}
	}()
	return Finite(d.Compute(args...))
}

// String renders the descriptor as "output(in1,in2)".
func (d Descriptor) String() string {
	s := d.Output + "("
	for i, in := range d.Inputs {
		if i > 0 {
			s += ","
		}
		s += in
	}
	return s + ")"
}

// Finite maps ±Inf to NaN so every domain failure has one representation.
func Finite(x float64) float64 {
	if math.IsInf(x, 0) {
		return math.NaN()
	}
	return x
}
