package roots

import (
	"fmt"
	"math"
)

// Policy picks one physically meaningful root from the real roots of a
// polynomial, given in ascending order. Pick returns NaN when no root
// qualifies.
type Policy interface {
	Pick(real []float64) float64
	Name() string
}

type smallestPositive struct{}

func (smallestPositive) Name() string { return "smallest positive real root" }

func (smallestPositive) Pick(rs []float64) float64 {
	for _, r := range rs {
		if r > 0 {
			return r
		}
	}
	return math.NaN()
}

type largestPositive struct{}

func (largestPositive) Name() string { return "largest positive real root" }

func (largestPositive) Pick(rs []float64) float64 {
	if len(rs) == 0 || rs[len(rs)-1] <= 0 {
		return math.NaN()
	}
	return rs[len(rs)-1]
}

type index int

func (i index) Name() string { return fmt.Sprintf("real root #%d in ascending order", int(i)) }

func (i index) Pick(rs []float64) float64 {
	if int(i) < 0 || int(i) >= len(rs) {
		return math.NaN()
	}
	return rs[i]
}

var (
	// SmallestPositive selects the smallest strictly positive root.
	SmallestPositive Policy = smallestPositive{}
	// LargestPositive selects the largest root if it is strictly positive.
	LargestPositive Policy = largestPositive{}
)

// Index selects the i-th real root in ascending order.
func Index(i int) Policy { return index(i) }
