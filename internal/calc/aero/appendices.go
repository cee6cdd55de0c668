package aero

import (
	"math"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/roots"
)

const (
	knot       = 1852.0 / 3600 // m/s
	foot       = 0.3048        // m
	horsepower = 745.69987158  // W
)

// appendices returns the lettered tables: A standard atmosphere,
// B unit conversions, C propeller coefficients, D chart-only entries.
func appendices(c Constants) map[string]map[int][]formula.Descriptor {
	return map[string]map[int][]formula.Descriptor{
		"A": atmosphere(c),
		"B": {
			1: {
				def("vkt", vars("v"), func(x ...float64) float64 { return x[0] / knot }),
				def("v", vars("vkt"), func(x ...float64) float64 { return x[0] * knot }),
			},
			2: {
				def("hft", vars("h"), func(x ...float64) float64 { return x[0] / foot }),
				def("h", vars("hft"), func(x ...float64) float64 { return x[0] * foot }),
			},
			3: {
				def("hp", vars("pshaft"), func(x ...float64) float64 { return x[0] / horsepower }),
				def("pshaft", vars("hp"), func(x ...float64) float64 { return x[0] * horsepower }),
			},
		},
		"C": propeller(),
		// Read off published charts; nothing to solve.
		"D": {
			1: nil,
			2: nil,
		},
	}
}

// atmosphere covers the ISA troposphere.
func atmosphere(c Constants) map[int][]formula.Descriptor {
	exp := c.G / (c.Lapse * c.R)
	return map[int][]formula.Descriptor{
		// Temperature with altitude.
		1: {
			def("temp", vars("h"), func(x ...float64) float64 { return c.T0 - c.Lapse*x[0] }),
			def("h", vars("temp"), func(x ...float64) float64 { return (c.T0 - x[0]) / c.Lapse }),
		},
		// Pressure with temperature.
		2: {
			def("press", vars("temp"), func(x ...float64) float64 { return c.P0 * math.Pow(x[0]/c.T0, exp) }),
			def("temp", vars("press"), func(x ...float64) float64 { return c.T0 * math.Pow(x[0]/c.P0, 1/exp) }),
		},
		// Equation of state.
		3: {
			def("rho", vars("press", "temp"), func(x ...float64) float64 { return x[0] / (c.R * x[1]) }),
			def("press", vars("rho", "temp"), func(x ...float64) float64 { return x[0] * c.R * x[1] }),
			def("temp", vars("press", "rho"), func(x ...float64) float64 { return x[0] / (x[1] * c.R) }),
		},
		// Sutherland's law for dynamic viscosity.
		4: sutherland(c),
	}
}

// sutherland is μ = C·T^1.5/(T+S). Inverting for T with x = √T gives
// C·x³ − μ·x² − μ·S = 0, which has exactly one positive root for μ > 0.
func sutherland(c Constants) []formula.Descriptor {
	return []formula.Descriptor{
		def("mu", vars("temp"), func(x ...float64) float64 {
			t := x[0]
			return c.SutherlandC * math.Pow(t, 1.5) / (t + c.SutherlandS)
		}),
		{
			Output: "temp",
			Inputs: vars("mu"),
			Roots:  roots.LargestPositive.Name(),
			Compute: func(x ...float64) float64 {
				mu := x[0]
				root := roots.Solve(roots.LargestPositive, c.SutherlandC, -mu, 0, -mu*c.SutherlandS)
				return root * root
			},
		},
	}
}

// propeller covers the non-dimensional propeller coefficients; rps is
// revolutions per second and dp the propeller diameter.
func propeller() map[int][]formula.Descriptor {
	return map[int][]formula.Descriptor{
		// Advance ratio.
		1: {
			def("j", vars("v", "rps", "dp"), func(x ...float64) float64 { return x[0] / (x[1] * x[2]) }),
			def("v", vars("j", "rps", "dp"), func(x ...float64) float64 { return x[0] * x[1] * x[2] }),
			def("rps", vars("v", "j", "dp"), func(x ...float64) float64 { return x[0] / (x[1] * x[2]) }),
			def("dp", vars("v", "j", "rps"), func(x ...float64) float64 { return x[0] / (x[1] * x[2]) }),
		},
		// Thrust coefficient.
		2: {
			def("t", vars("ct", "rho", "rps", "dp"), func(x ...float64) float64 {
				return x[0] * x[1] * x[2] * x[2] * math.Pow(x[3], 4)
			}),
			def("ct", vars("t", "rho", "rps", "dp"), func(x ...float64) float64 {
				return x[0] / (x[1] * x[2] * x[2] * math.Pow(x[3], 4))
			}),
			def("rps", vars("t", "ct", "rho", "dp"), func(x ...float64) float64 {
				return math.Sqrt(x[0] / (x[1] * x[2] * math.Pow(x[3], 4)))
			}),
			def("dp", vars("t", "ct", "rho", "rps"), func(x ...float64) float64 {
				return math.Pow(x[0]/(x[1]*x[2]*x[3]*x[3]), 0.25)
			}),
		},
		// Power coefficient.
		3: {
			def("pshaft", vars("cp", "rho", "rps", "dp"), func(x ...float64) float64 {
				return x[0] * x[1] * math.Pow(x[2], 3) * math.Pow(x[3], 5)
			}),
			def("cp", vars("pshaft", "rho", "rps", "dp"), func(x ...float64) float64 {
				return x[0] / (x[1] * math.Pow(x[2], 3) * math.Pow(x[3], 5))
			}),
			def("rps", vars("pshaft", "cp", "rho", "dp"), func(x ...float64) float64 {
				return math.Cbrt(x[0] / (x[1] * x[2] * math.Pow(x[3], 5)))
			}),
			def("dp", vars("pshaft", "cp", "rho", "rps"), func(x ...float64) float64 {
				return math.Pow(x[0]/(x[1]*x[2]*math.Pow(x[3], 3)), 0.2)
			}),
		},
		// Propeller efficiency from the coefficients.
		4: {
			def("eta", vars("j", "ct", "cp"), func(x ...float64) float64 { return x[0] * x[1] / x[2] }),
			def("j", vars("eta", "ct", "cp"), func(x ...float64) float64 { return x[0] * x[2] / x[1] }),
			def("ct", vars("eta", "j", "cp"), func(x ...float64) float64 { return x[0] * x[2] / x[1] }),
			def("cp", vars("j", "ct", "eta"), func(x ...float64) float64 { return x[0] * x[1] / x[2] }),
		},
		// Thrust power.
		5: {
			def("pa", vars("t", "v"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("t", vars("pa", "v"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("v", vars("pa", "t"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
	}
}
