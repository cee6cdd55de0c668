package aero

import (
	"math"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/roots"
)

func vars(names ...string) []string { return names }

var def = formula.Define

// mainTable returns the numbered relations. Units are SI throughout:
// N, m, m², kg/m³, m/s, W, rad.
func mainTable(c Constants) map[int][]formula.Descriptor {
	return map[int][]formula.Descriptor{
		// Aspect ratio.
		1: {
			def("ar", vars("b", "s"), func(x ...float64) float64 { return x[0] * x[0] / x[1] }),
			def("s", vars("ar", "b"), func(x ...float64) float64 { return x[1] * x[1] / x[0] }),
			def("b", vars("ar", "s"), func(x ...float64) float64 { return math.Sqrt(x[0] * x[1]) }),
		},
		// Wing loading.
		2: {
			def("ws", vars("w", "s"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("w", vars("ws", "s"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("s", vars("w", "ws"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
		// Weight.
		3: {
			def("w", vars("m"), func(x ...float64) float64 { return x[0] * c.G }),
			def("m", vars("w"), func(x ...float64) float64 { return x[0] / c.G }),
		},
		// Dynamic pressure.
		4: {
			def("q", vars("rho", "v"), func(x ...float64) float64 { return 0.5 * x[0] * x[1] * x[1] }),
			def("v", vars("q", "rho"), func(x ...float64) float64 { return math.Sqrt(2 * x[0] / x[1]) }),
			def("rho", vars("q", "v"), func(x ...float64) float64 { return 2 * x[0] / (x[1] * x[1]) }),
		},
		// Lift.
		5: {
			def("l", vars("q", "s", "cl"), func(x ...float64) float64 { return x[0] * x[1] * x[2] }),
			def("cl", vars("l", "q", "s"), func(x ...float64) float64 { return x[0] / (x[1] * x[2]) }),
			def("q", vars("l", "s", "cl"), func(x ...float64) float64 { return x[0] / (x[1] * x[2]) }),
			def("s", vars("l", "q", "cl"), func(x ...float64) float64 { return x[0] / (x[1] * x[2]) }),
		},
		// Drag.
		6: {
			def("d", vars("q", "s", "cd"), func(x ...float64) float64 { return x[0] * x[1] * x[2] }),
			def("cd", vars("d", "q", "s"), func(x ...float64) float64 { return x[0] / (x[1] * x[2]) }),
		},
		// Drag build-up: parasite plus induced.
		7: {
			def("cd", vars("cd0", "cdi"), func(x ...float64) float64 { return x[0] + x[1] }),
			def("cd0", vars("cd", "cdi"), func(x ...float64) float64 { return x[0] - x[1] }),
			def("cdi", vars("cd", "cd0"), func(x ...float64) float64 { return x[0] - x[1] }),
		},
		// Induced drag coefficient.
		8: {
			def("cdi", vars("cl", "e", "ar"), func(x ...float64) float64 { return x[0] * x[0] / (math.Pi * x[1] * x[2]) }),
			def("cl", vars("cdi", "e", "ar"), func(x ...float64) float64 { return math.Sqrt(x[0] * math.Pi * x[1] * x[2]) }),
			def("e", vars("cl", "cdi", "ar"), func(x ...float64) float64 { return x[0] * x[0] / (math.Pi * x[1] * x[2]) }),
			def("ar", vars("cl", "cdi", "e"), func(x ...float64) float64 { return x[0] * x[0] / (math.Pi * x[1] * x[2]) }),
		},
		// Induced drag factor of the parabolic polar.
		9: {
			def("k", vars("e", "ar"), func(x ...float64) float64 { return 1 / (math.Pi * x[0] * x[1]) }),
			def("e", vars("k", "ar"), func(x ...float64) float64 { return 1 / (math.Pi * x[0] * x[1]) }),
			def("ar", vars("k", "e"), func(x ...float64) float64 { return 1 / (math.Pi * x[0] * x[1]) }),
		},
		// Lift-to-drag ratio.
		10: {
			def("ld", vars("cl", "cd"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("cl", vars("ld", "cd"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("cd", vars("cl", "ld"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
		// Lift coefficient in level flight.
		11: {
			def("cl", vars("ws", "rho", "v"), func(x ...float64) float64 { return 2 * x[0] / (x[1] * x[2] * x[2]) }),
			def("ws", vars("cl", "rho", "v"), func(x ...float64) float64 { return 0.5 * x[0] * x[1] * x[2] * x[2] }),
			def("v", vars("ws", "rho", "cl"), func(x ...float64) float64 { return math.Sqrt(2 * x[0] / (x[1] * x[2])) }),
			def("rho", vars("ws", "cl", "v"), func(x ...float64) float64 { return 2 * x[0] / (x[1] * x[2] * x[2]) }),
		},
		// Stall speed.
		12: {
			def("vstall", vars("ws", "rho", "clmax"), func(x ...float64) float64 { return math.Sqrt(2 * x[0] / (x[1] * x[2])) }),
			def("clmax", vars("ws", "rho", "vstall"), func(x ...float64) float64 { return 2 * x[0] / (x[1] * x[2] * x[2]) }),
			def("ws", vars("rho", "vstall", "clmax"), func(x ...float64) float64 { return 0.5 * x[0] * x[1] * x[1] * x[2] }),
		},
		// Glide angle.
		13: {
			def("gamma", vars("ld"), func(x ...float64) float64 { return math.Atan(1 / x[0]) }),
			def("ld", vars("gamma"), func(x ...float64) float64 { return 1 / math.Tan(x[0]) }),
		},
		// Sink rate.
		14: {
			def("vz", vars("v", "gamma"), func(x ...float64) float64 { return x[0] * math.Sin(x[1]) }),
			def("v", vars("vz", "gamma"), func(x ...float64) float64 { return x[0] / math.Sin(x[1]) }),
			def("gamma", vars("vz", "v"), func(x ...float64) float64 { return math.Asin(x[0] / x[1]) }),
		},
		// Power required.
		15: {
			def("p", vars("d", "v"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("d", vars("p", "v"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("v", vars("p", "d"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
		// Propeller efficiency: power available from shaft power.
		16: {
			def("pa", vars("eta", "pshaft"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("eta", vars("pa", "pshaft"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("pshaft", vars("pa", "eta"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
		// Load factor in a level turn.
		17: {
			def("n", vars("phi"), func(x ...float64) float64 { return 1 / math.Cos(x[0]) }),
			def("phi", vars("n"), func(x ...float64) float64 { return math.Acos(1 / x[0]) }),
		},
		// Turn radius.
		18: {
			def("r", vars("v", "phi"), func(x ...float64) float64 { return x[0] * x[0] / (c.G * math.Tan(x[1])) }),
			def("v", vars("r", "phi"), func(x ...float64) float64 { return math.Sqrt(x[0] * c.G * math.Tan(x[1])) }),
			def("phi", vars("v", "r"), func(x ...float64) float64 { return math.Atan(x[0] * x[0] / (x[1] * c.G)) }),
		},
		// Turn rate.
		19: {
			def("omega", vars("v", "r"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("v", vars("omega", "r"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("r", vars("v", "omega"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
		// Reynolds number on the mean chord.
		20: {
			def("re", vars("rho", "v", "c", "mu"), func(x ...float64) float64 { return x[0] * x[1] * x[2] / x[3] }),
			def("v", vars("re", "rho", "c", "mu"), func(x ...float64) float64 { return x[0] * x[3] / (x[1] * x[2]) }),
			def("c", vars("re", "rho", "v", "mu"), func(x ...float64) float64 { return x[0] * x[3] / (x[1] * x[2]) }),
			def("mu", vars("rho", "v", "c", "re"), func(x ...float64) float64 { return x[0] * x[1] * x[2] / x[3] }),
		},
		// Mean chord.
		21: {
			def("c", vars("s", "b"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("s", vars("c", "b"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("b", vars("s", "c"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
		// Minimum-drag speed.
		22: {
			def("vmd", vars("ws", "rho", "k", "cd0"), func(x ...float64) float64 {
				return math.Sqrt(2*x[0]/x[1]) * math.Pow(x[2]/x[3], 0.25)
			}),
			def("ws", vars("vmd", "rho", "k", "cd0"), func(x ...float64) float64 {
				return 0.5 * x[1] * x[0] * x[0] / math.Sqrt(x[2]/x[3])
			}),
			def("rho", vars("ws", "vmd", "k", "cd0"), func(x ...float64) float64 {
				return 2 * x[0] * math.Sqrt(x[2]/x[3]) / (x[1] * x[1])
			}),
			def("k", vars("vmd", "ws", "rho", "cd0"), func(x ...float64) float64 {
				r := x[2] * x[0] * x[0] / (2 * x[1])
				return x[3] * r * r
			}),
			def("cd0", vars("vmd", "ws", "rho", "k"), func(x ...float64) float64 {
				r := x[2] * x[0] * x[0] / (2 * x[1])
				return x[3] / (r * r)
			}),
		},
		// Maximum lift-to-drag ratio.
		23: {
			def("ldmax", vars("k", "cd0"), func(x ...float64) float64 { return 1 / (2 * math.Sqrt(x[0]*x[1])) }),
			def("k", vars("ldmax", "cd0"), func(x ...float64) float64 { return 1 / (4 * x[0] * x[0] * x[1]) }),
			def("cd0", vars("ldmax", "k"), func(x ...float64) float64 { return 1 / (4 * x[0] * x[0] * x[1]) }),
		},
		// Power required over the parabolic polar.
		24: powerRequired(),
		// Minimum-power speed.
		25: {
			def("vmp", vars("vmd"), func(x ...float64) float64 { return x[0] / math.Pow(3, 0.25) }),
			def("vmd", vars("vmp"), func(x ...float64) float64 { return x[0] * math.Pow(3, 0.25) }),
		},
		// Rate of climb from excess power.
		26: {
			def("roc", vars("pa", "p", "w"), func(x ...float64) float64 { return (x[0] - x[1]) / x[2] }),
			def("pa", vars("roc", "p", "w"), func(x ...float64) float64 { return x[0]*x[2] + x[1] }),
			def("p", vars("pa", "roc", "w"), func(x ...float64) float64 { return x[0] - x[1]*x[2] }),
			def("w", vars("pa", "p", "roc"), func(x ...float64) float64 { return (x[0] - x[1]) / x[2] }),
		},
		// Density ratio.
		27: {
			def("sigma", vars("rho"), func(x ...float64) float64 { return x[0] / c.Rho0 }),
			def("rho", vars("sigma"), func(x ...float64) float64 { return x[0] * c.Rho0 }),
		},
		// Equivalent airspeed.
		28: {
			def("veas", vars("v", "sigma"), func(x ...float64) float64 { return x[0] * math.Sqrt(x[1]) }),
			def("v", vars("veas", "sigma"), func(x ...float64) float64 { return x[0] / math.Sqrt(x[1]) }),
			def("sigma", vars("veas", "v"), func(x ...float64) float64 {
				r := x[0] / x[1]
				return r * r
			}),
		},
		// Mach number.
		29: {
			def("mach", vars("v", "a"), func(x ...float64) float64 { return x[0] / x[1] }),
			def("v", vars("mach", "a"), func(x ...float64) float64 { return x[0] * x[1] }),
			def("a", vars("v", "mach"), func(x ...float64) float64 { return x[0] / x[1] }),
		},
		// Speed of sound.
		30: {
			def("a", vars("temp"), func(x ...float64) float64 { return math.Sqrt(c.Gamma * c.R * x[0]) }),
			def("temp", vars("a"), func(x ...float64) float64 { return x[0] * x[0] / (c.Gamma * c.R) }),
		},
	}
}

// powerRequired is P = ½ρV³S·CD0 + 2kW²/(ρVS). Speed has no closed form:
// multiplying by V gives ½ρS·CD0·V⁴ − P·V + 2kW²/(ρS) = 0, whose two
// positive roots are the low- and high-speed points of the power curve.
// The high-speed branch is taken.
func powerRequired() []formula.Descriptor {
	return []formula.Descriptor{
		def("p", vars("rho", "v", "s", "cd0", "k", "w"), func(x ...float64) float64 {
			rho, v, s, cd0, k, w := x[0], x[1], x[2], x[3], x[4], x[5]
			return 0.5*rho*v*v*v*s*cd0 + 2*k*w*w/(rho*v*s)
		}),
		{
			Output: "v",
			Inputs: vars("p", "rho", "s", "cd0", "k", "w"),
			Roots:  roots.LargestPositive.Name(),
			Compute: func(x ...float64) float64 {
				p, rho, s, cd0, k, w := x[0], x[1], x[2], x[3], x[4], x[5]
				return roots.Solve(roots.LargestPositive, 0.5*rho*s*cd0, 0, 0, -p, 2*k*w*w/(rho*s))
			},
		},
		def("cd0", vars("p", "rho", "v", "s", "k", "w"), func(x ...float64) float64 {
			p, rho, v, s, k, w := x[0], x[1], x[2], x[3], x[4], x[5]
			return (p - 2*k*w*w/(rho*v*s)) / (0.5 * rho * v * v * v * s)
		}),
		def("k", vars("p", "rho", "v", "s", "cd0", "w"), func(x ...float64) float64 {
			p, rho, v, s, cd0, w := x[0], x[1], x[2], x[3], x[4], x[5]
			return (p - 0.5*rho*v*v*v*s*cd0) * rho * v * s / (2 * w * w)
		}),
		def("w", vars("p", "rho", "v", "s", "cd0", "k"), func(x ...float64) float64 {
			p, rho, v, s, cd0, k := x[0], x[1], x[2], x[3], x[4], x[5]
			return math.Sqrt((p - 0.5*rho*v*v*v*s*cd0) * rho * v * s / (2 * k))
		}),
	}
}
