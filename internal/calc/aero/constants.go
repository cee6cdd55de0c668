package aero

import (
	"errors"
	"fmt"
)

// Constants are the physical constants the formula tables are built with.
// They are copied into the formulas when the catalog is built.
type Constants struct {
	G           float64 `json:"g" mapstructure:"g"`                       // m/s²
	Rho0        float64 `json:"rho0" mapstructure:"rho0"`                 // sea-level density, kg/m³
	T0          float64 `json:"t0" mapstructure:"t0"`                     // sea-level temperature, K
	P0          float64 `json:"p0" mapstructure:"p0"`                     // sea-level pressure, Pa
	Lapse       float64 `json:"lapse" mapstructure:"lapse"`               // tropospheric lapse rate, K/m
	R           float64 `json:"r" mapstructure:"r"`                       // specific gas constant of air, J/(kg·K)
	Gamma       float64 `json:"gamma" mapstructure:"gamma"`               // heat capacity ratio
	SutherlandC float64 `json:"sutherland_c" mapstructure:"sutherland_c"` // kg/(m·s·√K)
	SutherlandS float64 `json:"sutherland_s" mapstructure:"sutherland_s"` // K
}

// DefaultConstants returns the ICAO standard atmosphere values.
func DefaultConstants() Constants {
	return Constants{
		G:           9.80665,
		Rho0:        1.225,
		T0:          288.15,
		P0:          101325,
		Lapse:       0.0065,
		R:           287.05287,
		Gamma:       1.4,
		SutherlandC: 1.458e-6,
		SutherlandS: 110.4,
	}
}

var ErrInvalidConstants = errors.New("aero: invalid constants")

// Validate requires every constant to be strictly positive.
func (c Constants) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"g", c.G}, {"rho0", c.Rho0}, {"t0", c.T0}, {"p0", c.P0}, {"lapse", c.Lapse},
		{"r", c.R}, {"gamma", c.Gamma}, {"sutherland_c", c.SutherlandC}, {"sutherland_s", c.SutherlandS},
	}
	for _, f := range fields {
		if !(f.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConstants, f.name, f.v)
		}
	}
	return nil
}
