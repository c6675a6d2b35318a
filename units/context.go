package units

import "math"

// vacuum permeability, CODATA 2018
const mu0 = 1.25663706212e-6

// Context carries the enabled unit equivalencies for conversions. The zero
// value enables none.
type Context struct {
	temperature bool
	fluxField   bool
}

// Temperature returns a context with absolute-temperature-scale equivalence
// enabled (Kelvin <-> degree Celsius with offset).
func Temperature() *Context {
	return &Context{temperature: true}
}

// MagneticFluxField returns a context that additionally allows conversion
// between magnetic flux density (tesla) and magnetic field strength (A/m)
// through the vacuum permeability.
func MagneticFluxField() *Context {
	return &Context{fluxField: true}
}

// WithTemperature returns a copy of the context with temperature
// equivalence enabled.
func (c *Context) WithTemperature() *Context {
	out := *c
	out.temperature = true
	return &out
}

var (
	fluxDims  = Dims{dimMass: 1, dimTime: -2, dimCurrent: -1} // tesla
	fieldDims = Dims{dimCurrent: 1, dimLength: -1}            // A/m
)

// hasTemperature reports whether absolute-temperature-scale equivalence is
// enabled. Nil-safe, like the other context queries.
func (c *Context) hasTemperature() bool {
	return c != nil && c.temperature
}

// equivalentDims reports whether dims a can be converted to dims b under the
// context, and the extra multiplicative factor (applied after scaling a to
// SI) when an equivalency bridges them.
func (c *Context) equivalentDims(a, b Dims) (float64, bool) {
	if a == b {
		return 1, true
	}
	if c != nil && c.fluxField {
		if a == fluxDims && b == fieldDims {
			return 1 / mu0, true
		}
		if a == fieldDims && b == fluxDims {
			return mu0, true
		}
	}
	return 0, false
}

// conversion returns the function mapping values from unit u to unit target
// under the context. The multiplicative factor is computed once and snapped
// to the nearest integer when within round-off, so that e.g. cm -> mm is an
// exact factor of 10 (join keys rely on exact equality after conversion).
func (c *Context) conversion(u, target Unit) func(float64) float64 {
	extra, _ := c.equivalentDims(u.dims, target.dims)
	if c.hasTemperature() && (u.offset != 0 || target.offset != 0) {
		uScale, uOffset := u.Scale(), u.offset
		tScale, tOffset := target.Scale(), target.offset
		return func(v float64) float64 {
			return (v*uScale + uOffset - tOffset) / tScale
		}
	}
	factor := cleanFactor(u.Scale() * extra / target.Scale())
	return func(v float64) float64 {
		return v * factor
	}
}

// round-off guard for conversion factors that should be exact powers of ten
func cleanFactor(f float64) float64 {
	if r := math.Round(f); r != 0 && math.Abs(f-r) < 1e-9*math.Abs(r) {
		return r
	}
	return f
}
