// Package units provides the unit algebra used by mammos-entity: parsing
// unit expressions from strings (both human-readable "kA / m" and UCUM
// "A.m-1" forms), dimensional equivalence checks, prefix-aware numeric
// conversion, and equivalency contexts (absolute temperature scales,
// magnetic flux <-> field strength).
//
// A Unit keeps its factored form for display, so "kA / m" stays "kA / m"
// rather than collapsing to a scale factor. A Quantity pairs an
// n-dimensional numeric Array with a Unit.
package units

import (
	"math"
	"strconv"
	"strings"
)

// symbolDef describes a unit symbol: its dimensions, its scale relative to
// the coherent SI unit of those dimensions, and an additive offset for
// absolute temperature scales.
type symbolDef struct {
	dims   Dims
	scale  float64
	offset float64
}

// symbols maps unit symbols to their definitions. Symbols are matched whole
// before any prefix splitting, so "T" is always tesla and "mT" is millitesla.
var symbols = map[string]symbolDef{
	// SI base units (gram carries the 1e-3 so that "kg" is coherent)
	"m":   {dims: dimsLength, scale: 1},
	"g":   {dims: dimsMass, scale: 1e-3},
	"s":   {dims: dimsTime, scale: 1},
	"A":   {dims: dimsCurrent, scale: 1},
	"K":   {dims: dimsTemperature, scale: 1},
	"mol": {dims: dimsAmount, scale: 1},
	"cd":  {dims: dimsLuminous, scale: 1},
	"rad": {dims: dimsAngle, scale: 1},

	// named coherent derived units
	"Hz": {dims: Dims{dimTime: -1}, scale: 1},
	"N":  {dims: Dims{dimMass: 1, dimLength: 1, dimTime: -2}, scale: 1},
	"Pa": {dims: Dims{dimMass: 1, dimLength: -1, dimTime: -2}, scale: 1},
	"J":  {dims: Dims{dimMass: 1, dimLength: 2, dimTime: -2}, scale: 1},
	"W":  {dims: Dims{dimMass: 1, dimLength: 2, dimTime: -3}, scale: 1},
	"C":  {dims: Dims{dimCurrent: 1, dimTime: 1}, scale: 1},
	"V":  {dims: Dims{dimMass: 1, dimLength: 2, dimTime: -3, dimCurrent: -1}, scale: 1},
	"T":  {dims: Dims{dimMass: 1, dimTime: -2, dimCurrent: -1}, scale: 1},
	"Wb": {dims: Dims{dimMass: 1, dimLength: 2, dimTime: -2, dimCurrent: -1}, scale: 1},

	// accepted non-SI units
	"Cel":      {dims: dimsTemperature, scale: 1, offset: 273.15},
	"Angstrom": {dims: dimsLength, scale: 1e-10},
	"deg":      {dims: dimsAngle, scale: math.Pi / 180},
	"min":      {dims: dimsTime, scale: 60},
	"h":        {dims: dimsTime, scale: 3600},
	"eV":       {dims: Dims{dimMass: 1, dimLength: 2, dimTime: -2}, scale: 1.602176634e-19},
}

// prefixes maps SI prefixes to their factors. Two-character prefixes are
// tried before single-character ones during parsing.
var prefixes = map[string]float64{
	"Q": 1e30, "R": 1e27, "Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15,
	"T": 1e12, "G": 1e9, "M": 1e6, "k": 1e3, "h": 1e2, "da": 1e1,
	"d": 1e-1, "c": 1e-2, "m": 1e-3, "u": 1e-6, "µ": 1e-6, "n": 1e-9,
	"p": 1e-12, "f": 1e-15, "a": 1e-18, "z": 1e-21, "y": 1e-24,
	"r": 1e-27, "q": 1e-30,
}

// factor is one symbol of a factored unit expression, e.g. kA^1 or m^-1.
type factor struct {
	prefix string
	symbol string
	exp    int
}

// Unit is a parsed unit expression. The zero value is the dimensionless
// (empty) unit. Units are immutable values.
type Unit struct {
	factors []factor
	scale   float64 // multiplier to the coherent SI unit of dims
	offset  float64 // additive offset to SI (absolute temperature scales)
	dims    Dims
}

// Dimensionless is the empty unit.
var Dimensionless = Unit{scale: 1}

func fromFactors(factors []factor) (Unit, error) {
	u := Unit{factors: factors, scale: 1}
	for _, f := range factors {
		def := symbols[f.symbol]
		pf := 1.0
		if f.prefix != "" {
			pf = prefixes[f.prefix]
		}
		u.scale *= math.Pow(pf*def.scale, float64(f.exp))
		u.dims = u.dims.add(def.dims, f.exp)
	}
	// Offsets only survive for a bare, unprefixed symbol: in composite
	// expressions an absolute scale has no meaning.
	if len(factors) == 1 && factors[0].exp == 1 && factors[0].prefix == "" {
		u.offset = symbols[factors[0].symbol].offset
	}
	return u, nil
}

// Empty reports whether the unit has no factors at all (no unit recorded,
// as opposed to an explicitly dimensionless expression).
func (u Unit) Empty() bool {
	return len(u.factors) == 0
}

// Dims returns the dimension exponent vector.
func (u Unit) Dims() Dims {
	return u.dims
}

// Scale returns the multiplier to the coherent SI unit of the same
// dimensions.
func (u Unit) Scale() float64 {
	if u.scale == 0 {
		return 1 // zero value
	}
	return u.scale
}

// Offset returns the additive offset to SI for absolute scales (0 for
// everything but degree Celsius).
func (u Unit) Offset() float64 {
	return u.offset
}

// Equal reports physical equality: same dimensions, same scale, same offset.
// "kA/m" and "A/m" are not Equal; "A/m" and "A.m-1" are.
func (u Unit) Equal(other Unit) bool {
	if u.dims != other.dims || u.offset != other.offset {
		return false
	}
	a, b := u.Scale(), other.Scale()
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

// String renders the unit in the human-readable factored form used
// throughout the file formats: "A / m", "J / m3", "kg / (A s2)", "mK".
// The empty unit renders as "".
func (u Unit) String() string {
	if len(u.factors) == 0 {
		return ""
	}
	var num, den []string
	for _, f := range u.factors {
		part := f.prefix + f.symbol
		if e := abs(f.exp); e != 1 {
			part += strconv.Itoa(e)
		}
		if f.exp > 0 {
			num = append(num, part)
		} else {
			den = append(den, part)
		}
	}
	switch {
	case len(den) == 0:
		return strings.Join(num, " ")
	case len(num) == 0:
		return "1 / " + denPart(den)
	default:
		return strings.Join(num, " ") + " / " + denPart(den)
	}
}

func denPart(den []string) string {
	if len(den) == 1 {
		return den[0]
	}
	return "(" + strings.Join(den, " ") + ")"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SI returns the coherent SI unit with the same dimensions, rendered over
// the base symbols (kg, m, s, A, K, mol, cd, rad).
func (u Unit) SI() Unit {
	var factors []factor
	add := func(symbol, prefix string, exp int8) {
		if exp != 0 {
			factors = append(factors, factor{prefix: prefix, symbol: symbol, exp: int(exp)})
		}
	}
	add("g", "k", u.dims[dimMass])
	add("m", "", u.dims[dimLength])
	add("s", "", u.dims[dimTime])
	add("A", "", u.dims[dimCurrent])
	add("K", "", u.dims[dimTemperature])
	add("mol", "", u.dims[dimAmount])
	add("cd", "", u.dims[dimLuminous])
	add("rad", "", u.dims[dimAngle])
	si, _ := fromFactors(factors)
	return si
}

// pow applies an integer exponent to every factor of the unit.
func (u Unit) pow(exp int) Unit {
	factors := make([]factor, len(u.factors))
	for i, f := range u.factors {
		factors[i] = factor{prefix: f.prefix, symbol: f.symbol, exp: f.exp * exp}
	}
	out, _ := fromFactors(factors)
	return out
}

// Mul returns the product of two units, keeping both factored forms.
func (u Unit) Mul(other Unit) Unit {
	factors := make([]factor, 0, len(u.factors)+len(other.factors))
	factors = append(factors, u.factors...)
	factors = append(factors, other.factors...)
	out, _ := fromFactors(factors)
	return out
}

// Div returns the quotient of two units.
func (u Unit) Div(other Unit) Unit {
	return u.Mul(other.pow(-1))
}
