package units

// Dimension indices into a Dims vector. Angle is kept as its own dimension so
// that radians stay distinct from plain dimensionless values.
const (
	dimLength = iota
	dimMass
	dimTime
	dimCurrent
	dimTemperature
	dimAmount
	dimLuminous
	dimAngle
	numDims
)

// Dims is the exponent vector of a unit over the SI base dimensions
// (plus angle).
type Dims [numDims]int8

// IsZero reports whether every exponent is zero (dimensionless).
func (d Dims) IsZero() bool {
	return d == Dims{}
}

func (d Dims) add(other Dims, exp int) Dims {
	for i := range d {
		d[i] += other[i] * int8(exp)
	}
	return d
}

var (
	dimsLength      = Dims{dimLength: 1}
	dimsMass        = Dims{dimMass: 1}
	dimsTime        = Dims{dimTime: 1}
	dimsCurrent     = Dims{dimCurrent: 1}
	dimsTemperature = Dims{dimTemperature: 1}
	dimsAmount      = Dims{dimAmount: 1}
	dimsLuminous    = Dims{dimLuminous: 1}
	dimsAngle       = Dims{dimAngle: 1}
)
