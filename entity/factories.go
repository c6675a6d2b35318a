package entity

import "github.com/MaMMoS-project/mammos-entity/ontology"

// Factory shortcuts for the concepts used most. Each binds one ontology
// label; value and options behave exactly as in New.

// Ms is the spontaneous magnetization.
func Ms(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "SpontaneousMagnetization", value, opts...)
}

// A is the exchange stiffness constant.
func A(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "ExchangeStiffnessConstant", value, opts...)
}

// Ku is the uniaxial anisotropy constant.
func Ku(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "UniaxialAnisotropyConstant", value, opts...)
}

// H is the external magnetic field.
func H(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "ExternalMagneticField", value, opts...)
}

// B is the magnetic flux density.
func B(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "MagneticFluxDensity", value, opts...)
}

// T is the thermodynamic temperature.
func T(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "ThermodynamicTemperature", value, opts...)
}

// Tc is the Curie temperature.
func Tc(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "CurieTemperature", value, opts...)
}

// M is the magnetization.
func M(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "Magnetization", value, opts...)
}

// Js is the spontaneous magnetic polarisation.
func Js(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "SpontaneousMagneticPolarisation", value, opts...)
}

// BHmax is the maximum energy product.
func BHmax(g ontology.Graph, value any, opts ...Option) (*Entity, error) {
	return New(g, "MaximumEnergyProduct", value, opts...)
}
