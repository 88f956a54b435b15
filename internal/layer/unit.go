package layer

import (
	"github.com/FlavioCFOliveira/digitbrain/internal/activations"
	"gonum.org/v1/gonum/floats"
)

// Unit is a single neuron of a Dense layer.
// It does not own storage: its weights are one row of the layer's arena and
// its bias is one slot of the layer's bias slice, so changes made through a
// Unit are changes to the layer.
type Unit struct {
	d   *Dense
	idx int
}

// UnitTrace is what a unit saw and produced during one activated call.
type UnitTrace struct {
	Input  []float64
	Sum    float64
	Output float64

	act activations.Activation
}

// Derivative returns the activation derivative at the traced weighted sum.
// For ReLU this is 1 when Sum > 0 and 0 otherwise, including Sum == 0.
func (t UnitTrace) Derivative() float64 {
	if t.act == nil {
		return activations.ReLU{}.Derivative(t.Sum)
	}
	return t.act.Derivative(t.Sum)
}

// Index returns the position of the unit inside its layer.
func (u Unit) Index() int {
	return u.idx
}

// NumInputs returns the fan-in of the unit.
func (u Unit) NumInputs() int {
	return u.d.inSize
}

// Weights returns the unit's weight row. The slice aliases the layer arena
// and its length is fixed.
func (u Unit) Weights() []float64 {
	in := u.d.inSize
	lo := u.idx * in
	return u.d.weights[lo : lo+in : lo+in]
}

// Bias returns the unit's bias.
func (u Unit) Bias() float64 {
	return u.d.biases[u.idx]
}

// SetBias replaces the unit's bias.
func (u Unit) SetBias(v float64) {
	u.d.biases[u.idx] = v
}

// Compute returns the activated output of the unit together with the trace
// needed to backpropagate through it.
func (u Unit) Compute(input []float64) (UnitTrace, error) {
	if err := checkLen("unit compute", input, u.d.inSize); err != nil {
		return UnitTrace{}, err
	}
	sum := u.weightedSum(input)
	return UnitTrace{
		Input:  append([]float64(nil), input...),
		Sum:    sum,
		Output: u.d.act.Activate(sum),
		act:    u.d.act,
	}, nil
}

// ComputeRaw returns bias + w·x with no activation applied.
func (u Unit) ComputeRaw(input []float64) (float64, error) {
	if err := checkLen("unit compute raw", input, u.d.inSize); err != nil {
		return 0, err
	}
	return u.weightedSum(input), nil
}

func (u Unit) weightedSum(input []float64) float64 {
	return u.d.biases[u.idx] + floats.Dot(u.Weights(), input)
}
