// Package layer provides the fully connected layer of the engine and the
// Unit view over its parameters.
package layer

import (
	"math"
	"math/rand"

	"github.com/FlavioCFOliveira/digitbrain/internal/activations"
	"gonum.org/v1/gonum/mat"
)

// Dense is a fully connected layer.
// Parameters live in one contiguous arena per layer instead of per-unit slices.
type Dense struct {
	// Weights stored as row-major contiguous slice for cache efficiency
	// Shape: [out * in] where weight for output o, input i is at weights[o*in + i]
	weights []float64
	biases  []float64
	act     activations.Activation
	outSize int
	inSize  int

	// Gradient buffers filled by Backward
	gradWBuf []float64
	gradBBuf []float64
}

// Trace is the explicit record of one forward call through a layer.
type Trace struct {
	Input  []float64
	Sum    []float64
	Output []float64

	act activations.Activation
}

// Unit returns the trace of the i-th unit.
func (t *Trace) Unit(i int) UnitTrace {
	return UnitTrace{Input: t.Input, Sum: t.Sum[i], Output: t.Output[i], act: t.act}
}

// Derivative returns the activation derivative of the i-th unit at its traced sum.
func (t *Trace) Derivative(i int) float64 {
	return t.Unit(i).Derivative()
}

// InitLimit returns the bound of the uniform initialisation range for a unit
// with the given fan-in: sqrt(6 / (fanIn + 1)).
func InitLimit(fanIn int) float64 {
	return math.Sqrt(6.0 / float64(fanIn+1))
}

// NewDense creates a dense layer with out units of in inputs each.
// Every weight and bias is drawn uniformly from [-InitLimit(in), InitLimit(in)].
// A nil rng falls back to the math/rand global source.
func NewDense(in, out int, act activations.Activation, rng *rand.Rand) *Dense {
	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}

	limit := InitLimit(in)
	weights := make([]float64, out*in)
	biases := make([]float64, out)
	for o := 0; o < out; o++ {
		row := weights[o*in : (o+1)*in]
		for i := range row {
			row[i] = uniform()*2*limit - limit
		}
		biases[o] = uniform()*2*limit - limit
	}
	return newDense(in, out, act, weights, biases)
}

// NewDenseFromParams creates a dense layer from a flattened parameter slice
// laid out as Params returns it. params is copied and no random draws are made.
func NewDenseFromParams(in, out int, act activations.Activation, params []float64) (*Dense, error) {
	if err := checkLen("dense from params", params, out*in+out); err != nil {
		return nil, err
	}
	weights := append([]float64(nil), params[:out*in]...)
	biases := append([]float64(nil), params[out*in:]...)
	return newDense(in, out, act, weights, biases), nil
}

func newDense(in, out int, act activations.Activation, weights, biases []float64) *Dense {
	if act == nil {
		act = activations.ReLU{}
	}
	return &Dense{
		weights:  weights,
		biases:   biases,
		act:      act,
		outSize:  out,
		inSize:   in,
		gradWBuf: make([]float64, out*in),
		gradBBuf: make([]float64, out),
	}
}

// Forward returns the activated output of every unit, in unit order.
func (d *Dense) Forward(x []float64) ([]float64, error) {
	tr, err := d.ForwardTrace(x)
	if err != nil {
		return nil, err
	}
	return tr.Output, nil
}

// ForwardRaw returns bias + w·x for every unit with no activation.
func (d *Dense) ForwardRaw(x []float64) ([]float64, error) {
	if err := checkLen("dense forward raw", x, d.inSize); err != nil {
		return nil, err
	}
	out := make([]float64, d.outSize)
	for o := range out {
		out[o] = d.Unit(o).weightedSum(x)
	}
	return out, nil
}

// ForwardTrace runs the activated path and returns its trace.
func (d *Dense) ForwardTrace(x []float64) (*Trace, error) {
	if err := checkLen("dense forward", x, d.inSize); err != nil {
		return nil, err
	}
	tr := &Trace{
		Input:  append([]float64(nil), x...),
		Sum:    make([]float64, d.outSize),
		Output: make([]float64, d.outSize),
		act:    d.act,
	}
	for o := 0; o < d.outSize; o++ {
		sum := d.Unit(o).weightedSum(x)
		tr.Sum[o] = sum
		tr.Output[o] = d.act.Activate(sum)
	}
	return tr, nil
}

// Backward stores the parameter gradients for the given unit errors:
// dW[o, i] = delta[o] * input[i] and dB[o] = delta[o].
func (d *Dense) Backward(delta, input []float64) error {
	if err := checkLen("dense backward delta", delta, d.outSize); err != nil {
		return err
	}
	if err := checkLen("dense backward input", input, d.inSize); err != nil {
		return err
	}

	inSize := d.inSize
	for o := 0; o < d.outSize; o++ {
		dzo := delta[o]
		wBase := o * inSize
		for i := 0; i < inSize; i++ {
			d.gradWBuf[wBase+i] = dzo * input[i]
		}
		d.gradBBuf[o] = dzo
	}
	return nil
}

// InputError propagates unit errors back to the layer inputs:
// e[i] = sum_o(delta[o] * W[o, i]), i.e. Wᵀ·delta.
func (d *Dense) InputError(delta []float64) ([]float64, error) {
	if err := checkLen("dense input error", delta, d.outSize); err != nil {
		return nil, err
	}
	var e mat.VecDense
	e.MulVec(d.Matrix().T(), mat.NewVecDense(d.outSize, delta))
	return e.RawVector().Data, nil
}

// Unit returns a view of the i-th unit.
func (d *Dense) Unit(i int) Unit {
	if i < 0 || i >= d.outSize {
		panic("layer: unit index out of range")
	}
	return Unit{d: d, idx: i}
}

// Units returns views of every unit in order.
func (d *Dense) Units() []Unit {
	units := make([]Unit, d.outSize)
	for i := range units {
		units[i] = Unit{d: d, idx: i}
	}
	return units
}

// Matrix returns an out×in gonum view of the weights. It shares the arena.
func (d *Dense) Matrix() *mat.Dense {
	return mat.NewDense(d.outSize, d.inSize, d.weights)
}

// Params returns all dense layer parameters flattened: weights then biases.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, len(d.weights)+len(d.biases))
	params = append(params, d.weights...)
	params = append(params, d.biases...)
	return params
}

// SetParams updates weights and biases from a flattened slice (in-place).
func (d *Dense) SetParams(params []float64) error {
	if err := checkLen("dense set params", params, len(d.weights)+len(d.biases)); err != nil {
		return err
	}
	copy(d.weights, params[:len(d.weights)])
	copy(d.biases, params[len(d.weights):])
	return nil
}

// NumParams returns out*in + out.
func (d *Dense) NumParams() int {
	return len(d.weights) + len(d.biases)
}

// Weights returns the weight arena directly.
func (d *Dense) Weights() []float64 {
	return d.weights
}

// Biases returns the biases slice directly.
func (d *Dense) Biases() []float64 {
	return d.biases
}

// WeightGrads returns the weight gradient buffer filled by Backward.
func (d *Dense) WeightGrads() []float64 {
	return d.gradWBuf
}

// BiasGrads returns the bias gradient buffer filled by Backward.
func (d *Dense) BiasGrads() []float64 {
	return d.gradBBuf
}

// SetWeight sets a single weight at (row, col).
func (d *Dense) SetWeight(row, col int, val float64) {
	d.weights[row*d.inSize+col] = val
}

// Weight gets a single weight at (row, col).
func (d *Dense) Weight(row, col int) float64 {
	return d.weights[row*d.inSize+col]
}

// SetBias sets a single bias.
func (d *Dense) SetBias(idx int, val float64) {
	d.biases[idx] = val
}

// Bias gets a single bias.
func (d *Dense) Bias(idx int) float64 {
	return d.biases[idx]
}

// InSize returns the input size of the layer.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int {
	return d.outSize
}

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation {
	return d.act
}
