// Package net provides the feed-forward network: construction, inference,
// training and persistence.
package net

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/FlavioCFOliveira/digitbrain/internal/activations"
	"github.com/FlavioCFOliveira/digitbrain/internal/layer"
	"github.com/FlavioCFOliveira/digitbrain/internal/loss"
)

// Network is an ordered sequence of dense layers. Every layer but the last is
// evaluated with ReLU; the last one has the identity activation, so its output
// is the raw logit vector that feeds softmax.
//
// Infer and ForwardRaw never mutate the network. Training mutates parameters
// in place and must not run concurrently with any other call.
type Network struct {
	layers []*layer.Dense
	sizes  []int
	loss   loss.Loss

	rng       *rand.Rand
	logger    *log.Logger
	callbacks []Callback
}

// Trace is the per-layer record of one forward pass. Trace[i].Input is the
// input of layer i; the final entry holds the raw logits, with Derivative 1.
type Trace []*layer.Trace

// Logits returns the raw output of the final layer.
func (t Trace) Logits() []float64 {
	return t[len(t)-1].Output
}

// New creates a network from layer widths: sizes[0] is the input width and
// sizes[len(sizes)-1] the number of classes.
func New(sizes []int, opts ...Option) (*Network, error) {
	n, err := newNetwork(sizes, opts)
	if err != nil {
		return nil, err
	}
	n.layers = make([]*layer.Dense, len(sizes)-1)
	for i := range n.layers {
		n.layers[i] = layer.NewDense(sizes[i], sizes[i+1], layerActivation(i, len(n.layers)), n.rng)
	}
	return n, nil
}

// newNetwork validates sizes and applies opts without creating any layer.
func newNetwork(sizes []int, opts []Option) (*Network, error) {
	if err := validateSizes(sizes); err != nil {
		return nil, err
	}

	n := &Network{
		sizes:  append([]int(nil), sizes...),
		loss:   loss.CrossEntropy{Epsilon: LossEpsilon},
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.rng == nil {
		n.rng = defaultRand()
	}
	return n, nil
}

func validateSizes(sizes []int) error {
	if len(sizes) < 2 {
		return fmt.Errorf("%w: need at least 2 layer widths, got %d", ErrInvalidArchitecture, len(sizes))
	}
	for i, s := range sizes {
		if s <= 0 {
			return fmt.Errorf("%w: width %d at position %d", ErrInvalidArchitecture, s, i)
		}
	}
	return nil
}

// layerActivation is ReLU for hidden layers and identity for the last one,
// whose output is the logit vector.
func layerActivation(i, count int) activations.Activation {
	if i == count-1 {
		return activations.Linear{}
	}
	return activations.ReLU{}
}

// Infer runs a forward pass and returns the softmax probabilities.
func (n *Network) Infer(x []float64) ([]float64, error) {
	logits, err := n.ForwardRaw(x)
	if err != nil {
		return nil, err
	}
	return activations.Softmax(logits), nil
}

// ForwardRaw runs a forward pass and returns the final layer's raw output.
func (n *Network) ForwardRaw(x []float64) ([]float64, error) {
	curr := x
	last := len(n.layers) - 1
	for i := 0; i < last; i++ {
		out, err := n.layers[i].Forward(curr)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		curr = out
	}
	out, err := n.layers[last].ForwardRaw(curr)
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", last, err)
	}
	return out, nil
}

// Forward runs a forward pass and returns the trace of every layer.
func (n *Network) Forward(x []float64) (Trace, error) {
	trace := make(Trace, len(n.layers))
	curr := x
	for i, l := range n.layers {
		tr, err := l.ForwardTrace(curr)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		trace[i] = tr
		curr = tr.Output
	}
	return trace, nil
}

// Sizes returns a copy of the layer widths the network was built from.
func (n *Network) Sizes() []int {
	return append([]int(nil), n.sizes...)
}

// InputSize returns the expected input width.
func (n *Network) InputSize() int {
	return n.sizes[0]
}

// OutputSize returns the number of classes.
func (n *Network) OutputSize() int {
	return n.sizes[len(n.sizes)-1]
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// Params returns all network parameters flattened (copy), layer by layer.
func (n *Network) Params() []float64 {
	var params []float64
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// Logger returns the logger used for diagnostics.
func (n *Network) Logger() *log.Logger {
	return n.logger
}
