// Package activations provides the activation functions used by the engine.
package activations

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) from the pre-activation value x
	Derivative(x float64) float64
}

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if x > 0, else 0.
// The subgradient at exactly 0 is taken as 0.
func (r ReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Linear is the identity activation.
type Linear struct{}

// Activate returns x unchanged
func (l Linear) Activate(x float64) float64 {
	return x
}

// Derivative is always 1
func (l Linear) Derivative(x float64) float64 {
	return 1
}

// Softmax turns a logit vector into a probability distribution.
// The input is left untouched and a new slice is returned.
//
// The maximum logit is subtracted before exponentiating. This does not change
// the result, exp(x-m)/sum(exp(x-m)) == exp(x)/sum(exp(x)), but it keeps large
// logits from overflowing to +Inf.
func Softmax(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	maxVal := floats.Max(x)
	for i, v := range x {
		out[i] = math.Exp(v - maxVal)
	}

	sum := floats.Sum(out)
	floats.Scale(1/sum, out)
	return out
}
