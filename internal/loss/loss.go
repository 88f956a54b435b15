// Package loss provides the classification loss used for training.
package loss

import "math"

// DefaultEpsilon is added to every probability inside the log so that a
// zero probability yields a large finite loss instead of +Inf.
const DefaultEpsilon = 1e-8

// BackwardInPlacer is an optional interface for loss functions that support
// in-place gradient computation to avoid allocations.
type BackwardInPlacer interface {
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient of the loss w.r.t. the layer input that
	// produced yPred. This creates a new slice.
	Backward(yPred, yTrue []float64) []float64
}

// CrossEntropy is the cross-entropy of a softmax output against a target
// distribution (usually one-hot). Predictions are probabilities, i.e. the
// softmax has already been applied.
type CrossEntropy struct {
	// Epsilon is added inside the log. Zero means DefaultEpsilon.
	Epsilon float64
}

func (c CrossEntropy) eps() float64 {
	if c.Epsilon == 0 {
		return DefaultEpsilon
	}
	return c.Epsilon
}

// Forward computes -sum(y_true * ln(y_pred + eps)). The sum is not averaged
// over classes.
func (c CrossEntropy) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("CrossEntropy: prediction and target must have same length")
	}

	eps := c.eps()
	var sum float64
	for i := 0; i < n; i++ {
		sum -= yTrue[i] * math.Log(yPred[i]+eps)
	}
	return sum
}

// Backward computes the gradient w.r.t. the pre-softmax logits.
// For cross entropy + softmax, gradient simplifies to (y_pred - y_true).
func (c CrossEntropy) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	c.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes gradient and stores it in the grad slice.
func (c CrossEntropy) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("CrossEntropy: slices must have same length")
	}

	for i := 0; i < n; i++ {
		grad[i] = yPred[i] - yTrue[i]
	}
}
