// Package opt provides the parameter update rules used by training.
package opt

// Optimizer updates network parameters based on gradients.
type Optimizer interface {
	// Step computes updated parameters and returns them in a new slice.
	Step(params, gradients []float64) []float64

	// StepInPlace updates params in-place.
	// This avoids allocations for better performance
	StepInPlace(params, gradients []float64)
}

// ClippedSGD is stochastic gradient descent whose per-element step lr*g is
// clamped to [-Clip, Clip] before it is applied. A non-positive Clip disables
// clamping, which gives plain SGD.
type ClippedSGD struct {
	LearningRate float64
	Clip         float64
}

// Step computes updated parameters: params - clamp(lr * gradients)
func (c ClippedSGD) Step(params, gradients []float64) []float64 {
	result := append([]float64(nil), params...)
	c.StepInPlace(result, gradients)
	return result
}

// StepInPlace updates params in-place: params = params - clamp(lr * gradients)
func (c ClippedSGD) StepInPlace(params, gradients []float64) {
	for i := range params {
		params[i] -= c.Delta(gradients[i])
	}
}

// Delta returns the clamped step for a single gradient.
func (c ClippedSGD) Delta(g float64) float64 {
	step := c.LearningRate * g
	if c.Clip <= 0 {
		return step
	}
	return Clamp(step, c.Clip)
}

// Clamp limits v to [-limit, limit].
func Clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
