package opt

import (
	"math/rand"
	"testing"
)

// arenaSize matches the first layer of a {784, 128, ...} digit network.
const arenaSize = 784 * 128

func gradientArena(seed int64) (params, grads []float64) {
	r := rand.New(rand.NewSource(seed))
	params = make([]float64, arenaSize)
	grads = make([]float64, arenaSize)
	for i := range params {
		params[i] = r.NormFloat64() * 0.1
		grads[i] = r.NormFloat64()
	}
	return params, grads
}

func BenchmarkClippedSGDStepInPlace(b *testing.B) {
	params, grads := gradientArena(1)
	c := ClippedSGD{LearningRate: 0.01, Clip: 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.StepInPlace(params, grads)
	}
}

// Large steps so that most elements take the clamped branch.
func BenchmarkClippedSGDSaturated(b *testing.B) {
	params, grads := gradientArena(2)
	c := ClippedSGD{LearningRate: 10, Clip: 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.StepInPlace(params, grads)
	}
}
