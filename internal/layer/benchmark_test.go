package layer

import (
	"math/rand"
	"testing"

	"github.com/FlavioCFOliveira/digitbrain/internal/activations"
)

// fillRandom fills a slice with random values.
func fillRandom(r *rand.Rand, slice []float64) {
	for i := range slice {
		slice[i] = r.Float64()
	}
}

// BenchmarkDenseForward benchmarks the activated pass of a dense layer.
func BenchmarkDenseForward(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	layer := NewDense(784, 128, activations.ReLU{}, r)
	input := make([]float64, 784)
	fillRandom(r, input)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Forward(input)
	}
}

// BenchmarkDenseBackward benchmarks gradient computation plus input error.
func BenchmarkDenseBackward(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	layer := NewDense(784, 128, activations.ReLU{}, r)
	input := make([]float64, 784)
	delta := make([]float64, 128)
	fillRandom(r, input)
	fillRandom(r, delta)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layer.Backward(delta, input)
		layer.InputError(delta)
	}
}
