package metrics

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// sampleLen is how many leading inputs Print shows.
const sampleLen = 20

// Model exposes both the probabilities and the raw logits of a classifier.
type Model interface {
	Classifier
	ForwardRaw(x []float64) ([]float64, error)
}

// Prediction holds the diagnostics shown for one classified input.
type Prediction struct {
	Label         int
	Probabilities []float64
	Logits        []float64
	AveragePixel  float64
	Input         []float64
}

// Predict runs m on x and collects its diagnostics.
func Predict(m Model, x []float64) (Prediction, error) {
	probs, err := m.Infer(x)
	if err != nil {
		return Prediction{}, err
	}
	logits, err := m.ForwardRaw(x)
	if err != nil {
		return Prediction{}, err
	}
	var avg float64
	if len(x) > 0 {
		avg = stat.Mean(x, nil)
	}
	return Prediction{
		Label:         Argmax(probs),
		Probabilities: probs,
		Logits:        logits,
		AveragePixel:  avg,
		Input:         x,
	}, nil
}

// Print writes the prediction block used by the driver programs.
func (p Prediction) Print(w io.Writer) {
	head := p.Input
	if len(head) > sampleLen {
		head = head[:sampleLen]
	}
	fmt.Fprintf(w, "Predicted label: %d\n", p.Label)
	fmt.Fprintf(w, "Neuron percentages: %s\n", FormatPercentages(p.Probabilities))
	fmt.Fprintf(w, "Raw logits: %s\n", FormatVector(p.Logits))
	fmt.Fprintf(w, "Average pixel value: %.4f\n", p.AveragePixel)
	fmt.Fprintf(w, "Input sample (first %d values): %s\n", len(head), FormatVector(head))
}
