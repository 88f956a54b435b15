// Package metrics scores classifier output.
package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FlavioCFOliveira/digitbrain/internal/net"
	"gonum.org/v1/gonum/floats"
)

// Classifier produces a probability distribution for an input vector.
type Classifier interface {
	Infer(x []float64) ([]float64, error)
}

// Argmax returns the index of the largest value; the first one wins on ties.
// It panics on an empty slice.
func Argmax(p []float64) int {
	return floats.MaxIdx(p)
}

// Report accumulates classification results.
type Report struct {
	Correct int
	Total   int

	// Confusion[expected][predicted] counts every recorded sample.
	Confusion [][]int
}

// NewReport returns an empty report over classes labels.
func NewReport(classes int) *Report {
	c := make([][]int, classes)
	for i := range c {
		c[i] = make([]int, classes)
	}
	return &Report{Confusion: c}
}

// Record adds one sample.
func (r *Report) Record(expected, predicted int) {
	r.Total++
	if expected == predicted {
		r.Correct++
	}
	if expected < len(r.Confusion) && predicted < len(r.Confusion[expected]) {
		r.Confusion[expected][predicted]++
	}
}

// Accuracy returns Correct/Total in [0, 1], or 0 for an empty report.
func (r Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

func (r Report) String() string {
	return fmt.Sprintf("%d/%d correct (%.2f%%)", r.Correct, r.Total, r.Accuracy()*100)
}

// Evaluate classifies every example and compares the prediction against the
// argmax of its target.
func Evaluate(c Classifier, examples []net.Example) (Report, error) {
	var r *Report
	for i, ex := range examples {
		p, err := c.Infer(ex.Input)
		if err != nil {
			return Report{}, fmt.Errorf("sample %d: %w", i, err)
		}
		if r == nil {
			r = NewReport(len(p))
		}
		r.Record(Argmax(ex.Target), Argmax(p))
	}
	if r == nil {
		return Report{}, nil
	}
	return *r, nil
}

// FormatPercentages renders a distribution as "12.34% 0.50% ...".
func FormatPercentages(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%.2f%%", v*100)
	}
	return strings.Join(parts, " ")
}

// FormatVector renders v as "[a, b, c]" using the shortest exact representation.
func FormatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
