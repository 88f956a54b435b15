package net

import (
	"fmt"
	"math"

	"github.com/FlavioCFOliveira/digitbrain/internal/activations"
	"github.com/FlavioCFOliveira/digitbrain/internal/layer"
	"github.com/FlavioCFOliveira/digitbrain/internal/loss"
	"github.com/FlavioCFOliveira/digitbrain/internal/opt"
	"gonum.org/v1/gonum/stat"
)

const (
	// ClipThreshold bounds every per-element weight and bias step.
	ClipThreshold = 0.1

	// LossEpsilon is added inside the log of the cross-entropy loss.
	LossEpsilon = 1e-8
)

// Example is one training sample: a feature vector and its target
// distribution, normally one-hot.
type Example struct {
	Input  []float64
	Target []float64
}

// OneHot returns a vector of length classes with a 1 at label. It panics if
// label is outside [0, classes); use NewExample for labels from untrusted input.
func OneHot(label, classes int) []float64 {
	v := make([]float64, classes)
	v[label] = 1
	return v
}

// NewExample pairs input with the one-hot encoding of label.
func NewExample(input []float64, label, classes int) (Example, error) {
	if label < 0 || label >= classes {
		return Example{}, fmt.Errorf("label %d out of range [0, %d)", label, classes)
	}
	return Example{Input: input, Target: OneHot(label, classes)}, nil
}

// Train runs epochs passes of per-sample SGD over examples. Samples are
// shuffled independently every epoch and each one is fully processed
// (forward, loss, backward, update) before the next. The mean loss of every
// epoch is logged and passed to the registered callbacks.
//
// Any malformed sample aborts the whole call; updates made by earlier samples
// are kept.
func (n *Network) Train(examples []Example, learningRate float64, epochs int) error {
	if epochs <= 0 {
		return fmt.Errorf("%w: epochs must be > 0 (got %d)", ErrInvalidTraining, epochs)
	}
	if err := validateTraining(examples, learningRate); err != nil {
		return err
	}

	for _, cb := range n.callbacks {
		cb.OnTrainBegin(n)
	}
	defer func() {
		for _, cb := range n.callbacks {
			cb.OnTrainEnd(n)
		}
	}()

	for epoch := 1; epoch <= epochs; epoch++ {
		for _, cb := range n.callbacks {
			cb.OnEpochBegin(epoch, n)
		}

		avg, err := n.TrainEpoch(examples, learningRate, epoch)
		if err != nil {
			return err
		}

		stop := false
		for _, cb := range n.callbacks {
			cb.OnEpochEnd(epoch, avg, n)
			if s, ok := cb.(Stopper); ok && s.ShouldStop() {
				stop = true
			}
		}
		if stop {
			n.logger.Printf("epoch=%d training stopped by callback", epoch)
			break
		}
	}
	return nil
}

// TrainEpoch runs a single shuffled pass over examples and returns the mean
// loss. epoch is only used for logging and error messages.
func (n *Network) TrainEpoch(examples []Example, learningRate float64, epoch int) (float64, error) {
	if err := validateTraining(examples, learningRate); err != nil {
		return 0, err
	}

	step := opt.ClippedSGD{LearningRate: learningRate, Clip: ClipThreshold}

	// Fisher-Yates over sample indices
	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}
	n.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	losses := make([]float64, 0, len(examples))
	for _, idx := range order {
		l, err := n.trainSample(examples[idx], step)
		if err != nil {
			return 0, fmt.Errorf("epoch %d sample %d: %w", epoch, idx, err)
		}
		losses = append(losses, l)
	}

	avg := stat.Mean(losses, nil)
	n.logger.Printf("epoch=%d avg_loss=%.6f", epoch, avg)
	return avg, nil
}

// trainSample performs forward, backward and a clipped update for one sample
// and returns its loss. All deltas are computed from the pre-update weights
// before any parameter changes.
func (n *Network) trainSample(ex Example, step opt.Optimizer) (float64, error) {
	if len(ex.Target) != n.OutputSize() {
		return 0, &layer.DimensionError{Op: "target", Got: len(ex.Target), Want: n.OutputSize()}
	}

	trace, err := n.Forward(ex.Input)
	if err != nil {
		return 0, err
	}

	probs := activations.Softmax(trace.Logits())
	sampleLoss := n.loss.Forward(probs, ex.Target)

	L := len(n.layers)
	deltas := make([][]float64, L)

	// Output layer: softmax + cross entropy gives p - t w.r.t. the logits.
	if bip, ok := n.loss.(loss.BackwardInPlacer); ok {
		deltas[L-1] = make([]float64, len(probs))
		bip.BackwardInPlace(probs, ex.Target, deltas[L-1])
	} else {
		deltas[L-1] = n.loss.Backward(probs, ex.Target)
	}

	// Hidden layers: delta = relu'(sum) * (W_next^T . delta_next)
	for i := L - 2; i >= 0; i-- {
		errSum, err := n.layers[i+1].InputError(deltas[i+1])
		if err != nil {
			return 0, err
		}
		d := make([]float64, len(errSum))
		for j := range d {
			d[j] = trace[i].Derivative(j) * errSum[j]
		}
		deltas[i] = d
	}

	for i, l := range n.layers {
		if err := l.Backward(deltas[i], trace[i].Input); err != nil {
			return 0, err
		}
		step.StepInPlace(l.Weights(), l.WeightGrads())
		step.StepInPlace(l.Biases(), l.BiasGrads())
	}
	return sampleLoss, nil
}

func validateTraining(examples []Example, learningRate float64) error {
	if len(examples) == 0 {
		return fmt.Errorf("%w: no examples", ErrInvalidTraining)
	}
	if !(learningRate > 0) || math.IsInf(learningRate, 0) {
		return fmt.Errorf("%w: learning rate must be > 0 (got %v)", ErrInvalidTraining, learningRate)
	}
	return nil
}
