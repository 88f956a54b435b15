package net

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	BaseCallback
	events []string
}

func (r *recorder) OnTrainBegin(n *Network) { r.events = append(r.events, "begin") }
func (r *recorder) OnTrainEnd(n *Network)   { r.events = append(r.events, "end") }
func (r *recorder) OnEpochBegin(epoch int, n *Network) {
	r.events = append(r.events, fmt.Sprintf("epoch_begin_%d", epoch))
}
func (r *recorder) OnEpochEnd(epoch int, loss float64, n *Network) {
	r.events = append(r.events, fmt.Sprintf("epoch_end_%d", epoch))
}

func smallSet() []Example {
	return []Example{
		{Input: []float64{0, 1}, Target: OneHot(0, 2)},
		{Input: []float64{1, 0}, Target: OneHot(1, 2)},
	}
}

func TestCallbackOrder(t *testing.T) {
	rec := &recorder{}
	n := newTestNetwork(t, []int{2, 3, 2}, 41, WithCallbacks(rec))

	require.NoError(t, n.Train(smallSet(), 0.01, 2))
	assert.Equal(t, []string{
		"begin",
		"epoch_begin_1", "epoch_end_1",
		"epoch_begin_2", "epoch_end_2",
		"end",
	}, rec.events)
}

func TestCallbackEndRunsOnError(t *testing.T) {
	rec := &recorder{}
	n := newTestNetwork(t, []int{2, 3, 2}, 42, WithCallbacks(rec))

	err := n.Train([]Example{{Input: []float64{1}, Target: OneHot(0, 2)}}, 0.01, 2)
	require.Error(t, err)
	assert.Equal(t, []string{"begin", "epoch_begin_1", "end"}, rec.events)
}

func TestEarlyStopping(t *testing.T) {
	history := &LossHistory{}
	// A huge threshold means no epoch after the first counts as an improvement.
	stopper := NewEarlyStopping(1, 1e9)
	n := newTestNetwork(t, []int{2, 3, 2}, 43, WithCallbacks(stopper, history))

	require.NoError(t, n.Train(smallSet(), 0.01, 10))
	assert.True(t, stopper.ShouldStop())
	assert.Len(t, history.Losses, 2)
}

func TestEarlyStoppingPatience(t *testing.T) {
	n := newTestNetwork(t, []int{2, 2}, 44)
	es := NewEarlyStopping(2, 0)

	es.OnEpochEnd(1, 1.0, n)
	es.OnEpochEnd(2, 0.5, n)
	assert.False(t, es.ShouldStop())
	es.OnEpochEnd(3, 0.6, n)
	assert.False(t, es.ShouldStop())
	es.OnEpochEnd(4, 0.7, n)
	assert.True(t, es.ShouldStop())
}

func TestWithoutCallbacksRunsAllEpochs(t *testing.T) {
	history := &LossHistory{}
	n := newTestNetwork(t, []int{2, 3, 2}, 45, WithCallbacks(history))

	require.NoError(t, n.Train(smallSet(), 0.01, 7))
	assert.Len(t, history.Losses, 7)

	// A second run starts a fresh history.
	require.NoError(t, n.Train(smallSet(), 0.01, 3))
	assert.Len(t, history.Losses, 3)
}

func TestModelCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.gob")
	cp := NewModelCheckpoint(path)
	n := newTestNetwork(t, []int{2, 3, 2}, 46, WithCallbacks(cp))

	require.NoError(t, n.Train(smallSet(), 0.01, 3))

	restored, err := Load(path, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, n.Sizes(), restored.Sizes())
}

func TestModelCheckpointSkipsWorseLoss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.gob")
	cp := NewModelCheckpoint(path)
	n := newTestNetwork(t, []int{2, 2}, 47)

	cp.OnEpochEnd(1, 0.5, n)
	saved := n.Params()

	require.NoError(t, n.Layers()[0].SetParams(make([]float64, 6)))
	cp.OnEpochEnd(2, 0.9, n)

	restored, err := Load(path, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, saved, restored.Params())
}
