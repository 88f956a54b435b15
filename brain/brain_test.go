package brain_test

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/FlavioCFOliveira/digitbrain/brain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainSaveLoad(t *testing.T) {
	quiet := brain.WithLogger(log.New(io.Discard, "", 0))
	n, err := brain.New([]int{4, 8, 2}, brain.WithSeed(3), quiet)
	require.NoError(t, err)

	var examples []brain.Example
	for i := 0; i < 4; i++ {
		x := []float64{0, 0, 0, 0}
		x[i] = 1
		ex, err := brain.NewExample(x, i/2, 2)
		require.NoError(t, err)
		examples = append(examples, ex)
	}

	require.NoError(t, n.Train(examples, 0.1, 200))
	report, err := brain.Evaluate(n, examples)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)

	path := filepath.Join(t.TempDir(), "brain.gob")
	require.NoError(t, n.Save(path))

	restored, err := brain.Load(path, quiet)
	require.NoError(t, err)
	assert.Equal(t, n.Params(), restored.Params())

	again, err := brain.Evaluate(restored, examples)
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestErrorsAreShared(t *testing.T) {
	_, err := brain.New([]int{3})
	assert.ErrorIs(t, err, brain.ErrInvalidArchitecture)

	_, err = brain.NewExample([]float64{1}, 5, 2)
	assert.Error(t, err)
}
