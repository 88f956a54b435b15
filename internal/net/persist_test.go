package net

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput(size int) []float64 {
	x := make([]float64, size)
	for i := range x {
		x[i] = math.Sin(float64(i)) * 0.5
	}
	return x
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	n := newTestNetwork(t, []int{12, 9, 7, 4}, 31)
	require.NoError(t, n.Train(toySet(rand.New(rand.NewSource(1)), 4, 12), 0.05, 3))

	var buf bytes.Buffer
	require.NoError(t, n.Encode(&buf))

	restored, err := Decode(&buf, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, n.Sizes(), restored.Sizes())
	assert.Equal(t, n.Params(), restored.Params(), "parameters must round-trip bit-exact")

	x := sampleInput(12)
	want, err := n.Infer(x)
	require.NoError(t, err)
	got, err := restored.Infer(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRestoredNetworkTrainsIdentically(t *testing.T) {
	n := newTestNetwork(t, []int{6, 5, 4}, 32)
	data, err := n.MarshalBinary()
	require.NoError(t, err)

	// Restoring draws nothing from the seeded source, so the restored
	// network shuffles exactly like a fresh source with the same seed.
	restored, err := Decode(bytes.NewReader(data), WithSeed(77), WithLogger(quietLogger()))
	require.NoError(t, err)
	n.rng = rand.New(rand.NewSource(77))

	examples := toySet(rand.New(rand.NewSource(2)), 4, 6)
	require.NoError(t, n.Train(examples, 0.05, 4))
	require.NoError(t, restored.Train(examples, 0.05, 4))
	assert.Equal(t, n.Params(), restored.Params())
}

func TestRestoredLayerActivations(t *testing.T) {
	n := newTestNetwork(t, []int{4, 3, 3, 2}, 37)
	data, err := n.MarshalBinary()
	require.NoError(t, err)

	restored, err := Decode(bytes.NewReader(data), WithLogger(quietLogger()))
	require.NoError(t, err)

	for i, l := range restored.Layers() {
		assert.IsType(t, n.Layers()[i].Activation(), l.Activation(), "layer %d", i)
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brain.gob")
	n := newTestNetwork(t, []int{5, 3, 2}, 33)
	require.NoError(t, n.Save(path))

	restored, err := Load(path, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, n.Params(), restored.Params())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gob"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMarshalUnmarshalBinary(t *testing.T) {
	n := newTestNetwork(t, []int{4, 3, 2}, 34)
	data, err := n.MarshalBinary()
	require.NoError(t, err)

	var restored Network
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, n.Params(), restored.Params())
	assert.NotNil(t, restored.Logger())
}

func encodeRaw(t *testing.T, values ...any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for _, v := range values {
		require.NoError(t, enc.Encode(v))
	}
	return buf.Bytes()
}

func TestDecodeMalformed(t *testing.T) {
	good := newTestNetwork(t, []int{3, 2}, 35)
	valid, err := good.MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not a snapshot")},
		{"truncated", valid[:len(valid)-5]},
		{"header only", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{3, 2}})},
		{"bad magic", encodeRaw(t, snapshotHeader{Magic: "XXXX", Version: snapshotVersion, Sizes: []int{3, 2}}, good.Layers()[0].Params())},
		{"bad version", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: 99, Sizes: []int{3, 2}}, good.Layers()[0].Params())},
		{"bad architecture", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{3}})},
		{"shape disagrees", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{3, 2}}, []float64{1, 2, 3})},
		{"too many params", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{3, 2}}, make([]float64, 9))},
		{"zero width", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{3, 0}})},
		{"huge sizes, no params", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{1 << 31, 1 << 31}})},
		{"huge sizes, small block", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{1 << 31, 1 << 31}}, []float64{1, 2, 3})},
		{"size overflow", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{math.MaxInt, 2}})},
		{"second layer bad", encodeRaw(t, snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: []int{2, 2, 1 << 40}}, make([]float64, 6))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Decode(bytes.NewReader(tt.data), WithLogger(quietLogger()))
			assert.Nil(t, n)
			assert.True(t, errors.Is(err, ErrMalformedState), "got %v", err)
		})
	}
}

func TestParamCount(t *testing.T) {
	got, ok := paramCount(784, 128)
	assert.True(t, ok)
	assert.Equal(t, 784*128+128, got)

	_, ok = paramCount(math.MaxInt, 1)
	assert.False(t, ok)
	_, ok = paramCount(1<<32, 1<<32)
	assert.False(t, ok)
}
