package net

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/FlavioCFOliveira/digitbrain/internal/layer"
)

const (
	snapshotMagic   = "DGBR"
	snapshotVersion = 1
)

// snapshotHeader precedes the per-layer parameter blocks in a snapshot.
type snapshotHeader struct {
	Magic   string
	Version int
	Sizes   []int
}

// Save saves the network to a file using gob encoding.
func (n *Network) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := n.Encode(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Load restores a network saved with Save. opts configure the restored
// network (logger, callbacks, rng for shuffling).
func Load(filename string, opts ...Option) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file, opts...)
}

// Encode writes the architecture followed by every layer's parameters
// (weights row-major, then biases) in layer order.
func (n *Network) Encode(w io.Writer) error {
	encoder := gob.NewEncoder(w)

	header := snapshotHeader{Magic: snapshotMagic, Version: snapshotVersion, Sizes: n.sizes}
	if err := encoder.Encode(header); err != nil {
		return fmt.Errorf("failed to encode header: %w", err)
	}

	for i, l := range n.layers {
		if err := encoder.Encode(l.Params()); err != nil {
			return fmt.Errorf("failed to encode layer %d: %w", i, err)
		}
	}
	return nil
}

// Decode reads a network written by Encode. Any shape disagreement or a
// truncated or corrupt stream yields ErrMalformedState.
//
// Every parameter block is read and checked against the header before any
// layer is allocated, and restored layers are not randomly initialised, so a
// rng passed through opts starts fresh for shuffling.
func Decode(r io.Reader, opts ...Option) (*Network, error) {
	decoder := gob.NewDecoder(r)

	var header snapshotHeader
	if err := decoder.Decode(&header); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrMalformedState, err)
	}
	if header.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformedState, header.Magic)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedState, header.Version)
	}
	sizes := header.Sizes
	if err := validateSizes(sizes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}

	blocks := make([][]float64, len(sizes)-1)
	for i := range blocks {
		want, ok := paramCount(sizes[i], sizes[i+1])
		if !ok {
			return nil, fmt.Errorf("%w: layer %d: %dx%d is too large", ErrMalformedState, i, sizes[i+1], sizes[i])
		}
		var params []float64
		if err := decoder.Decode(&params); err != nil {
			return nil, fmt.Errorf("%w: read layer %d: %w", ErrMalformedState, i, err)
		}
		if len(params) != want {
			return nil, fmt.Errorf("%w: layer %d: got %d params, want %d", ErrMalformedState, i, len(params), want)
		}
		blocks[i] = params
	}

	n, err := newNetwork(sizes, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	n.layers = make([]*layer.Dense, len(blocks))
	for i, params := range blocks {
		l, err := layer.NewDenseFromParams(sizes[i], sizes[i+1], layerActivation(i, len(blocks)), params)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %w", ErrMalformedState, i, err)
		}
		n.layers[i] = l
	}
	return n, nil
}

// paramCount returns out*in + out, or false if that overflows an int.
// Both widths must be positive.
func paramCount(in, out int) (int, bool) {
	if in >= math.MaxInt || out > math.MaxInt/(in+1) {
		return 0, false
	}
	return out * (in + 1), true
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (n *Network) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The receiver keeps
// its logger, rng and callbacks.
func (n *Network) UnmarshalBinary(data []byte) error {
	restored, err := Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	n.layers = restored.layers
	n.sizes = restored.sizes
	n.loss = restored.loss
	if n.rng == nil {
		n.rng = restored.rng
	}
	if n.logger == nil {
		n.logger = restored.logger
	}
	return nil
}
