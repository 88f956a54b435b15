// Package brain is the public entry point to the digit classifier engine.
package brain

import (
	"io"

	"github.com/FlavioCFOliveira/digitbrain/internal/layer"
	"github.com/FlavioCFOliveira/digitbrain/internal/metrics"
	"github.com/FlavioCFOliveira/digitbrain/internal/net"
)

// Re-export common types and functions for easier access
type (
	Network  = net.Network
	Example  = net.Example
	Option   = net.Option
	Trace    = net.Trace
	Layer    = layer.Dense
	Unit     = layer.Unit
	Callback = net.Callback
	Report   = metrics.Report
)

// Errors
var (
	ErrDimensionMismatch   = net.ErrDimensionMismatch
	ErrInvalidArchitecture = net.ErrInvalidArchitecture
	ErrMalformedState      = net.ErrMalformedState
	ErrInvalidTraining     = net.ErrInvalidTraining
)

// Network creation
func New(sizes []int, opts ...Option) (*Network, error) {
	return net.New(sizes, opts...)
}

// Options
var (
	WithSeed      = net.WithSeed
	WithRand      = net.WithRand
	WithLogger    = net.WithLogger
	WithCallbacks = net.WithCallbacks
)

// Examples
func OneHot(label, classes int) []float64 {
	return net.OneHot(label, classes)
}

func NewExample(input []float64, label, classes int) (Example, error) {
	return net.NewExample(input, label, classes)
}

// Callbacks
func EarlyStopping(patience int, threshold float64) *net.EarlyStopping {
	return net.NewEarlyStopping(patience, threshold)
}

func ModelCheckpoint(filename string) Callback {
	return net.NewModelCheckpoint(filename)
}

func CSVLogger(filename string, append bool) Callback {
	return net.NewCSVLogger(filename, append)
}

// Evaluation
func Evaluate(n *Network, examples []Example) (Report, error) {
	return metrics.Evaluate(n, examples)
}

// Model Persistence
func Load(filename string, opts ...Option) (*Network, error) {
	return net.Load(filename, opts...)
}

func Decode(r io.Reader, opts ...Option) (*Network, error) {
	return net.Decode(r, opts...)
}
