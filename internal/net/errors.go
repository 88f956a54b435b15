package net

import (
	"errors"

	"github.com/FlavioCFOliveira/digitbrain/internal/layer"
)

var (
	// ErrDimensionMismatch is returned when an input or target vector has the
	// wrong length for the network.
	ErrDimensionMismatch = layer.ErrDimensionMismatch

	// ErrInvalidArchitecture is returned by New for fewer than two layer
	// widths or a non-positive width.
	ErrInvalidArchitecture = errors.New("invalid architecture")

	// ErrMalformedState is returned when a snapshot cannot be restored.
	ErrMalformedState = errors.New("malformed persisted state")

	// ErrInvalidTraining is returned by Train for a non-positive learning
	// rate or epoch count, or an empty example set.
	ErrInvalidTraining = errors.New("invalid training arguments")
)
