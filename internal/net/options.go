package net

import (
	"log"
	"math/rand"
	"time"
)

// Option configures a Network.
type Option func(*Network)

// WithSeed makes initialisation and shuffling reproducible.
func WithSeed(seed int64) Option {
	return func(n *Network) {
		n.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r for initialisation and shuffling.
func WithRand(r *rand.Rand) Option {
	return func(n *Network) {
		if r != nil {
			n.rng = r
		}
	}
}

// WithLogger sets the logger used for per-epoch diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(n *Network) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithCallbacks registers training callbacks.
func WithCallbacks(cbs ...Callback) Option {
	return func(n *Network) {
		n.callbacks = append(n.callbacks, cbs...)
	}
}

func defaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
