package dataset

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/FlavioCFOliveira/digitbrain/internal/features"
	"github.com/FlavioCFOliveira/digitbrain/internal/net"
)

const defaultSeed = 42

// Options configures LoadDir.
type Options struct {
	Classes int
	Width   int
	Height  int

	// PerLabel > 0 keeps that many randomly chosen files per label.
	PerLabel int
	// Seed drives the per-label selection. Zero means 42.
	Seed int64

	Logger *log.Logger
}

// LoadDir reads <root>/<label>/* images into one-hot examples, grouped by
// label in ascending order. Files that cannot be decoded or have the wrong
// size are logged and skipped.
func LoadDir(root string, opts Options) ([]net.Example, error) {
	if opts.Classes <= 0 {
		return nil, fmt.Errorf("dataset: classes must be > 0 (got %d)", opts.Classes)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("dataset: invalid image size %dx%d", opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	found, err := DiscoverImages(root, opts.Classes, logger)
	if err != nil {
		return nil, err
	}

	var examples []net.Example
	for label := 0; label < opts.Classes; label++ {
		paths := pick(found[label], opts.PerLabel, rng)
		for _, path := range paths {
			input, err := features.LoadFile(path, opts.Width, opts.Height)
			if err != nil {
				logger.Printf("label=%d skip: %v", label, err)
				continue
			}
			examples = append(examples, net.Example{Input: input, Target: net.OneHot(label, opts.Classes)})
		}
	}

	if len(examples) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoExamples, root)
	}
	logger.Printf("root=%s examples=%d", root, len(examples))
	return examples, nil
}

// pick returns up to n shuffled entries of paths, or all of them in order
// when n <= 0.
func pick(paths []string, n int, rng *rand.Rand) []string {
	if n <= 0 {
		return paths
	}
	shuffled := append([]string(nil), paths...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}
