// Command toy trains a {50, 75, 75, 10} network on ten synthetic samples, one
// per class, each with every feature shifted by class*0.1.
//
// Execute com: go run ./cmd/toy
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/FlavioCFOliveira/digitbrain/internal/metrics"
	"github.com/FlavioCFOliveira/digitbrain/internal/net"
)

const (
	numSamples = 10 // must equal the number of output units
	numInputs  = 50
)

func main() {
	seed := flag.Int64("seed", 42, "PRNG seed for data and network")
	epochs := flag.Int("epochs", 50, "Number of epochs")
	learningRate := flag.Float64("lr", 0.01, "Learning rate")

	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	examples := make([]net.Example, numSamples)
	for i := range examples {
		x := make([]float64, numInputs)
		for j := range x {
			x[j] = rng.Float64() + float64(i)*0.1
		}
		examples[i] = net.Example{Input: x, Target: net.OneHot(i, numSamples)}
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	brain, err := net.New([]int{numInputs, 75, 75, numSamples}, net.WithRand(rng), net.WithLogger(logger))
	if err != nil {
		log.Fatalf("build network: %v", err)
	}

	fmt.Println("Starting training...")
	if err := brain.Train(examples, *learningRate, *epochs); err != nil {
		log.Fatalf("training failed: %v", err)
	}
	fmt.Println("Training finished.")
	fmt.Println()

	for i, ex := range examples {
		out, err := brain.Infer(ex.Input)
		if err != nil {
			log.Fatalf("sample %d: %v", i, err)
		}
		fmt.Printf("Sample %d predicted class: %d, output: %s\n", i, metrics.Argmax(out), metrics.FormatVector(out))
	}

	report, err := metrics.Evaluate(brain, examples)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	fmt.Println(report)
}
