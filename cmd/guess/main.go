// Command guess classifies a single image with a saved network.
//
// Execute com: go run ./cmd/guess -model trained_brain.gob -image image.png
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/FlavioCFOliveira/digitbrain/internal/features"
	"github.com/FlavioCFOliveira/digitbrain/internal/metrics"
	"github.com/FlavioCFOliveira/digitbrain/internal/net"
)

func main() {
	modelPath := flag.String("model", "trained_brain.gob", "Path to saved network")
	imagePath := flag.String("image", "image.png", "Image to classify")
	width := flag.Int("width", 28, "Image width")
	height := flag.Int("height", 28, "Image height")

	flag.Parse()

	brain, err := net.Load(*modelPath)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}
	fmt.Printf("Trained network loaded from %s\n", *modelPath)

	input, err := features.LoadFile(*imagePath, *width, *height)
	if err != nil {
		log.Fatalf("could not load %s: %v", *imagePath, err)
	}

	p, err := metrics.Predict(brain, input)
	if err != nil {
		log.Fatalf("classify: %v", err)
	}

	fmt.Println("--------------------------------------------------")
	fmt.Printf("%s Result\n", *imagePath)
	p.Print(os.Stdout)
	fmt.Println("--------------------------------------------------")
}
