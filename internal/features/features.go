// Package features turns digit images into network input vectors.
package features

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"gonum.org/v1/gonum/floats"
)

// ErrImageSize is returned when an image does not have the expected bounds.
var ErrImageSize = errors.New("unexpected image size")

// FromImage converts img into width*height values in [0, 1], row by row.
// Each value is the integer mean of the 8-bit red, green and blue channels
// divided by 255. Alpha is ignored.
func FromImage(img image.Image, width, height int) ([]float64, error) {
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrImageSize, b.Dx(), b.Dy(), width, height)
	}

	out := make([]float64, 0, width*height)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			gray := (int(c.R) + int(c.G) + int(c.B)) / 3
			out = append(out, float64(gray)/255)
		}
	}
	return out, nil
}

// Decode reads a PNG, JPEG or GIF image from path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadFile decodes the image at path and converts it with FromImage.
func LoadFile(path string, width, height int) ([]float64, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	v, err := FromImage(img, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Mean returns the average value of v, or 0 when v is empty.
func Mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Sum(v) / float64(len(v))
}
