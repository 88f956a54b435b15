package features

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})
	img.SetGray(0, 1, color.Gray{Y: 51})
	img.SetGray(1, 1, color.Gray{Y: 102})

	v, err := FromImage(img, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0.2, 0.4}, v)
}

func TestFromImageIntegerChannelMean(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	// (10 + 20 + 31) / 3 = 20 with integer division
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 31, A: 255})

	v, err := FromImage(img, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{20.0 / 255}, v)
}

func TestFromImageRowMajor(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(y*3 + x)})
		}
	}

	v, err := FromImage(img, 3, 2)
	require.NoError(t, err)
	for i, got := range v {
		assert.Equal(t, float64(i)/255, got, "index %d", i)
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 7, 6))
	img.SetGray(5, 5, color.Gray{Y: 255})

	v, err := FromImage(img, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, v)
}

func TestFromImageWrongSize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 27, 28))
	_, err := FromImage(img, 28, 28)
	assert.True(t, errors.Is(err, ErrImageSize))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digit.png")
	img := image.NewGray(image.Rect(0, 0, 28, 28))
	img.SetGray(3, 0, color.Gray{Y: 255})
	writePNG(t, path, img)

	v, err := LoadFile(path, 28, 28)
	require.NoError(t, err)
	require.Len(t, v, 784)
	assert.Equal(t, 1.0, v[3])
	assert.InDelta(t, 1.0/784, Mean(v), 1e-12)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.png"), 28, 28)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = LoadFile(junk, 28, 28)
	assert.Error(t, err)

	small := filepath.Join(dir, "small.png")
	writePNG(t, small, image.NewGray(image.Rect(0, 0, 4, 4)))
	_, err = LoadFile(small, 28, 28)
	assert.True(t, errors.Is(err, ErrImageSize))
}

func TestMeanEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
}
