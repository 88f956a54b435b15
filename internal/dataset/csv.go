package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/FlavioCFOliveira/digitbrain/internal/net"
)

// LoadCSV loads MNIST-style rows of "label,p0,p1,...": an integer label in
// [0, classes) followed by 0-255 pixel intensities, which are scaled to [0, 1].
// hasHeader skips the first line if true.
func LoadCSV(filename string, classes int, hasHeader bool) ([]net.Example, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, fmt.Errorf("%w: csv file has no data rows", ErrNoExamples)
	}

	numCols := len(records[startRow])
	if numCols < 2 {
		return nil, fmt.Errorf("csv row %d: need a label and at least one pixel", startRow)
	}

	examples := make([]net.Example, 0, len(records)-startRow)
	for i := startRow; i < len(records); i++ {
		record := records[i]
		if len(record) != numCols {
			return nil, fmt.Errorf("inconsistent number of columns at row %d", i)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse label at row %d: %w", i, err)
		}

		input := make([]float64, numCols-1)
		for j, valStr := range record[1:] {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse value at row %d, col %d: %w", i, j+1, err)
			}
			input[j] = val / 255
		}

		ex, err := net.NewExample(input, label, classes)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		examples = append(examples, ex)
	}
	return examples, nil
}

// Split shuffles a copy of examples with seed and returns (train, held out),
// the first holding int(len*ratio) samples.
func Split(examples []net.Example, ratio float64, seed int64) ([]net.Example, []net.Example) {
	if ratio >= 1 {
		return examples, nil
	}
	if ratio <= 0 {
		return nil, examples
	}

	shuffled := append([]net.Example(nil), examples...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	splitIdx := int(float64(len(shuffled)) * ratio)
	return shuffled[:splitIdx], shuffled[splitIdx:]
}
