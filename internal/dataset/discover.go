// Package dataset loads labelled digit images for training and evaluation.
package dataset

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ErrNoExamples is returned when a source yields no usable samples.
var ErrNoExamples = errors.New("dataset: no examples")

// DiscoverImages lists the image files of <root>/<label>/ for every label in
// [0, classes). Paths are sorted per label. A missing label folder is logged
// and left out of the result; a missing root is an error.
func DiscoverImages(root string, classes int, logger *log.Logger) (map[int][]string, error) {
	if logger == nil {
		logger = log.Default()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover images: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discover images: %s is not a directory", root)
	}

	result := make(map[int][]string, classes)
	for label := 0; label < classes; label++ {
		dir := filepath.Join(root, strconv.Itoa(label))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Printf("label=%d folder not found: %s", label, dir)
				continue
			}
			return nil, fmt.Errorf("discover images: %w", err)
		}

		paths := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
		sort.Strings(paths)
		result[label] = paths
	}
	return result, nil
}
