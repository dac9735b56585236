package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// ReadFloatFromFile reads a single number from a file, e.g. a sysfs attribute.
func ReadFloatFromFile(path string) (value float64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return 0, fmt.Errorf("file is empty: %s", path)
	}
	value, err = strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("file %s does not contain a number: %w", path, err)
	}
	return value, nil
}

// WriteFloatToFileAtomic replaces the content of the file at path with the given value,
// readers never observe a partially written file.
func WriteFloatToFileAtomic(value float64, path string) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	valueAsString := strconv.FormatFloat(value, 'f', -1, 64)
	return atomic.WriteFile(path, strings.NewReader(valueAsString))
}

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
