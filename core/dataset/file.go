package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/versecast/versecast/core/scripture"
)

// ReadFile loads and decodes a dataset file. Files with an .xz suffix are
// decompressed transparently before decoding.
func ReadFile(path string) (*scripture.Dataset, error) {
	data, err := ReadBytes(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// ReadBytes returns the raw dataset bytes for a file, decompressing
// .xz files transparently.
func ReadBytes(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xzReader, err := xz.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		reader = xzReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return data, nil
}
