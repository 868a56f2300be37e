// Package profile loads wardrobe profiles from YAML or JSON files.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/schema"
	"gopkg.in/yaml.v3"
)

// StdinLocation reads the profile from standard input.
const StdinLocation = "-"

// Loader reads profiles from the filesystem. JSON documents are valid YAML, so a single
// decoder serves both formats.
type Loader struct {
	stdin io.Reader
}

var _ contract.ProfileSource = &Loader{}

// NewLoader creates a Loader that reads "-" from os.Stdin.
func NewLoader() *Loader {
	return &Loader{stdin: os.Stdin}
}

// Load reads the profile at location.
func (l *Loader) Load(ctx context.Context, location string) (schema.AnalysisInput, error) {
	if err := ctx.Err(); err != nil {
		return schema.AnalysisInput{}, err
	}

	if location == StdinLocation {
		return Decode(l.stdin)
	}

	switch ext := strings.ToLower(filepath.Ext(location)); ext {
	case ".yaml", ".yml", ".json", "":
	default:
		return schema.AnalysisInput{}, fmt.Errorf("unsupported profile format %q for %s", ext, location)
	}

	file, err := os.Open(location)
	if err != nil {
		return schema.AnalysisInput{}, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() { _ = file.Close() }()

	input, err := Decode(file)
	if err != nil {
		return schema.AnalysisInput{}, fmt.Errorf("failed to read profile %s: %w", location, err)
	}
	return input, nil
}

// Decode parses one profile document. An empty document is an empty profile.
func Decode(r io.Reader) (schema.AnalysisInput, error) {
	var input schema.AnalysisInput
	if err := yaml.NewDecoder(r).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		return schema.AnalysisInput{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return input, nil
}

// Name derives a display name for a profile location.
func Name(location string) string {
	if location == StdinLocation {
		return "stdin"
	}
	base := filepath.Base(location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
