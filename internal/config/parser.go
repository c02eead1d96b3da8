package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

// ParseConfig loads a theme configuration file from disk, validates it, and returns the resulting model.
func ParseConfig(path string) (*ThemeConfig, error) {
	cfg, err := Decode(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Decode reads and decodes a theme configuration file without validating it.
// The decoder is chosen by file extension; unknown extensions are read as YAML.
func Decode(path string) (*ThemeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, delvuierrors.NewParseError(path, 0, err)
	}

	var cfg ThemeConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = decodeJSON(data, &cfg)
	case ".toml":
		err = decodeTOML(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, delvuierrors.NewParseError(path, extractLine(data, err), err)
	}

	return &cfg, nil
}

// Find returns the first default theme config file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range DefaultFilenames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func decodeJSON(data []byte, cfg *ThemeConfig) error {
	return json.Unmarshal(data, cfg)
}

// decodeTOML goes through a generic document because token trees decode from
// JSON-shaped maps; tables keyed "$replace" keep their replacement meaning.
func decodeTOML(data []byte, cfg *ThemeConfig) error {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}

	intermediate, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert toml document: %w", err)
	}
	return json.Unmarshal(intermediate, cfg)
}

func extractLine(data []byte, err error) int {
	if err == nil {
		return 0
	}

	var tomlErr *toml.DecodeError
	if errors.As(err, &tomlErr) {
		row, _ := tomlErr.Position()
		return row
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return lineAtOffset(data, syntaxErr.Offset)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return lineAtOffset(data, typeErr.Offset)
	}

	return delvuierrors.LineFromMessage(err)
}

func lineAtOffset(data []byte, offset int64) int {
	if offset <= 0 {
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
