// Package themes coordinates the theme pipeline for the CLI: resolving a
// preset with config layers, flattening it into CSS variables, rendering an
// output format and writing the result.
package themes

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/delvui/delvui/internal/config"
	"github.com/delvui/delvui/internal/cssvars"
	"github.com/delvui/delvui/internal/logger"
	"github.com/delvui/delvui/internal/render"
	"github.com/delvui/delvui/internal/store"
	"github.com/delvui/delvui/internal/theme"
	"github.com/delvui/delvui/pkg/diff"
)

// Service coordinates theme generation on top of a token store.
type Service struct {
	store *store.Store
	log   *logger.Logger
}

// NewService constructs a theme service. A nil logger discards output.
func NewService(s *store.Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: s, log: log}
}

// Store exposes the underlying token store.
func (s *Service) Store() *store.Store {
	return s.store
}

// Request configures a single generation.
type Request struct {
	// Name labels the output. Falls back to the config name, then the preset.
	Name   string
	Preset string
	// Config contributes its preset, prefix and override layers when set.
	Config *config.ThemeConfig
	// Extra layers are applied after the config layers.
	Extra    []theme.Override
	Prefix   string
	Selector string
	Format   render.Format
	Minify   bool
}

// Result is a generated theme.
type Result struct {
	Name      string
	Preset    string
	Theme     theme.Theme
	Variables cssvars.Variables
	Format    render.Format
	Content   []byte
}

// Filename returns the output file name for the result.
func (r *Result) Filename() string {
	return r.Format.Filename()
}

// Resolve composes the requested preset with every configured layer.
func (s *Service) Resolve(req Request) (theme.Theme, string, error) {
	preset := req.Preset
	if preset == "" && req.Config != nil {
		preset = req.Config.Preset
	}
	if preset == "" {
		preset = store.DefaultPreset
	}

	layers := req.Config.Layers()
	layers = append(layers, req.Extra...)
	if req.Prefix != "" {
		layers = append(layers, theme.Override{CSSPrefix: req.Prefix})
	}

	resolved, err := s.store.Resolve(preset, layers...)
	if err != nil {
		return theme.Theme{}, preset, err
	}

	s.log.WithFields(map[string]any{
		"preset": preset,
		"layers": len(layers),
		"leaves": resolved.Leaves(),
	}).Debug("theme composed")

	return resolved, preset, nil
}

// Generate resolves, flattens and renders a theme.
func (s *Service) Generate(req Request) (*Result, error) {
	resolved, preset, err := s.Resolve(req)
	if err != nil {
		return nil, err
	}

	vars, err := cssvars.Flatten(resolved)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" && req.Config != nil && req.Config.Format != "" {
		format, err = render.ParseFormat(req.Config.Format)
		if err != nil {
			return nil, err
		}
	}
	if format == "" {
		format = render.FormatCSS
	}

	selector := req.Selector
	if selector == "" && req.Config != nil {
		selector = req.Config.Selector
	}

	name := req.Name
	if name == "" && req.Config != nil {
		name = req.Config.Name
	}
	if name == "" {
		name = preset
	}

	content, err := render.Render(format, render.Document{Name: name, Theme: resolved, Variables: vars}, render.Options{
		Selector: selector,
		Minify:   req.Minify || (req.Config != nil && req.Config.Minify),
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"name":      name,
		"format":    string(format),
		"variables": len(vars),
		"bytes":     len(content),
	}).Debug("theme rendered")

	return &Result{
		Name:      name,
		Preset:    preset,
		Theme:     resolved,
		Variables: vars,
		Format:    format,
		Content:   content,
	}, nil
}

// Write stores the result in dir, creating it if needed, and returns the file path.
func (s *Service) Write(dir string, res *Result) (string, error) {
	path := filepath.Join(dir, res.Filename())
	if err := writeFileAtomic(path, res.Content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	s.log.WithFields(map[string]any{"path": path}).Debug("theme written")
	return path, nil
}

// Diff compares the result with the file already present in dir. It returns
// an empty string when they match. A missing file diffs against empty content.
func (s *Service) Diff(dir string, res *Result) (string, error) {
	path := filepath.Join(dir, res.Filename())
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return diff.GenerateUnifiedDiff(current, res.Content, path, path+" (generated)"), nil
}

// Stats summarises an output for `theme build`.
type Stats struct {
	Bytes     int
	Gzipped   int
	Variables int
}

// ComputeStats measures the raw and gzip-compressed size of the result.
func ComputeStats(res *Result) (Stats, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return Stats{}, err
	}
	if _, err := zw.Write(res.Content); err != nil {
		return Stats{}, fmt.Errorf("compress output: %w", err)
	}
	if err := zw.Close(); err != nil {
		return Stats{}, fmt.Errorf("compress output: %w", err)
	}

	return Stats{
		Bytes:     len(res.Content),
		Gzipped:   buf.Len(),
		Variables: len(res.Variables),
	}, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".delvui-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
