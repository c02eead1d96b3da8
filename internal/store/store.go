// Package store holds the immutable base theme and the preset registry.
//
// A Store is built once, usually from the embedded data directory through
// NewBuiltin, and passed explicitly to whatever needs it. Every accessor
// returns deep copies so callers can never mutate the registry.
package store

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/delvui/delvui/internal/theme"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

//go:embed data
var builtinData embed.FS

// BuiltinPresets lists the presets shipped with the binary in registration order.
var BuiltinPresets = []string{"default", "dark", "material", "apple", "bootstrap", "chakra"}

// DefaultPreset is the preset used when none is requested.
const DefaultPreset = "default"

// Preset is a named override layer.
type Preset struct {
	Key      string
	Override theme.Override
}

// Title returns the display name of the preset.
func (p Preset) Title() string {
	return p.Override.Name
}

// Description returns the preset description.
func (p Preset) Description() string {
	return p.Override.Description
}

// Tags returns the metadata tags the preset applies.
func (p Preset) Tags() []string {
	if p.Override.Metadata == nil {
		return nil
	}
	return append([]string(nil), p.Override.Metadata.Tags...)
}

// Store is a read-only registry of one base theme and its presets.
type Store struct {
	base    theme.Theme
	presets map[string]Preset
}

// presetFile is the on-disk shape of a preset document.
type presetFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Overrides   theme.Override          `yaml:"overrides"`
	Metadata    *theme.MetadataOverride `yaml:"metadata"`
}

// NewBuiltin loads the embedded base theme and the built-in presets.
func NewBuiltin() (*Store, error) {
	base, err := decodeBase(builtinData, "data/base.yaml")
	if err != nil {
		return nil, err
	}

	presets := make([]Preset, 0, len(BuiltinPresets))
	for _, key := range BuiltinPresets {
		preset, err := decodePreset(builtinData, key, path.Join("data", "presets", key+".yaml"))
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}

	return New(base, presets...)
}

// New builds a store from an explicit base theme and preset list. The base
// must satisfy the theme invariants and preset keys must be unique.
func New(base theme.Theme, presets ...Preset) (*Store, error) {
	if err := theme.Validate(base); err != nil {
		return nil, err
	}
	if base.CSSPrefix == "" {
		return nil, delvuierrors.NewInvalidThemeError(base.Name, "cssPrefix", "prefix must not be empty")
	}

	s := &Store{
		base:    base.Clone(),
		presets: make(map[string]Preset, len(presets)),
	}
	for _, preset := range presets {
		if preset.Key == "" {
			return nil, delvuierrors.NewValidationError("preset", "preset key must not be empty", nil)
		}
		if _, exists := s.presets[preset.Key]; exists {
			return nil, delvuierrors.NewValidationError("preset", fmt.Sprintf("duplicate preset %q", preset.Key), nil)
		}
		s.presets[preset.Key] = Preset{Key: preset.Key, Override: preset.Override.Clone()}
	}
	return s, nil
}

// BaseTheme returns a deep copy of the base theme.
func (s *Store) BaseTheme() theme.Theme {
	return s.base.Clone()
}

// Preset looks up a preset override by exact name.
func (s *Store) Preset(name string) (theme.Override, error) {
	preset, ok := s.presets[name]
	if !ok {
		return theme.Override{}, delvuierrors.NewPresetNotFoundError(name, s.Names())
	}
	return preset.Override.Clone(), nil
}

// Names returns the registered preset keys in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.presets))
	for key := range s.presets {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Presets returns every preset sorted by key.
func (s *Store) Presets() []Preset {
	names := s.Names()
	out := make([]Preset, 0, len(names))
	for _, key := range names {
		preset := s.presets[key]
		out = append(out, Preset{Key: key, Override: preset.Override.Clone()})
	}
	return out
}

// Resolve composes the base theme with the named preset and any extra layers.
func (s *Store) Resolve(name string, extra ...theme.Override) (theme.Theme, error) {
	preset, err := s.Preset(name)
	if err != nil {
		return theme.Theme{}, err
	}

	layers := make([]theme.Override, 0, len(extra)+1)
	layers = append(layers, preset)
	layers = append(layers, extra...)
	return theme.Compose(s.base, layers...)
}

func decodeBase(fsys fs.FS, name string) (theme.Theme, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return theme.Theme{}, fmt.Errorf("read base theme: %w", err)
	}

	var base theme.Theme
	if err := yaml.Unmarshal(data, &base); err != nil {
		return theme.Theme{}, delvuierrors.NewParseError(name, delvuierrors.LineFromMessage(err), err)
	}
	return base, nil
}

func decodePreset(fsys fs.FS, key, name string) (Preset, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset %s: %w", key, err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Preset{}, delvuierrors.NewParseError(name, delvuierrors.LineFromMessage(err), err)
	}

	override := file.Overrides
	override.Name = file.Name
	override.Description = file.Description
	if file.Metadata != nil {
		override.Metadata = file.Metadata
	}
	return Preset{Key: key, Override: override}, nil
}
