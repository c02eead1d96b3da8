package errors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var lineRegex = regexp.MustCompile(`line (\d+)`)

// LineFromMessage extracts the first "line N" reference from err's message,
// as produced by yaml.v3 and the token decoders. It returns 0 when there is none.
func LineFromMessage(err error) int {
	if err == nil {
		return 0
	}
	matches := lineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}

// ParseError represents a theme or config file parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PresetNotFoundError reports a preset lookup against an unknown name.
type PresetNotFoundError struct {
	Name  string
	Known []string
}

// NewPresetNotFoundError constructs a PresetNotFoundError.
func NewPresetNotFoundError(name string, known []string) error {
	return &PresetNotFoundError{Name: name, Known: known}
}

func (e *PresetNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Known) == 0 {
		return fmt.Sprintf("preset %q not found", e.Name)
	}
	return fmt.Sprintf("preset %q not found (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// InvalidThemeError reports a theme that is missing required token trees.
type InvalidThemeError struct {
	Theme  string
	Field  string
	Reason string
}

// NewInvalidThemeError constructs an InvalidThemeError.
func NewInvalidThemeError(theme, field, reason string) error {
	return &InvalidThemeError{Theme: theme, Field: field, Reason: reason}
}

func (e *InvalidThemeError) Error() string {
	if e == nil {
		return ""
	}
	name := e.Theme
	if name == "" {
		name = "(unnamed)"
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid theme %s: %s: %s", name, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid theme %s: %s", name, e.Reason)
}

// TokenValueError reports a token leaf that is neither a string nor a number.
type TokenValueError struct {
	Path  string
	Value any
}

// NewTokenValueError constructs a TokenValueError.
func NewTokenValueError(path string, value any) error {
	return &TokenValueError{Path: path, Value: value}
}

func (e *TokenValueError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("token error: %s: unsupported value %v (%T); leaves must be strings or numbers", e.Path, e.Value, e.Value)
}

// VariableCollisionError reports two token paths that flatten to the same CSS variable.
type VariableCollisionError struct {
	Name   string
	First  string
	Second string
}

// NewVariableCollisionError constructs a VariableCollisionError.
func NewVariableCollisionError(name, first, second string) error {
	return &VariableCollisionError{Name: name, First: first, Second: second}
}

func (e *VariableCollisionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("variable collision: --%s produced by both %s and %s", e.Name, e.First, e.Second)
}
