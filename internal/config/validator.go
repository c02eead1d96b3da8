package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/delvui/delvui/internal/cssvars"
	"github.com/delvui/delvui/internal/theme"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
)

// Issue is a single finding reported by Check.
type Issue struct {
	Severity   Severity `json:"type"`
	Field      string   `json:"field,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Catalog is the view of the token store that validation needs.
type Catalog interface {
	Names() []string
	BaseTheme() theme.Theme
	Resolve(name string, extra ...theme.Override) (theme.Theme, error)
}

// DefaultPresetName is resolved when a config does not name a preset.
const DefaultPresetName = "default"

// ValidateConfig performs schema validation on the configuration and returns the first failure.
func ValidateConfig(cfg *ThemeConfig) error {
	if cfg == nil {
		return delvuierrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// ValidateCustomization checks quick customization input from flags or the wizard.
func ValidateCustomization(c Customization) error {
	if err := validatorInstance().Struct(c); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// Check reports every issue found in cfg. Schema problems come first, then
// references the catalog cannot satisfy, then problems that only show up once
// the theme is composed and flattened.
func Check(cfg *ThemeConfig, catalog Catalog) []Issue {
	if cfg == nil {
		return []Issue{{
			Severity:   SeverityError,
			Field:      "config",
			Message:    "Theme configuration is empty",
			Suggestion: "Add a name property to your theme config",
		}}
	}

	var issues []Issue
	if err := validatorInstance().Struct(cfg); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				issues = append(issues, issueFor(fe))
			}
		} else {
			issues = append(issues, Issue{Severity: SeverityError, Field: "config", Message: err.Error()})
		}
	}

	if catalog == nil {
		return issues
	}

	preset := cfg.Preset
	if preset == "" {
		preset = DefaultPresetName
	}
	known := catalog.Names()
	if !contains(known, preset) {
		issues = append(issues, Issue{
			Severity:   SeverityError,
			Field:      "preset",
			Message:    fmt.Sprintf("Preset %q does not exist", preset),
			Suggestion: "Available presets: " + strings.Join(known, ", "),
		})
	}

	issues = append(issues, unknownTrees(cfg.Overrides, catalog.BaseTheme())...)

	if hasErrors(issues) {
		return issues
	}

	resolved, err := catalog.Resolve(preset, cfg.Layers()...)
	if err != nil {
		return append(issues, Issue{Severity: SeverityError, Field: "overrides", Message: err.Error()})
	}
	if _, err := cssvars.Flatten(resolved); err != nil {
		issue := Issue{Severity: SeverityError, Field: "overrides", Message: err.Error()}
		var collision *delvuierrors.VariableCollisionError
		if errors.As(err, &collision) {
			issue.Suggestion = fmt.Sprintf("Rename %s or %s so they produce distinct variables", collision.First, collision.Second)
		}
		issues = append(issues, issue)
	}

	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return hasErrors(issues)
}

func hasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func unknownTrees(o theme.Override, base theme.Theme) []Issue {
	var issues []Issue
	for _, group := range o.Colors.Keys() {
		if _, ok := base.Colors[group]; !ok {
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Field:      "overrides.colors." + group,
				Message:    fmt.Sprintf("Color group %q is not part of the base palette", group),
				Suggestion: "Known groups: " + strings.Join(base.Colors.Keys(), ", "),
			})
		}
	}

	for name := range o.Components {
		if _, ok := base.Components[name]; !ok {
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Field:      "overrides.components." + name,
				Message:    fmt.Sprintf("Component %q has no base tokens", name),
				Suggestion: "Its variables are still generated; check the component name for typos",
			})
		}
	}
	return issues
}

func issueFor(fe validator.FieldError) Issue {
	field := yamlishFieldName(fe)
	issue := Issue{Severity: SeverityError, Field: field}

	switch fe.Tag() {
	case "required":
		issue.Message = fmt.Sprintf("%s is required", field)
		if field == "name" {
			issue.Message = "Theme name is required"
			issue.Suggestion = "Add a name property to your theme config"
		}
	case "hexcolor":
		issue.Message = fmt.Sprintf("%s %q is not a valid hex color", field, fe.Value())
		issue.Suggestion = "Use a value such as #0ea5e9"
	case "oneof":
		issue.Message = fmt.Sprintf("%s %q is not supported", field, fe.Value())
		issue.Suggestion = "Use one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "preset_name":
		issue.Message = fmt.Sprintf("%s %q is not a valid preset name", field, fe.Value())
		issue.Suggestion = "Preset names are lowercase letters, digits and dashes"
	case "css_prefix":
		issue.Message = fmt.Sprintf("%s %q is not a valid CSS variable prefix", field, fe.Value())
		issue.Suggestion = "Use a prefix such as delvui or --delvui"
	case "css_length":
		issue.Message = fmt.Sprintf("%s %q is not a CSS length", field, fe.Value())
		issue.Suggestion = "Use a value such as 6px or 0.375rem"
	case "semver":
		issue.Message = fmt.Sprintf("%s %q is not a semantic version", field, fe.Value())
		issue.Suggestion = "Use a version such as 1.0.0"
	default:
		issue.Message = fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag())
	}
	return issue
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return delvuierrors.NewValidationError(field, msg, err)
	}

	return delvuierrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName renders the field path the way it is spelled in the config file.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func yamlTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
