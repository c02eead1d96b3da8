package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delvui/delvui/internal/tokens"
	delvuierrors "github.com/delvui/delvui/pkg/errors"
)

func fixtureTheme() Theme {
	return Theme{
		Name:    "Fixture",
		Version: "1.0.0",
		Colors: tokens.Tree{
			"brand": tokens.Tree{
				"50":  tokens.String("#f0f9ff"),
				"500": tokens.String("#0ea5e9"),
			},
			"neutral": tokens.Tree{"900": tokens.String("#18181b")},
		},
		Components: map[string]tokens.Tree{
			ComponentButton: {
				"root": tokens.Tree{
					"borderRadius": tokens.String("0.375rem"),
					"sm":           tokens.Tree{"fontSize": tokens.String("0.75rem")},
					"primary": tokens.Tree{
						"background":      tokens.String("var(--delvui-color-primary-500)"),
						"hoverBackground": tokens.String("var(--delvui-color-primary-600)"),
					},
				},
			},
		},
		CSSPrefix: "delvui",
		Metadata: Metadata{
			ColorScheme: "light",
			Author:      "DelvUI Team",
			Tags:        []string{"default", "light"},
		},
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestComposeWithoutOverridesIsIdentity(t *testing.T) {
	t.Parallel()

	base := fixtureTheme()
	composed, err := Compose(base)
	require.NoError(t, err)

	assert.True(t, Equal(base, composed))
}

func TestComposeOverridePrecedence(t *testing.T) {
	t.Parallel()

	composed, err := Compose(fixtureTheme(), Override{
		Colors: tokens.Tree{"brand": tokens.Tree{"500": tokens.String("#4caf50")}},
	})
	require.NoError(t, err)

	leaf, ok := composed.Colors.Lookup("brand.500")
	require.True(t, ok)
	assert.Equal(t, "#4caf50", leaf.String())

	leaf, ok = composed.Colors.Lookup("brand.50")
	require.True(t, ok)
	assert.Equal(t, "#f0f9ff", leaf.String())
}

func TestComposeLaterOverridesWin(t *testing.T) {
	t.Parallel()

	first := Override{Components: map[string]tokens.Tree{
		ComponentButton: {"root": tokens.Tree{"borderRadius": tokens.String("1rem")}},
	}}
	second := Override{Components: map[string]tokens.Tree{
		ComponentButton: {"root": tokens.Tree{"borderRadius": tokens.String("4px")}},
	}}

	composed, err := Compose(fixtureTheme(), first, second)
	require.NoError(t, err)

	leaf, _ := composed.Button().Lookup("root.borderRadius")
	assert.Equal(t, "4px", leaf.String())

	leaf, _ = composed.Button().Lookup("root.sm.fontSize")
	assert.Equal(t, "0.75rem", leaf.String())
}

func TestComposeDisjointOverridesAreOrderIndependent(t *testing.T) {
	t.Parallel()

	colors := Override{Colors: tokens.Tree{"neutral": tokens.Tree{"900": tokens.String("#000000")}}}
	button := Override{Components: map[string]tokens.Tree{
		ComponentButton: {"root": tokens.Tree{"primary": tokens.Tree{"background": tokens.String("red")}}},
	}}

	forward, err := Compose(fixtureTheme(), colors, button)
	require.NoError(t, err)
	backward, err := Compose(fixtureTheme(), button, colors)
	require.NoError(t, err)

	assert.True(t, Equal(forward, backward))
	leaf, _ := forward.Colors.Lookup("neutral.900")
	assert.Equal(t, "#000000", leaf.String())
	leaf, _ = forward.Button().Lookup("root.primary.background")
	assert.Equal(t, "red", leaf.String())
}

func TestComposeDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := fixtureTheme()
	baseSnapshot := base.Clone()
	override := Override{
		Colors:   tokens.Tree{"brand": tokens.Tree{"500": tokens.String("#4caf50")}},
		Metadata: &MetadataOverride{Tags: []string{"material"}},
	}

	composed, err := Compose(base, override)
	require.NoError(t, err)

	composed.Colors.Set([]string{"brand", "50"}, tokens.String("#123456"))
	composed.Metadata.Tags[0] = "changed"

	assert.True(t, Equal(baseSnapshot, base))
	assert.Equal(t, []string{"material"}, override.Metadata.Tags)
}

func TestComposeMetadataReplacesTagsWholesale(t *testing.T) {
	t.Parallel()

	composed, err := Compose(fixtureTheme(), Override{
		Metadata: &MetadataOverride{
			DarkMode:    boolPtr(true),
			ColorScheme: strPtr("dark"),
			Tags:        []string{"dark"},
		},
	})
	require.NoError(t, err)

	assert.True(t, composed.Metadata.DarkMode)
	assert.Equal(t, "dark", composed.Metadata.ColorScheme)
	assert.Equal(t, "DelvUI Team", composed.Metadata.Author, "unset fields are kept")
	assert.Equal(t, []string{"dark"}, composed.Metadata.Tags)
}

func TestComposeReplacesScalarFieldsWhenSet(t *testing.T) {
	t.Parallel()

	composed, err := Compose(fixtureTheme(), Override{Name: "Material Design", CSSPrefix: "acme"})
	require.NoError(t, err)

	assert.Equal(t, "Material Design", composed.Name)
	assert.Equal(t, "acme", composed.CSSPrefix)
	assert.Equal(t, "1.0.0", composed.Version)
}

func TestComposeAddsNewComponentTrees(t *testing.T) {
	t.Parallel()

	composed, err := Compose(fixtureTheme(), Override{Components: map[string]tokens.Tree{
		"spinner": {"size": tokens.String("1rem")},
	}})
	require.NoError(t, err)

	leaf, ok := composed.Components["spinner"].Lookup("size")
	require.True(t, ok)
	assert.Equal(t, "1rem", leaf.String())
}

func TestComposeRejectsInvalidBase(t *testing.T) {
	t.Parallel()

	noColors := fixtureTheme()
	noColors.Colors = nil

	_, err := Compose(noColors)
	var invalid *delvuierrors.InvalidThemeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "colors", invalid.Field)

	noButton := fixtureTheme()
	delete(noButton.Components, ComponentButton)

	_, err = Compose(noButton)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "components.button", invalid.Field)
}

func TestComposeReplacesComponentRoot(t *testing.T) {
	t.Parallel()

	var override Override
	override.ReplaceComponent(ComponentButton, tokens.Tree{
		"root": tokens.Tree{"onlyKey": tokens.String("1px")},
	})

	composed, err := Compose(fixtureTheme(), override)
	require.NoError(t, err)

	assert.Equal(t, 1, composed.Button().Leaves())
	_, ok := composed.Button().Lookup("root.sm.fontSize")
	assert.False(t, ok)
}

func TestComposeReplacesColorsRoot(t *testing.T) {
	t.Parallel()

	var override Override
	override.ReplaceColors(tokens.Tree{"accent": tokens.Tree{"500": tokens.String("#ff00ff")}})

	composed, err := Compose(fixtureTheme(), override)
	require.NoError(t, err)

	assert.Equal(t, []string{"accent"}, composed.Colors.Keys())
}

func TestComposeRejectsEmptyReplacementRoots(t *testing.T) {
	t.Parallel()

	var emptyButton Override
	emptyButton.ReplaceComponent(ComponentButton, tokens.Tree{})

	_, err := Compose(fixtureTheme(), emptyButton)
	var invalid *delvuierrors.InvalidThemeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "components.button", invalid.Field)

	var emptyColors Override
	emptyColors.ReplaceColors(tokens.Tree{})

	_, err = Compose(fixtureTheme(), emptyColors)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "colors", invalid.Field)
}

func TestLeavesCountsColorsAndComponents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, fixtureTheme().Leaves())
}
