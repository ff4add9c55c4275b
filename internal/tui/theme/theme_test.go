package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatppuccinMocha_Palette(t *testing.T) {
	th := NewCatppuccinMocha()
	require.Equal(t, "catppuccin-mocha", th.Name)
	require.True(t, th.IsDark)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Tertiary (Lavender)", th.Tertiary, "#b4befe"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"FgBase (Text)", th.FgBase, "#cdd6f4"},
		{"Error (Red)", th.Error, "#f38ba8"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.got, tt.name)
	}
}

func TestSet(t *testing.T) {
	t.Cleanup(func() { _ = Set("") })

	require.Equal(t, DefaultName, Current().Name)

	require.NoError(t, Set("catppuccin-latte"))
	require.Equal(t, "catppuccin-latte", Current().Name)
	require.False(t, Current().IsDark)

	err := Set("neon")
	require.Error(t, err)
	require.Contains(t, err.Error(), "catppuccin-mocha")
	require.Equal(t, "catppuccin-latte", Current().Name, "failed Set keeps the current theme")

	require.NoError(t, Set(""))
	require.Equal(t, DefaultName, Current().Name)
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"catppuccin-latte", "catppuccin-mocha"}, Names())
}

func TestStylesAreCached(t *testing.T) {
	th := NewCatppuccinMocha()
	require.Same(t, th.S(), th.S())
}

func TestInterpolateColor(t *testing.T) {
	tests := []struct {
		name string
		pos  float64
		want string
	}{
		{"start", 0, "#000000"},
		{"end", 1, "#ffffff"},
		{"middle", 0.5, "#7f7f7f"},
		{"clamped below", -1, "#000000"},
		{"clamped above", 2, "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, InterpolateColor("#000000", "#ffffff", tt.pos))
		})
	}
}

func TestGradient(t *testing.T) {
	require.Nil(t, Gradient("#000000", "#ffffff", 0))
	require.Equal(t, []string{"#000000"}, Gradient("#000000", "#ffffff", 1))
	require.Equal(t, []string{"#000000", "#7f7f7f", "#ffffff"}, Gradient("#000000", "#ffffff", 3))
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	require.Equal(t, []uint8{0xcb, 0xa6, 0xf7}, []uint8{r, g, b})

	r, g, b = ParseHexColor("nope")
	require.Zero(t, r)
	require.Zero(t, g)
	require.Zero(t, b)
}

func TestApplyGradient(t *testing.T) {
	out := ApplyGradient("a b", "#000000", "#ffffff")
	require.Contains(t, out, "a")
	require.Contains(t, out, " ")
	require.Contains(t, out, "b")
	require.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
}
