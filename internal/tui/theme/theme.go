package theme

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

var (
	mu       sync.RWMutex
	registry = map[string]func() *Theme{
		"catppuccin-mocha": NewCatppuccinMocha,
		"catppuccin-latte": NewCatppuccinLatte,
	}
	current = NewCatppuccinMocha()
)

// DefaultName is the theme used when none is configured.
const DefaultName = "catppuccin-mocha"

// Current returns the active theme.
func Current() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set makes the named theme current. An empty name selects the default.
func Set(name string) error {
	if name == "" {
		name = DefaultName
	}
	mu.Lock()
	defer mu.Unlock()
	ctor, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, namesLocked())
	}
	current = ctor()
	return nil
}

// Names lists the registered themes.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HexToColor converts a hex string to a color usable by lipgloss and tea.View.
func HexToColor(hex string) color.Color {
	return lipgloss.Color(hex)
}
