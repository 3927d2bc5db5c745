// Package theme provides theme definitions and management for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used in the application UI.
type Theme struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // Foreground color for text on Accent background
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Cyan       lipgloss.Color
	Yellow     lipgloss.Color
}

// Theme names.
const (
	DraculaName         = "dracula"
	NordName            = "nord"
	CatppuccinMochaName = "catppuccin-mocha"
	CleanLightName      = "clean-light"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282A36"),
		Accent:     lipgloss.Color("#BD93F9"),
		AccentFg:   lipgloss.Color("#282A36"),
		AccentDim:  lipgloss.Color("#44475A"),
		Border:     lipgloss.Color("#6272A4"),
		BorderDim:  lipgloss.Color("#44475A"),
		MutedFg:    lipgloss.Color("#6272A4"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		SuccessFg:  lipgloss.Color("#50FA7B"),
		WarnFg:     lipgloss.Color("#FFB86C"),
		ErrorFg:    lipgloss.Color("#FF5555"),
		Cyan:       lipgloss.Color("#8BE9FD"),
		Yellow:     lipgloss.Color("#F1FA8C"),
	}
}

// Nord returns the Nord theme (arctic, bluish palette).
func Nord() *Theme {
	return &Theme{
		Background: lipgloss.Color("#2E3440"),
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"),
		AccentDim:  lipgloss.Color("#434C5E"),
		Border:     lipgloss.Color("#4C566A"),
		BorderDim:  lipgloss.Color("#3B4252"),
		MutedFg:    lipgloss.Color("#616E88"),
		TextFg:     lipgloss.Color("#ECEFF4"),
		SuccessFg:  lipgloss.Color("#A3BE8C"),
		WarnFg:     lipgloss.Color("#EBCB8B"),
		ErrorFg:    lipgloss.Color("#BF616A"),
		Cyan:       lipgloss.Color("#8FBCBB"),
		Yellow:     lipgloss.Color("#EBCB8B"),
	}
}

// CatppuccinMocha returns the Catppuccin Mocha theme (soothing dark pastel).
func CatppuccinMocha() *Theme {
	return &Theme{
		Background: lipgloss.Color("#1E1E2E"),
		Accent:     lipgloss.Color("#CBA6F7"),
		AccentFg:   lipgloss.Color("#1E1E2E"),
		AccentDim:  lipgloss.Color("#45475A"),
		Border:     lipgloss.Color("#6C7086"),
		BorderDim:  lipgloss.Color("#45475A"),
		MutedFg:    lipgloss.Color("#7F849C"),
		TextFg:     lipgloss.Color("#CDD6F4"),
		SuccessFg:  lipgloss.Color("#A6E3A1"),
		WarnFg:     lipgloss.Color("#FAB387"),
		ErrorFg:    lipgloss.Color("#F38BA8"),
		Cyan:       lipgloss.Color("#89DCEB"),
		Yellow:     lipgloss.Color("#F9E2AF"),
	}
}

// CleanLight returns a light theme with high contrast on white terminals.
func CleanLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FFFFFF"),
		Accent:     lipgloss.Color("#6F42C1"),
		AccentFg:   lipgloss.Color("#FFFFFF"),
		AccentDim:  lipgloss.Color("#E6E6FA"),
		Border:     lipgloss.Color("#A0A0A0"),
		BorderDim:  lipgloss.Color("#D0D0D0"),
		MutedFg:    lipgloss.Color("#6A737D"),
		TextFg:     lipgloss.Color("#24292E"),
		SuccessFg:  lipgloss.Color("#22863A"),
		WarnFg:     lipgloss.Color("#B08800"),
		ErrorFg:    lipgloss.Color("#D73A49"),
		Cyan:       lipgloss.Color("#0366D6"),
		Yellow:     lipgloss.Color("#B08800"),
	}
}

// Get returns the theme for the given name, falling back to Dracula when the
// name is unknown or empty.
func Get(name string) *Theme {
	switch name {
	case NordName:
		return Nord()
	case CatppuccinMochaName:
		return CatppuccinMocha()
	case CleanLightName:
		return CleanLight()
	case DraculaName, "":
		return Dracula()
	default:
		return Dracula()
	}
}

// AvailableThemes lists the theme names accepted in the configuration.
func AvailableThemes() []string {
	return []string{DraculaName, NordName, CatppuccinMochaName, CleanLightName}
}
