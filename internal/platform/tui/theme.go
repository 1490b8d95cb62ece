package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beambox/internal/prize"
)

// Theme contains the visual styles for the board view.
type Theme struct {
	// Board cells
	Empty          lipgloss.Style
	Corner         lipgloss.Style
	Obstacle       lipgloss.Style
	HiddenObstacle lipgloss.Style
	Destroyed      lipgloss.Style
	Resolved       lipgloss.Style
	Cursor         lipgloss.Style

	// Prize tiles by category
	Money     lipgloss.Style
	Jackpot   lipgloss.Style
	Inventory lipgloss.Style
	Beam      lipgloss.Style
	Bomb      lipgloss.Style

	// Beam path overlay
	PathTrail lipgloss.Style
	PathPoint lipgloss.Style
	PathEnd   lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDActive    lipgloss.Style
	HUDSeparator lipgloss.Style
	Status       lipgloss.Style
	Warning      lipgloss.Style
	Help         lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Empty:          lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Corner:         lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Obstacle:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		HiddenObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("96")),
		Destroyed:      lipgloss.NewStyle().Foreground(lipgloss.Color("88")),
		Resolved:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cursor:         lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),

		Money:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Jackpot:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Inventory: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Beam:      lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		Bomb:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		PathTrail: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		PathPoint: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		PathEnd:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("130")),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Italic(true),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Help:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Money = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.Jackpot = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.Inventory = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Beam = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	theme.Bomb = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Reverse(true)
	theme.PathTrail = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.PathPoint = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	return theme
}

// ThemeByName resolves a theme name from the command line.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "mono", "monochrome":
		return MonochromeTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (want default or mono)", name)
	}
}

// PrizeStyle returns the style for an unresolved prize tile.
func (t Theme) PrizeStyle(k prize.Kind) lipgloss.Style {
	if k == prize.Jackpot {
		return t.Jackpot
	}
	switch k.Category() {
	case prize.CategoryMoney:
		return t.Money
	case prize.CategoryInventory:
		return t.Inventory
	case prize.CategoryBeam:
		return t.Beam
	case prize.CategoryBomb:
		return t.Bomb
	default:
		return t.Empty
	}
}
