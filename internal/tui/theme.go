package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the directory screens use.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorError   = colorRed
	colorInfo    = colorTeal
	colorLoading = colorBlue
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	chipStyle     = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 1)
	chipActive    = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorFocus).Padding(0, 1)
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInfo)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	selectedName  = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	hintStyle     = lipgloss.NewStyle().Italic(true).Foreground(colorOverlay0)
	starStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	loadingStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorLoading)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	subErrorStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	emptyStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	suggestStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	statusStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)
)
