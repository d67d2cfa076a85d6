package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	AppFrame       lipgloss.Style
	Header         lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderValue    lipgloss.Style
	OptionLabel    lipgloss.Style
	OptionValue    lipgloss.Style
	OptionChanged  lipgloss.Style
	OptionDisabled lipgloss.Style
	FilterLabel    lipgloss.Style
	FilterFocused  lipgloss.Style
	FilterSummary  lipgloss.Style
	DataBorder     lipgloss.Style
	DataTitle      lipgloss.Style
	StatusBar      lipgloss.Style
	CommandBarHint lipgloss.Style
	Notification   lipgloss.Style
	Warning        lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style
	SpinnerColor   lipgloss.Color
	HighlightStyle string
}

func DefaultTheme() Theme {
	accent := lipgloss.Color("#7D56F4")
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("#dcd7ff"))

	return Theme{
		AppFrame:       lipgloss.NewStyle().Padding(0, 1),
		Header:         base,
		HeaderBrand:    lipgloss.NewStyle().Foreground(lipgloss.Color("#0F111A")).Background(accent).Bold(true).Padding(0, 1),
		HeaderValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		OptionLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		OptionValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E1FF")),
		OptionChanged:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD46A")).Bold(true),
		OptionDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#4B4763")),
		FilterLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		FilterFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD46A")).Bold(true),
		FilterSummary:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FB3B3")).Italic(true),
		DataBorder:     base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5FB3B3")),
		DataTitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5FB3B3")).Bold(true),
		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		CommandBarHint: lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		Notification:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E1FF")),
		Warning:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")).Bold(true),
		Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF1B2")),
		SpinnerColor:   lipgloss.Color("205"),
		HighlightStyle: "monokai",
	}
}
