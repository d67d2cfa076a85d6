package theme

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/styles"
	"github.com/charmbracelet/lipgloss"
)

// ThemeSpec is the [theme] section of the settings file. Every field is
// optional; unset fields keep the default theme's value.
type ThemeSpec struct {
	Styles StylesSpec `json:"styles" toml:"styles"`
	Colors ColorsSpec `json:"colors" toml:"colors"`
	// Highlight names the chroma style used for the raw HTML view.
	Highlight *string `json:"highlight" toml:"highlight"`
}

type StylesSpec struct {
	Header         *StyleSpec `json:"header"           toml:"header"`
	HeaderBrand    *StyleSpec `json:"header_brand"     toml:"header_brand"`
	HeaderValue    *StyleSpec `json:"header_value"     toml:"header_value"`
	OptionLabel    *StyleSpec `json:"option_label"     toml:"option_label"`
	OptionValue    *StyleSpec `json:"option_value"     toml:"option_value"`
	OptionChanged  *StyleSpec `json:"option_changed"   toml:"option_changed"`
	OptionDisabled *StyleSpec `json:"option_disabled"  toml:"option_disabled"`
	FilterLabel    *StyleSpec `json:"filter_label"     toml:"filter_label"`
	FilterFocused  *StyleSpec `json:"filter_focused"   toml:"filter_focused"`
	FilterSummary  *StyleSpec `json:"filter_summary"   toml:"filter_summary"`
	DataBorder     *StyleSpec `json:"data_border"      toml:"data_border"`
	DataTitle      *StyleSpec `json:"data_title"       toml:"data_title"`
	StatusBar      *StyleSpec `json:"status_bar"       toml:"status_bar"`
	CommandBarHint *StyleSpec `json:"command_bar_hint" toml:"command_bar_hint"`
	Notification   *StyleSpec `json:"notification"     toml:"notification"`
	Warning        *StyleSpec `json:"warning"          toml:"warning"`
	Error          *StyleSpec `json:"error"            toml:"error"`
	Success        *StyleSpec `json:"success"          toml:"success"`
}

type ColorsSpec struct {
	Spinner *string `json:"spinner" toml:"spinner"`
}

type StyleSpec struct {
	Foreground  *string `json:"foreground"   toml:"foreground"`
	Background  *string `json:"background"   toml:"background"`
	BorderColor *string `json:"border_color" toml:"border_color"`
	BorderStyle *string `json:"border_style" toml:"border_style"`
	Bold        *bool   `json:"bold"         toml:"bold"`
	Italic      *bool   `json:"italic"       toml:"italic"`
	Underline   *bool   `json:"underline"    toml:"underline"`
	Faint       *bool   `json:"faint"        toml:"faint"`
	Align       *string `json:"align"        toml:"align"`
}

func ApplySpec(base Theme, spec ThemeSpec) (Theme, error) {
	out := base

	overrides := []struct {
		name     string
		target   *lipgloss.Style
		override *StyleSpec
	}{
		{"header", &out.Header, spec.Styles.Header},
		{"header_brand", &out.HeaderBrand, spec.Styles.HeaderBrand},
		{"header_value", &out.HeaderValue, spec.Styles.HeaderValue},
		{"option_label", &out.OptionLabel, spec.Styles.OptionLabel},
		{"option_value", &out.OptionValue, spec.Styles.OptionValue},
		{"option_changed", &out.OptionChanged, spec.Styles.OptionChanged},
		{"option_disabled", &out.OptionDisabled, spec.Styles.OptionDisabled},
		{"filter_label", &out.FilterLabel, spec.Styles.FilterLabel},
		{"filter_focused", &out.FilterFocused, spec.Styles.FilterFocused},
		{"filter_summary", &out.FilterSummary, spec.Styles.FilterSummary},
		{"data_border", &out.DataBorder, spec.Styles.DataBorder},
		{"data_title", &out.DataTitle, spec.Styles.DataTitle},
		{"status_bar", &out.StatusBar, spec.Styles.StatusBar},
		{"command_bar_hint", &out.CommandBarHint, spec.Styles.CommandBarHint},
		{"notification", &out.Notification, spec.Styles.Notification},
		{"warning", &out.Warning, spec.Styles.Warning},
		{"error", &out.Error, spec.Styles.Error},
		{"success", &out.Success, spec.Styles.Success},
	}
	for _, o := range overrides {
		if o.override == nil {
			continue
		}
		next, err := o.override.apply(*o.target)
		if err != nil {
			return Theme{}, fmt.Errorf("%s: %w", o.name, err)
		}
		*o.target = next
	}

	if spec.Colors.Spinner != nil {
		color, err := toColor("spinner", *spec.Colors.Spinner)
		if err != nil {
			return Theme{}, err
		}
		out.SpinnerColor = color
	}
	if spec.Highlight != nil {
		name := strings.ToLower(strings.TrimSpace(*spec.Highlight))
		if _, ok := styles.Registry[name]; !ok {
			return Theme{}, fmt.Errorf("highlight: unknown style %q", *spec.Highlight)
		}
		out.HighlightStyle = name
	}
	return out, nil
}

func (s *StyleSpec) apply(base lipgloss.Style) (lipgloss.Style, error) {
	if s == nil {
		return base, nil
	}
	current := base
	if s.Foreground != nil {
		color, err := toColor("foreground", *s.Foreground)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Foreground(color)
	}
	if s.Background != nil {
		color, err := toColor("background", *s.Background)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Background(color)
	}
	if s.BorderColor != nil {
		color, err := toColor("border_color", *s.BorderColor)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.BorderForeground(color)
	}
	if s.BorderStyle != nil {
		normalized := strings.ToLower(strings.TrimSpace(*s.BorderStyle))
		if normalized != "inherit" {
			border, err := parseBorderStyle(normalized)
			if err != nil {
				return lipgloss.Style{}, err
			}
			current = current.BorderStyle(border)
		}
	}
	if s.Bold != nil {
		current = current.Bold(*s.Bold)
	}
	if s.Italic != nil {
		current = current.Italic(*s.Italic)
	}
	if s.Underline != nil {
		current = current.Underline(*s.Underline)
	}
	if s.Faint != nil {
		current = current.Faint(*s.Faint)
	}
	if s.Align != nil {
		align, err := parseAlign(*s.Align)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Align(align)
	}
	return current, nil
}

func toColor(field string, value string) (lipgloss.Color, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s: colour value may not be empty", field)
	}
	return lipgloss.Color(trimmed), nil
}

func parseAlign(value string) (lipgloss.Position, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left", "start", "default", "":
		return lipgloss.Left, nil
	case "center", "centre", "middle":
		return lipgloss.Center, nil
	case "right", "end":
		return lipgloss.Right, nil
	default:
		return lipgloss.Left, fmt.Errorf("align: unknown alignment %q", value)
	}
}

func parseBorderStyle(value string) (lipgloss.Border, error) {
	switch value {
	case "":
		return lipgloss.Border{}, fmt.Errorf("border_style: value may not be empty")
	case "none", "hidden", "off":
		return lipgloss.Border{}, nil
	case "normal", "single":
		return lipgloss.NormalBorder(), nil
	case "rounded":
		return lipgloss.RoundedBorder(), nil
	case "thick", "heavy":
		return lipgloss.ThickBorder(), nil
	case "double":
		return lipgloss.DoubleBorder(), nil
	case "block":
		return lipgloss.BlockBorder(), nil
	default:
		return lipgloss.Border{}, fmt.Errorf("border_style: unknown border style %q", value)
	}
}
