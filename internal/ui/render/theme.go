package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DimFg       tcell.Color
	AccentFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	ReadingBg   tcell.Color
	ReadingFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DimFg:       tcell.ColorLightSlateGray,
		AccentFg:    tcell.Color33,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		ReadingBg:   tcell.ColorDefault,
		ReadingFg:   tcell.ColorDefault,
	}
}

// BaseStyle is the default text style under the theme.
func (t ColorTheme) BaseStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

// SelectionStyle highlights the selected list row.
func (t ColorTheme) SelectionStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.SelectionBg).Foreground(t.SelectionFg)
}

// FooterStyle renders the bottom hint rows.
func (t ColorTheme) FooterStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.FooterBg).Foreground(t.FooterFg)
}

// HeaderStyle renders the top title row.
func (t ColorTheme) HeaderStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.HeaderBg).Foreground(t.HeaderFg)
}

// ReadingStyle renders book page text.
func (t ColorTheme) ReadingStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.ReadingBg).Foreground(t.ReadingFg)
}

// DimStyle renders de-emphasized text like empty-list messages.
func (t ColorTheme) DimStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.DimFg)
}

// AccentStyle highlights transient prompts like a pending page jump.
func (t ColorTheme) AccentStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.FooterBg).Foreground(t.AccentFg)
}
