// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/theme.go
// Summary: Shared palette for the bundled widgets.

package widgets

import "github.com/gdamore/tcell/v2"

// Theme groups the styles widgets fall back to when none is given.
type Theme struct {
	Surface   tcell.Style
	Text      tcell.Style
	Muted     tcell.Style
	Focus     tcell.Style
	Selection tcell.Style
	Accent    tcell.Style
	Error     tcell.Style
}

// DefaultTheme is a dark palette.
var DefaultTheme = Theme{
	Surface:   tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	Text:      tcell.StyleDefault.Background(tcell.NewRGBColor(0x1e, 0x1e, 0x2e)).Foreground(tcell.NewRGBColor(0xcd, 0xd6, 0xf4)),
	Muted:     tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray),
	Focus:     tcell.StyleDefault.Background(tcell.NewRGBColor(0x31, 0x32, 0x44)).Foreground(tcell.ColorWhite),
	Selection: tcell.StyleDefault.Background(tcell.NewRGBColor(0x58, 0x5b, 0x70)).Foreground(tcell.ColorWhite),
	Accent:    tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(0x89, 0xb4, 0xfa)).Bold(true),
	Error:     tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorRed),
}
