// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/richtext/highlight.go
// Summary: Chroma syntax colouring for the source drawer.

package richtext

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	enry "github.com/go-enry/go-enry/v2"

	"github.com/framegrace/nestedjson/ui/widgets"
)

// DefaultStyleName is used when the configured style is empty or unknown.
const DefaultStyleName = "catppuccin-mocha"

// sourceName is the file name handed to the language classifier. The
// drawer always holds serialized editor content, so the extension biases
// detection towards HTML while the content can still override it.
const sourceName = "source.html"

// DetectLanguage names the language of code, defaulting to HTML.
func DetectLanguage(code string) string {
	if lang := enry.GetLanguage(sourceName, []byte(code)); lang != "" {
		return lang
	}
	return "HTML"
}

// Highlighter keeps per-rune styles for the last text it was given.
type Highlighter struct {
	style *chroma.Style
	base  tcell.Style
	lang  string
	text  string
	lines [][]tcell.Style
}

// NewHighlighter resolves styleName through chroma's registry. base is the
// style for text the chroma style leaves uncoloured.
func NewHighlighter(styleName string, base tcell.Style) *Highlighter {
	if styleName == "" {
		styleName = DefaultStyleName
	}
	return &Highlighter{style: styles.Get(styleName), base: base}
}

// Language returns the language detected by the last Update.
func (h *Highlighter) Language() string { return h.lang }

// Update re-tokenises code when it changed since the last call.
func (h *Highlighter) Update(code string) {
	if code == h.text && h.lines != nil {
		return
	}
	h.text = code
	h.lang = DetectLanguage(code)
	h.lines = h.tokenise(code)
}

func (h *Highlighter) tokenise(code string) [][]tcell.Style {
	lexer := lexers.Get(h.lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, code)
	if err != nil {
		return [][]tcell.Style{}
	}
	lines := [][]tcell.Style{nil}
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := h.tokenStyle(tok.Type)
		for _, r := range tok.Value {
			if r == '\n' {
				lines = append(lines, nil)
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], st)
		}
	}
	return lines
}

func (h *Highlighter) tokenStyle(tt chroma.TokenType) tcell.Style {
	entry := h.style.Get(tt)
	st := h.base
	if entry.Colour.IsSet() {
		c := entry.Colour
		st = st.Foreground(tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue())))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// Styler adapts the highlighter to a TextArea. Lines whose rune count no
// longer matches the tokenised text are drawn unstyled.
func (h *Highlighter) Styler() widgets.LineStyler {
	return func(line int, text string) []tcell.Style {
		if line < 0 || line >= len(h.lines) {
			return nil
		}
		row := h.lines[line]
		if len(row) != len([]rune(text)) {
			return nil
		}
		return row
	}
}
