package repl

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/lam/lang"
)

// Styles for the definition hint line.
var (
	hintNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	hintBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// defHint returns a styled "name = body" hint when the word at the cursor
// exactly matches a defined name, or "" otherwise. The body is truncated to
// fit within width.
func defHint(defs *lang.Defs, input string, cursor, width int) string {
	word, _, _ := wordBounds(input, cursor)
	if word == "" {
		return ""
	}

	term, ok := defs.Lookup(word)
	if !ok {
		return ""
	}

	body := lang.Render(term)

	// Reserve room for the name and separator.
	avail := width - len(word) - 3
	if avail > 3 {
		body = truncate(body, avail)
	}

	return hintNameStyle.Render(word) +
		hintBodyStyle.Render(" = "+body)
}
