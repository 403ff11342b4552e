package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

//nolint:gochecknoglobals
var (
	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// isWordBoundary reports whether the rune delimits a completable word.
// Every operator and punctuation character of the expression grammar is a
// boundary.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', '[', ']', ',',
		'+', '-', '*', '/', '%', '^',
		'<', '>', '=', '!',
		'&', '|':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. The word is empty when the cursor sits on a
// boundary (after a space, after an operator, start of line).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// renderCandidateBar renders the completion candidates on a single line,
// highlighting the selection while tab-cycling and truncating to width.
func renderCandidateBar(
	matches []string,
	selected int,
	active bool,
	width int,
) string {
	var b strings.Builder

	for i, match := range matches {
		if i > 0 {
			b.WriteString("  ")
		}

		if active && i == selected {
			b.WriteString(selectedStyle.Render(match))
		} else {
			b.WriteString(candidateStyle.Render(match))
		}

		if lipgloss.Width(b.String()) > width {
			break
		}
	}

	return b.String()
}
