package rendering

import "strings"

// EscapeLaTeX escapes text for use in a LaTeX document body.
// Special characters: \ { } $ & % # ^ _ ~ < > |
// En and em dashes become their ligature forms and newlines become line breaks.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/2)

	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '{', '}', '$', '&', '%', '#', '_':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '<':
			b.WriteString(`\textless{}`)
		case '>':
			b.WriteString(`\textgreater{}`)
		case '|':
			b.WriteString(`\textbar{}`)
		case '–':
			b.WriteString("--")
		case '—':
			b.WriteString("---")
		case '\n':
			b.WriteString(`\\`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// joinLaTeX escapes items and joins them with a bullet separator.
func joinLaTeX(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = EscapeLaTeX(item)
	}
	return strings.Join(escaped, ` \textbullet{} `)
}
