// Package observability provides structured logging and formatted output
// for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintView outputs a readable rendition of a projected view: header, then
// each visible section with its entries.
func (p *Printer) PrintView(view *types.View) {
	if view == nil {
		return
	}

	var sb strings.Builder
	if view.Name != "" {
		sb.WriteString(view.Name + "\n")
	}
	if view.Contact != "" {
		sb.WriteString(view.Contact + "\n")
	}
	if len(view.Sections) == 0 {
		sb.WriteString("(no sections with content)\n")
	}

	for _, s := range view.Sections {
		sb.WriteString("\n" + strings.ToUpper(s.Title) + "\n")
		switch s.Kind {
		case types.KindText:
			sb.WriteString("  " + s.Body + "\n")
		case types.KindSkills:
			sb.WriteString("  " + strings.Join(s.Items, ", ") + "\n")
		default:
			for _, e := range s.Entries {
				head := e.Heading
				if e.Dates != "" {
					head += " (" + e.Dates + ")"
				}
				sb.WriteString("  • " + head + "\n")
				if e.Subheading != "" {
					sb.WriteString("    " + e.Subheading + "\n")
				}
				for _, d := range e.Details {
					sb.WriteString(fmt.Sprintf("    %s: %s\n", d.Label, d.Value))
				}
				for _, l := range e.Lists {
					for _, item := range l.Items {
						sb.WriteString("    - " + item + "\n")
					}
				}
			}
		}
	}

	p.printBox(view.Title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocumentSummary outputs entry counts and filled fields per section.
func (p *Printer) PrintDocumentSummary(doc *types.Document, v *types.Variant) {
	if doc == nil || v == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Variant:  %s (%s)\n", v.Name, v.Label))
	name := doc.Personal.Name
	if fields.IsBlank(name) {
		name = "(unset)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	sb.WriteString("\n")

	for _, b := range v.TextBlocks {
		state := "empty"
		if !fields.IsBlank(doc.Text[b.Key]) {
			state = fmt.Sprintf("%d chars", len([]rune(strings.TrimSpace(doc.Text[b.Key]))))
		}
		sb.WriteString(fmt.Sprintf("%-24s %s\n", b.Key, state))
	}

	for _, schema := range v.Sections {
		entries := doc.Sections[schema.Key]
		filled := 0
		for _, e := range entries {
			for _, f := range schema.Fields {
				if !fields.IsBlank(e.Fields[f]) {
					filled++
				}
			}
		}
		sb.WriteString(fmt.Sprintf("%-24s %d entries, %d fields set\n", schema.Key, len(entries), filled))
	}

	sb.WriteString(fmt.Sprintf("%-24s %d", types.SkillsKey, len(doc.Skills)))
	if len(doc.Skills) > 0 {
		count := min(len(doc.Skills), maxItemsToShow)
		labels := make([]string, 0, count)
		for _, sk := range doc.Skills[:count] {
			labels = append(labels, sk.Label)
		}
		sb.WriteString(" (" + strings.Join(labels, ", "))
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(", +%d", len(doc.Skills)-maxItemsToShow))
		}
		sb.WriteString(")")
	}

	p.printBox("DOCUMENT SUMMARY", sb.String())
}

// PrintArtifacts outputs the files written by an export.
func (p *Printer) PrintArtifacts(paths []string) {
	if len(paths) == 0 {
		return
	}
	p.printBox("EXPORTED FILES", strings.Join(paths, "\n"))
}

// PrintProblems outputs validation problems, or a success line when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProblems(subject string, problems []string) {
	if len(problems) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate("✅ "+subject+" is valid", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(problems)))
	for _, problem := range problems {
		sb.WriteString("⚠ " + problem + "\n")
	}
	p.printBox(strings.ToUpper(subject)+" PROBLEMS", strings.TrimSuffix(sb.String(), "\n"))
}
