package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/toqtoga/bicig-toli/pkg/dictionary"
	"github.com/toqtoga/bicig-toli/pkg/translit"
)

// view renders results for the terminal. Colors follow the capabilities of
// the writer, so output to a pipe or buffer is plain text.
type view struct {
	title       lipgloss.Style
	index       lipgloss.Style
	cyrillic    lipgloss.Style
	traditional lipgloss.Style
	latin       lipgloss.Style
	strict      lipgloss.Style
	muted       lipgloss.Style
}

func newView(w io.Writer) *view {
	r := lipgloss.NewRenderer(w)
	text := lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}
	return &view{
		title:       r.NewStyle().Bold(true).Foreground(text),
		index:       r.NewStyle().Width(4).Align(lipgloss.Right).Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}),
		cyrillic:    r.NewStyle().Width(20).PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("75")),
		traditional: r.NewStyle().Width(16).Foreground(text),
		latin:       r.NewStyle().Width(16).Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		strict:      r.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"}),
		muted:       r.NewStyle().Faint(true),
	}
}

// entry renders one headword with both scripts and both romanizations.
func (v *view) entry(n int, e dictionary.Entry, showStrict bool) string {
	r := translit.Render(e.Traditional)
	cols := []string{
		v.index.Render(fmt.Sprintf("%d.", n)),
		v.cyrillic.Render(e.Cyrillic),
		v.traditional.Render(e.Traditional),
		v.latin.Render(r.Normalized),
	}
	if showStrict && r.Strict != r.Normalized {
		cols = append(cols, v.strict.Render("("+r.Strict+")"))
	}
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cols...), " ")
}

func (v *view) hits(query string, latin bool, entries []dictionary.Entry, showStrict bool, elapsed time.Duration) string {
	script := "cyrillic"
	if latin {
		script = "latin"
	}

	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(v.muted.Render(fmt.Sprintf("No results for '%s' (%s)", query, script)))
		return b.String()
	}

	b.WriteString(v.title.Render(fmt.Sprintf("%d results for '%s'", len(entries), query)))
	b.WriteString(v.muted.Render(fmt.Sprintf("  %s, %v", script, elapsed.Round(time.Microsecond))))
	for i, e := range entries {
		b.WriteString("\n")
		b.WriteString(v.entry(i+1, e, showStrict))
	}
	return b.String()
}

func (v *view) rules() string {
	var b strings.Builder
	b.WriteString(v.title.Render("Normalization rules"))
	for _, rule := range translit.Rules() {
		b.WriteString("\n  ")
		b.WriteString(rule)
	}
	return b.String()
}

func (v *view) initials(initials []string) string {
	return v.title.Render("Initials") + "\n  " + strings.Join(initials, " ")
}

func (v *view) glossary(prefix string, entries []dictionary.Entry, offset, total int, showStrict bool) string {
	var b strings.Builder
	b.WriteString(v.title.Render(fmt.Sprintf("Glossary '%s'", prefix)))
	if len(entries) == 0 {
		b.WriteString(v.muted.Render(fmt.Sprintf("  0 of %d", total)))
		return b.String()
	}
	b.WriteString(v.muted.Render(fmt.Sprintf("  %d-%d of %d", offset+1, offset+len(entries), total)))
	for i, e := range entries {
		b.WriteString("\n")
		b.WriteString(v.entry(offset+i+1, e, showStrict))
	}
	return b.String()
}

func (v *view) help() string {
	return v.muted.Render(strings.Join([]string{
		"type a word in Cyrillic or Latin and press Enter (Ctrl+C to exit)",
		"  :rules           normalization rules",
		"  :initials        glossary initials",
		"  :g <prefix> [n]  glossary page n for a prefix",
		"  :help            this help",
	}, "\n"))
}
