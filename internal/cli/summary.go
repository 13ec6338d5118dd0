package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/GenomeTrakrUnofficial/sra-quick-submit/internal/services"
)

var (
	colorSuccess = lipgloss.Color("34")  // Green
	colorError   = lipgloss.Color("196") // Red
	colorMuted   = lipgloss.Color("240") // Dark gray

	okStyle      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	skippedStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderSummary lays out one row per record. Styling is applied only when
// color is true.
func renderSummary(report *services.Report, color bool) string {
	paint := func(s lipgloss.Style, v string) string {
		if !color {
			return v
		}
		return s.Render(v)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Sample", "Line", "Status", "Result"})

	for i, o := range report.Outcomes {
		sample := o.Sample
		if sample == "" {
			sample = "?"
		}
		line := ""
		if o.Line > 0 {
			line = strconv.Itoa(o.Line)
		}

		var status, result string
		switch {
		case !o.OK():
			status = paint(skippedStyle, "skipped")
			result = fmt.Sprintf("%s: %s", o.Kind, firstLine(o.Err.Error()))
		case o.PriorAccession != "":
			status = paint(okStyle, "merged")
			result = fmt.Sprintf("%s %s", filepath.Base(o.Archive), paint(mutedStyle, "-> "+o.PriorAccession))
		case o.Merged:
			status = paint(okStyle, "merged")
			result = filepath.Base(o.Archive)
		default:
			status = paint(okStyle, "packaged")
			result = filepath.Base(o.Archive)
		}
		tw.AppendRow(table.Row{i + 1, sample, line, status, result})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Batch %s: %d record(s) packaged into %d archive(s), %d skipped, in %s\n",
		report.BatchID,
		len(report.Packaged()),
		len(report.Archives()),
		len(report.Failed()),
		report.Duration().Round(10*time.Millisecond),
	)
	fmt.Fprintf(&b, "Output: %s\n", report.OutputDir)
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
