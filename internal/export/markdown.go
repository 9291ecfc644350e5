package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chatguard/internal"
)

// NoDataNotice replaces the verdict for a session without analysis data
const NoDataNotice = "No analysis data available for this session."

// MarkdownExporter exports reports in Markdown format
type MarkdownExporter struct{}

// Export writes a metrics table followed by one section per message
func (e *MarkdownExporter) Export(report *internal.Report, w io.Writer) error {
	if report.SessionID != nil {
		_, _ = fmt.Fprintf(w, "# Audit Session %d\n\n", *report.SessionID)
	} else {
		_, _ = fmt.Fprintf(w, "# Audit Report\n\n")
	}

	if report.Source != "" {
		_, _ = fmt.Fprintf(w, "**Source:** %s  \n", report.Source)
	}
	if report.CreatedAt != nil {
		_, _ = fmt.Fprintf(w, "**Created:** %s  \n", report.CreatedAt.Format("2006-01-02 15:04"))
	}
	if !report.HasData() {
		_, _ = fmt.Fprintf(w, "\n_%s_\n", NoDataNotice)
		return nil
	}
	view := report.View

	verdict := "Safe"
	if view.IsOverallToxic() {
		verdict = "Needs Attention"
	}
	_, _ = fmt.Fprintf(w, "**Verdict:** %s\n\n", verdict)

	_, _ = fmt.Fprintf(w, "| Metric | Value |\n|---|---|\n")
	_, _ = fmt.Fprintf(w, "| Total messages | %d |\n", view.Summary.TotalMessages)
	_, _ = fmt.Fprintf(w, "| Toxic messages | %d |\n", view.Summary.ToxicMessages)
	_, _ = fmt.Fprintf(w, "| Safety score | %s / 100 |\n", formatScore(view.Summary.SafetyScore))
	_, _ = fmt.Fprintf(w, "| Processing time | %.2fs |\n\n", view.Summary.ProcessingTimeSeconds)

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages (%d)\n\n", len(view.Rows))

	for i, row := range view.Rows {
		badge := "safe"
		if row.IsToxic {
			badge = "**TOXIC**"
		}

		_, _ = fmt.Fprintf(w, "**%s** (%s) %s\n\n%s\n\n", escapeMarkdown(row.Sender), row.Timestamp, badge, escapeMarkdown(row.Content))

		if i < len(view.Rows)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.1f", score)
}

// escapeMarkdown escapes emphasis markers so chat text renders literally
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"**", "\\*\\*",
		"__", "\\_\\_",
		"|", "\\|",
	)
	return replacer.Replace(text)
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
