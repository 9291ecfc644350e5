package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatguard/internal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1)

	tileLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	safeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	toxicStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	senderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)
)

// renderAuditView prints the metric tiles, the overall verdict and every row
func renderAuditView(w io.Writer, tr internal.Translator, view internal.AuditView) {
	s := view.Summary

	_, _ = fmt.Fprintln(w, headerStyle.Render("🛡  "+tr.T(internal.KeyResultTitle)))
	_, _ = fmt.Fprintln(w)

	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		metricTile(tr.T(internal.KeyMetaTotal), strconv.Itoa(s.TotalMessages), countStyle),
		metricTile(tr.T(internal.KeyMetaToxic), strconv.Itoa(s.ToxicMessages), toxicCountStyle(s.ToxicMessages)),
		metricTile(tr.T(internal.KeyMetaTime), fmt.Sprintf("%.2fs", s.ProcessingTimeSeconds), countStyle),
		metricTile(tr.T(internal.KeyMetaScore), formatScore(s.SafetyScore)+"/100", verdictStyle(view)),
	)
	_, _ = fmt.Fprintln(w, tiles)
	_, _ = fmt.Fprintln(w)

	verdict := tr.T(internal.KeyVerdictSafe)
	if view.IsOverallToxic() {
		verdict = tr.T(internal.KeyVerdictAttention)
	}
	_, _ = fmt.Fprintln(w, verdictStyle(view).Render("● "+verdict))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d)", tr.T(internal.KeyMessageDetail), len(view.Rows))))
	_, _ = fmt.Fprintln(w)

	for _, row := range view.Rows {
		renderRow(w, tr, row)
	}
}

func renderRow(w io.Writer, tr internal.Translator, row internal.MessageRow) {
	badge := safeStyle.Render(tr.T(internal.KeyColSafe))
	if row.IsToxic {
		badge = toxicStyle.Render(tr.T(internal.KeyColToxic))
	}

	header := senderStyle.Render(row.Sender) + " " + timestampStyle.Render(row.Timestamp) + " " + badge
	_, _ = fmt.Fprintln(w, header)

	content := strings.TrimSpace(row.Content)
	if content == "" {
		_, _ = fmt.Fprintln(w, messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
		return
	}
	_, _ = fmt.Fprintln(w, messageContentStyle.Render(wrapText(content, 80)))
}

func metricTile(label, value string, valueStyle lipgloss.Style) string {
	return tileStyle.Render(tileLabelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func toxicCountStyle(n int) lipgloss.Style {
	if n > 0 {
		return toxicStyle
	}
	return safeStyle
}

func verdictStyle(view internal.AuditView) lipgloss.Style {
	if view.IsOverallToxic() {
		return toxicStyle
	}
	return safeStyle
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// renderSessionHeader prints the id, source and creation time of a stored session
func renderSessionHeader(w io.Writer, tr internal.Translator, d *internal.HistorySessionDetail) {
	parts := []string{
		fmt.Sprintf("#%d", d.ID),
		sourceLabel(tr, d.Source),
	}
	if !d.CreatedAt.IsZero() {
		parts = append(parts, d.CreatedAt.Format("2006-01-02 15:04"))
	}
	_, _ = fmt.Fprintln(w, dateStyle.Render(strings.Join(parts, " • ")))
	_, _ = fmt.Fprintln(w)
}

func sourceLabel(tr internal.Translator, source string) string {
	switch source {
	case "image":
		return tr.T(internal.KeyHistSourceImage)
	case "text":
		return tr.T(internal.KeyHistSourceText)
	default:
		return source
	}
}

// renderHistoryTable prints one line per stored session
func renderHistoryTable(w io.Writer, tr internal.Translator, sessions []internal.HistorySessionSummary) {
	_, _ = fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("📋 %s", tr.T(internal.KeyHistTitle))))
	_, _ = fmt.Fprintln(w, dateStyle.Render(fmt.Sprintf("%s: %d", tr.T(internal.KeyHistTotal), len(sessions))))
	_, _ = fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	headers := []string{internal.KeyColID, internal.KeyColSource, internal.KeyColMessages, internal.KeyColToxic, internal.KeyColScore, internal.KeyColCreated}
	for _, key := range headers {
		_, _ = fmt.Fprint(tw, titleStyle.Render(tr.T(key))+"\t")
	}
	_, _ = fmt.Fprintln(tw)
	_, _ = fmt.Fprintln(tw, strings.Repeat("─", 90))

	for _, s := range sessions {
		toxic := safeStyle.Render("0")
		if s.ToxicMessages > 0 {
			toxic = toxicStyle.Render(strconv.Itoa(s.ToxicMessages))
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			idStyle.Render(strconv.FormatInt(s.ID, 10)),
			sourceLabel(tr, s.Source),
			countStyle.Render(strconv.Itoa(s.TotalMessages)),
			toxic,
			formatScore(s.SafetyScore),
			dateStyle.Render(formatCreated(tr, s.CreatedAt, time.Now())),
		)
	}

	_ = tw.Flush()
	_, _ = fmt.Fprintln(w)
	if len(sessions) > 0 {
		_, _ = fmt.Fprintln(w, idStyle.Render("💡 "+fmt.Sprintf(tr.T(internal.KeyHistTip), sessions[0].ID)))
	}
}

// formatCreated uses shorter forms for recent timestamps
func formatCreated(tr internal.Translator, t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return tr.T(internal.KeyToday) + " " + t.Format("15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

// wrapText wraps text at the specified width, keeping existing line breaks
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		lineLen := 0
		for j, word := range strings.Fields(line) {
			if j > 0 && lineLen+len(word)+1 > width {
				result.WriteString("\n")
				lineLen = 0
			} else if j > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += len(word)
		}
	}
	return result.String()
}
