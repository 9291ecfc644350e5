package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/iksnae/chatguard/internal"
	"github.com/iksnae/chatguard/internal/export"
	"github.com/spf13/cobra"
)

var (
	historySkip    int
	historyLimit   int
	historyRetries int
	showRender     bool
	exportFormat   string
	exportOutput   string
	deleteYes      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse, export and delete stored audit sessions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := newTranslator()
		w := cmd.OutOrStdout()
		ctx := context.Background()

		controller := internal.NewHistoryListController(newClient(), tr, historySkip, historyLimit)
		detach := internal.TrackLoading(controller.Store(), tr.T(internal.KeyHistLoading))
		controller.Load(ctx)
		for i := 0; i < historyRetries && controller.RenderState() == internal.ListErrored; i++ {
			internal.LogInfo("Retrying (%d/%d)...", i+1, historyRetries)
			controller.Retry(ctx)
		}
		detach()

		switch controller.RenderState() {
		case internal.ListErrored:
			internal.PrintError(controller.Store().State().Message)
			return errors.New("failed to load history")
		case internal.ListEmpty:
			_, _ = fmt.Fprintln(w, headerStyle.Render("📋 "+tr.T(internal.KeyHistEmpty)))
			_, _ = fmt.Fprintln(w, dateStyle.Render(tr.T(internal.KeyHistEmptyDesc)))
			return nil
		default:
			renderHistoryTable(w, tr, controller.Store().State().Value)
			return nil
		}
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}
		tr := newTranslator()
		w := cmd.OutOrStdout()

		detail, err := loadDetail(context.Background(), internal.NewHistoryDetailController(newClient(), tr), id)
		if err != nil {
			return err
		}

		view, ok := detail.AuditView()
		if !ok {
			renderSessionHeader(w, tr, detail)
			_, _ = fmt.Fprintln(w, dateStyle.Render(tr.T(internal.KeyHistNoData)))
			return nil
		}

		if showRender {
			return renderMarkdown(w, internal.NewReportFromDetail(detail))
		}

		renderSessionHeader(w, tr, detail)
		renderAuditView(w, tr, view)
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export one stored session to a file",
	Long: `Export one stored session as jsonl, md, yaml or json. The file defaults
to session_<id>.<ext> in the current directory; use --output - for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}
		tr := newTranslator()

		detail, err := loadDetail(context.Background(), internal.NewHistoryDetailController(newClient(), tr), id)
		if err != nil {
			return err
		}
		report := internal.NewReportFromDetail(detail)
		if !report.HasData() {
			internal.PrintWarning(tr.T(internal.KeyHistNoData))
		}

		if exportOutput == "-" {
			return writeReport(cmd.OutOrStdout(), report, exportFormat)
		}

		path := exportOutput
		if path == "" {
			path = fmt.Sprintf("session_%d.%s", id, exporter.Extension())
		}
		file, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}
		if err := exporter.Export(report, file); err != nil {
			_ = file.Close()
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}
		if err := file.Close(); err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}

		internal.PrintSuccess(fmt.Sprintf(tr.T(internal.KeyExportDone), id, path))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete one stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}
		tr := newTranslator()
		ctx := context.Background()

		controller := internal.NewHistoryDetailController(newClient(), tr)
		if _, err := loadDetail(ctx, controller, id); err != nil {
			return err
		}

		var confirm internal.Confirmer = internal.ConfirmFunc(func(string) bool { return true })
		if !deleteYes {
			confirm = stdinConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
		}

		switch controller.Delete(ctx, confirm) {
		case internal.DeleteSucceeded:
			internal.PrintSuccess(tr.T(internal.KeyHistDeleted))
			return nil
		case internal.DeleteFailed:
			internal.PrintError(controller.DeleteFailureMessage())
			return errors.New("delete failed")
		default:
			internal.PrintInfo(tr.T(internal.KeyDelCancelled))
			return nil
		}
	},
}

// loadDetail runs the detail controller and prints its message on failure
func loadDetail(ctx context.Context, controller *internal.HistoryDetailController, id int64) (*internal.HistorySessionDetail, error) {
	controller.Load(ctx, id)
	st := controller.Store().State()
	if st.Kind != internal.StateResolved {
		internal.PrintError(st.Message)
		return nil, fmt.Errorf("failed to load session %d", id)
	}
	return st.Value, nil
}

func parseSessionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q: must be a positive integer", arg)
	}
	return id, nil
}

// stdinConfirmer prompts on out and accepts "y" or "yes" from in
func stdinConfirmer(in io.Reader, out io.Writer) internal.Confirmer {
	return internal.ConfirmFunc(func(prompt string) bool {
		_, _ = fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

// renderMarkdown pipes the markdown report through glamour. Non-terminal
// output gets the plain markdown.
func renderMarkdown(w io.Writer, report *internal.Report) error {
	var buf bytes.Buffer
	if err := (&export.MarkdownExporter{}).Export(report, &buf); err != nil {
		return err
	}

	if !internal.IsTerminal(w) {
		_, err := w.Write(buf.Bytes())
		return err
	}

	out, err := glamour.Render(buf.String(), "dark")
	if err != nil {
		internal.LogWarn("Failed to render markdown: %v", err)
		_, err = w.Write(buf.Bytes())
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd, historyDeleteCmd)

	historyListCmd.Flags().IntVar(&historySkip, "skip", 0, "Number of sessions to skip")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", internal.DefaultHistoryLimit, "Maximum sessions to list")
	historyListCmd.Flags().IntVar(&historyRetries, "retries", 0, "Retry this many times when the backend is unreachable")

	historyShowCmd.Flags().BoolVar(&showRender, "render", false, "Render the session as markdown")

	historyExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (jsonl, md, yaml, json)")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, or - for stdout")

	historyDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
