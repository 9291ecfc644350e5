package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/iksnae/chatguard/internal"
	"github.com/iksnae/chatguard/internal/export"
	"github.com/spf13/cobra"
)

var (
	auditFormat   string
	auditTextFile string
)

// errAuditFailed is returned after the failure message has been printed
var errAuditFailed = errors.New("audit failed")

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Submit a screenshot or chat log for analysis",
	Long: `Submit a chat screenshot or a raw chat log to the backend and show
the per-message verdicts. Use --format to print the result as
json, jsonl, yaml or md instead of the styled view.`,
}

var auditImageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Analyze a chat screenshot (JPG/PNG, max 5MB)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		tr := newTranslator()

		upload, closeFile, err := openImage(path)
		if err != nil {
			return err
		}
		defer closeFile()

		controller := internal.NewImageAuditController(newClient(), tr)
		detach := internal.TrackLoading(controller.Store(), tr.T(internal.KeyImageScanning))
		err = controller.Submit(context.Background(), upload)
		detach()
		if err != nil {
			return err
		}

		return showAuditResult(cmd.OutOrStdout(), tr, controller.Store().State(), "image")
	},
}

var auditTextCmd = &cobra.Command{
	Use:   "text [text...]",
	Short: "Analyze a raw chat log",
	Long: `Analyze a raw chat log given as arguments, read from --file, or read
from stdin when the only argument is "-".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readAuditText(cmd.InOrStdin(), args, auditTextFile)
		if err != nil {
			return err
		}
		tr := newTranslator()

		controller := internal.NewTextAuditController(newClient(), tr)
		detach := internal.TrackLoading(controller.Store(), tr.T(internal.KeyTextAnalyzing))
		submitted, err := controller.Submit(context.Background(), text)
		detach()
		if err != nil {
			return err
		}
		if !submitted {
			return errors.New("nothing to analyze: text is empty")
		}

		return showAuditResult(cmd.OutOrStdout(), tr, controller.Store().State(), "text")
	},
}

// openImage stats and sniffs the file; validation against type and size
// happens in the controller
func openImage(path string) (internal.ImageUpload, func(), error) {
	info, err := os.Stat(path)
	if err != nil {
		return internal.ImageUpload{}, nil, fmt.Errorf("failed to read image: %w", err)
	}
	if info.IsDir() {
		return internal.ImageUpload{}, nil, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return internal.ImageUpload{}, nil, fmt.Errorf("failed to detect file type: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return internal.ImageUpload{}, nil, fmt.Errorf("failed to open image: %w", err)
	}
	internal.LogDebug("uploading %s (%s, %d bytes)", path, mtype.String(), info.Size())

	upload := internal.ImageUpload{
		Name:     filepath.Base(path),
		MimeType: mtype.String(),
		Size:     info.Size(),
		Data:     f,
	}
	return upload, func() { _ = f.Close() }, nil
}

func readAuditText(stdin io.Reader, args []string, file string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return "", errors.New("provide the chat text as arguments, with --file, or - for stdin")
	}
}

// showAuditResult prints a settled controller state. Errored prints the
// display message and fails the command.
func showAuditResult(w io.Writer, tr internal.Translator, st internal.ViewState[*internal.Payload], source string) error {
	switch st.Kind {
	case internal.StateErrored:
		internal.PrintError(st.Message)
		return errAuditFailed
	case internal.StateResolved:
		report := internal.NewReportFromPayload(st.Value, source)
		if auditFormat != "" {
			return writeReport(w, report, auditFormat)
		}
		renderAuditView(w, tr, *report.View)
		if report.SessionID != nil {
			_, _ = fmt.Fprintln(w, idStyle.Render("💡 "+fmt.Sprintf(tr.T(internal.KeySavedAs), *report.SessionID)))
		}
		return nil
	default:
		return fmt.Errorf("audit ended in unexpected state %s", st.Kind)
	}
}

func writeReport(w io.Writer, report *internal.Report, format string) error {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	if err := exporter.Export(report, w); err != nil {
		return &internal.ExportError{Format: format, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditImageCmd)
	auditCmd.AddCommand(auditTextCmd)

	auditCmd.PersistentFlags().StringVarP(&auditFormat, "format", "f", "", "Print the result as jsonl, md, yaml or json")
	auditTextCmd.Flags().StringVar(&auditTextFile, "file", "", "Read the chat log from a file")
}
