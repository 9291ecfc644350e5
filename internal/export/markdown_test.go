package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chatguard/internal"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		report  *internal.Report
		want    []string
		notWant []string
	}{
		{
			name:   "stored session",
			report: internal.CreateTestReport(9),
			want: []string{
				"# Audit Session 9",
				"**Source:** text",
				"**Created:** 2024-05-01 09:30",
				"**Verdict:** Needs Attention",
				"| Safety score | 50 / 100 |",
				"| Processing time | 1.50s |",
				"## Messages (2)",
				"**Budi** (10:00) **TOXIC**",
				"**Andi** (10:00) safe",
			},
		},
		{
			name:   "report without session",
			report: internal.CreateTestReportWithRows([]internal.MessageRow{}),
			want: []string{
				"# Audit Report",
				"**Verdict:** Safe",
				"## Messages (0)",
			},
			notWant: []string{"**Source:**", "**Created:**"},
		},
		{
			name: "escapes table and emphasis markers",
			report: internal.CreateTestReportWithRows([]internal.MessageRow{
				{Sender: "a|b", Timestamp: "--:--", Content: "**loud**"},
			}),
			want: []string{
				"a\\|b",
				"\\*\\*loud\\*\\*",
			},
		},
		{
			name: "fractional score",
			report: &internal.Report{View: &internal.AuditView{
				Summary: internal.AuditSummary{SafetyScore: 72.5},
			}},
			want: []string{"| Safety score | 72.5 / 100 |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{}

			if err := exporter.Export(tt.report, &buf); err != nil {
				t.Fatalf("MarkdownExporter.Export() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q\n%s", want, output)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(output, nw) {
					t.Errorf("output should not contain %q", nw)
				}
			}
		})
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}

func TestMarkdownExporter_NoData(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(internal.CreateTestNoDataReport(13), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"# Audit Session 13", "**Source:** text", NoDataNotice} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
	for _, unwanted := range []string{"Verdict", "Safety score", "## Messages"} {
		if strings.Contains(output, unwanted) {
			t.Errorf("output should not contain %q\n%s", unwanted, output)
		}
	}
}
