package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iksnae/chatguard/testutil"
)

func TestHealthcheckCommand(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		lang    string
		want    string
		wantErr bool
	}{
		{name: "online", status: http.StatusOK, lang: "en", want: "System Online"},
		{name: "online indonesian", status: http.StatusOK, lang: "id", want: "Sistem Online"},
		{name: "unhealthy", status: http.StatusServiceUnavailable, lang: "en", want: "Backend Offline", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewBackendServer(t)
			srv.Handle(http.MethodGet, "/api/health", tt.status, `{"status":"ok"}`)

			out, err := executeCommand(t, nil, "--lang", tt.lang, "--api-url", srv.URL, "healthcheck")
			if (err != nil) != tt.wantErr {
				t.Errorf("healthcheck error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestHealthcheckCommand_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, err := executeCommand(t, nil, "--lang", "en", "--api-url", url, "healthcheck", "--details")
	if err == nil {
		t.Error("healthcheck should fail when the backend is unreachable")
	}
	if !strings.Contains(out, "Backend Offline") || !strings.Contains(out, url) {
		t.Errorf("output = %q", out)
	}
}

func TestHealthcheckDetailsFlag(t *testing.T) {
	if healthcheckCmd.Flag("details") == nil {
		t.Error("healthcheck command should have --details flag")
	}
}
