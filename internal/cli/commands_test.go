package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tessro/spotbar/internal/config"
	sberrors "github.com/tessro/spotbar/internal/errors"
	"github.com/tessro/spotbar/internal/spotify/auth"
)

// withSpotify points the command globals at a fake Web API serving handler
// and an environment token.
func withSpotify(t *testing.T, handler http.Handler) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	oldCfg, oldURL, oldJSON := cfg, apiBaseURL, jsonOut
	t.Cleanup(func() { cfg, apiBaseURL, jsonOut = oldCfg, oldURL, oldJSON })

	cfg = config.Default()
	cfg.Spotify.TokenFile = filepath.Join(t.TempDir(), "token.json")
	apiBaseURL = srv.URL
	jsonOut = false
	t.Setenv(auth.AccessTokenEnv, "test-token")
}

// methodMux accepts "METHOD /path" patterns on toolchains whose
// http.ServeMux predates method matching.
type methodMux struct{ *http.ServeMux }

func newServeMux() methodMux { return methodMux{http.NewServeMux()} }

func (m methodMux) HandleFunc(pattern string, h func(http.ResponseWriter, *http.Request)) {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		m.ServeMux.HandleFunc(pattern, h)
		return
	}
	m.ServeMux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	})
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func apiError(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"status": status, "message": http.StatusText(status), "reason": reason},
	})
}

func TestRunToggleReportsPremiumRequired(t *testing.T) {
	mux := newServeMux()
	mux.HandleFunc("GET /me/player", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_playing":true,"device":{"name":"Kitchen","volume_percent":40}}`))
	})
	mux.HandleFunc("PUT /me/player/pause", func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusForbidden, "PREMIUM_REQUIRED")
	})
	withSpotify(t, mux)

	cmd, out := testCommand()
	err := runToggle(cmd, nil)
	if !errors.Is(err, sberrors.ErrPremiumRequired) {
		t.Fatalf("runToggle() error = %v, want premium required", err)
	}
	if sberrors.GetSuggestion(err) == "" {
		t.Errorf("no suggestion for %v", err)
	}
	if !strings.Contains(sberrors.Format(err), "Suggestion:") {
		t.Errorf("Format() = %q", sberrors.Format(err))
	}
	if out.Len() != 0 {
		t.Errorf("output on failure: %q", out.String())
	}
}

func TestRunTogglePauses(t *testing.T) {
	paused := false
	mux := newServeMux()
	mux.HandleFunc("GET /me/player", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_playing":true}`))
	})
	mux.HandleFunc("PUT /me/player/pause", func(w http.ResponseWriter, r *http.Request) {
		paused = true
		w.WriteHeader(http.StatusNoContent)
	})
	withSpotify(t, mux)

	cmd, out := testCommand()
	if err := runToggle(cmd, nil); err != nil {
		t.Fatalf("runToggle() error = %v", err)
	}
	if !paused {
		t.Error("pause not sent")
	}
	if got := strings.TrimSpace(out.String()); got != "Paused" {
		t.Errorf("output = %q, want Paused", got)
	}
}

func TestRunStatusNoActiveDevice(t *testing.T) {
	mux := newServeMux()
	mux.HandleFunc("GET /me/player/currently-playing", func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusNotFound, "NO_ACTIVE_DEVICE")
	})
	withSpotify(t, mux)

	cmd, _ := testCommand()
	err := runStatus(cmd, nil)
	if !errors.Is(err, sberrors.ErrNoActiveDevice) {
		t.Fatalf("runStatus() error = %v, want no active device", err)
	}
	if got := sberrors.GetSuggestion(err); !strings.Contains(got, "Open Spotify") {
		t.Errorf("suggestion = %q", got)
	}
}

func TestRunStatusLeavesVolumeAlone(t *testing.T) {
	var volumeCalls int
	mux := newServeMux()
	mux.HandleFunc("GET /me/player/currently-playing", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_playing":true,"item":{"id":"t1","name":"Roygbiv","artists":[{"name":"Boards of Canada"}]}}`))
	})
	mux.HandleFunc("GET /me/player", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"is_playing":true,"device":{"name":"Desk"}}`))
	})
	mux.HandleFunc("PUT /me/player/volume", func(w http.ResponseWriter, r *http.Request) {
		volumeCalls++
		w.WriteHeader(http.StatusNoContent)
	})
	withSpotify(t, mux)

	cmd, out := testCommand()
	if err := runStatus(cmd, nil); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}
	if volumeCalls != 0 {
		t.Errorf("status sent %d volume updates", volumeCalls)
	}

	text := out.String()
	for _, want := range []string{"Roygbiv", "Boards of Canada", "Desk"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Volume") {
		t.Errorf("unreported volume printed:\n%s", text)
	}
}

func TestRunTokenCheck(t *testing.T) {
	mux := newServeMux()
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			apiError(w, http.StatusUnauthorized, "")
			return
		}
		w.Write([]byte(`{"id":"u1","display_name":"Ada","product":"premium"}`))
	})
	withSpotify(t, mux)

	old := tokenCheck
	tokenCheck = true
	defer func() { tokenCheck = old }()

	cmd, out := testCommand()
	if err := runToken(cmd, nil); err != nil {
		t.Fatalf("runToken() error = %v", err)
	}
	if !strings.Contains(out.String(), "Account: Ada (premium)") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRunTokenCheckRejected(t *testing.T) {
	mux := newServeMux()
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		apiError(w, http.StatusUnauthorized, "")
	})
	withSpotify(t, mux)

	old := tokenCheck
	tokenCheck = true
	defer func() { tokenCheck = old }()

	cmd, _ := testCommand()
	if err := runToken(cmd, nil); !errors.Is(err, sberrors.ErrNotAuthenticated) {
		t.Errorf("runToken() error = %v, want not authenticated", err)
	}
}

func TestPrintVersion(t *testing.T) {
	v := versionInfo{Version: "1.2.0", Commit: "abc123", Platform: "linux/amd64", API: "https://api.example"}

	var buf bytes.Buffer
	if err := printVersion(&buf, v, false, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "spotbar 1.2.0\n" {
		t.Errorf("short output = %q", got)
	}

	buf.Reset()
	if err := printVersion(&buf, v, false, true); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"abc123", "linux/amd64", "https://api.example"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := printVersion(&buf, v, true, false); err != nil {
		t.Fatal(err)
	}
	var got versionInfo
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("JSON output %q: %v", buf.String(), err)
	}
	if got != v {
		t.Errorf("JSON = %+v, want %+v", got, v)
	}
}

func TestInitConfigScreenLogsToFile(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	oldCfg, oldFile, oldLogger, oldClose := cfg, cfgFile, logger, closeLog
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		cfg, cfgFile, logger, closeLog = oldCfg, oldFile, oldLogger, oldClose
	})

	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)
	cfgFile = filepath.Join(t.TempDir(), "spotbar.toml")
	if err := os.WriteFile(cfgFile, []byte("[log]\nlevel = \"info\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := initConfig(false, true); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}
	logger.Warn().Msg("bar started")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(cache, "spotbar", "spotbar.log"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "bar started") {
		t.Errorf("log file = %q", data)
	}
}
