package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	if err := InitWithOutput(Config{Level: "warn", Format: "json", ServiceName: "tradevault"}, &buf); err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("component", "test").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info event should be filtered at warn level")
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"service":"tradevault"`) {
		t.Errorf("output = %s", out)
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := InitWithOutput(Config{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestErrorFileOnlyGetsErrors(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	dir := t.TempDir()
	if err := InitWithOutput(Config{Level: "info", Format: "json", Dir: dir}, &bytes.Buffer{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Info().Msg("routine")
	log.Error().Msg("broken")

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	if err != nil {
		t.Fatal(err)
	}
	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(app), "routine") || !strings.Contains(string(app), "broken") {
		t.Errorf("app.log = %s", app)
	}
	if strings.Contains(string(errs), "routine") || !strings.Contains(string(errs), "broken") {
		t.Errorf("error.log = %s", errs)
	}
}
