package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestInitWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rbook.log")
	if err := Init(Options{Level: "debug", File: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	log.Info().Str("book", "a.txt").Msg("opened")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"book":"a.txt"`) {
		t.Errorf("log output %q missing the book field", data)
	}
	if !strings.Contains(string(data), `"level":"info"`) {
		t.Errorf("log output %q missing the level field", data)
	}
}

func TestInitLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rbook.log")
	if err := Init(Options{Level: "warn", File: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	log.Info().Msg("quiet")
	log.Warn().Msg("loud")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "quiet") {
		t.Error("info line written despite warn level")
	}
	if !strings.Contains(string(data), "loud") {
		t.Error("warn line missing")
	}
}

func TestInitBadLevelDefaultsToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rbook.log")
	if err := Init(Options{Level: "chatty", File: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug line written despite the info default")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("info line missing")
	}
}

func TestInitPrettyWritesReadableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rbook.log")
	if err := Init(Options{Level: "info", File: path, Pretty: true}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	log.Info().Msg("pretty line")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "pretty line") {
		t.Errorf("log output %q missing the message", data)
	}
	if strings.Contains(string(data), `"message"`) {
		t.Errorf("pretty output %q still looks like JSON", data)
	}
}

func TestInitWithoutFileDiscards(t *testing.T) {
	if err := Init(Options{Level: "info"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Info().Msg("dropped")
}
