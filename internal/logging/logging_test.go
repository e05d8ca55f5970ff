package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRing(3, slog.LevelInfo)
	logger := slog.New(ring)

	logger.Debug("hidden")
	for _, msg := range []string{"one", "two", "three", "four"} {
		logger.Info(msg)
	}

	entries := ring.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Message != "two" || entries[2].Message != "four" {
		t.Errorf("entries = %v", entries)
	}
	if ring.Seq() != 4 {
		t.Errorf("seq = %d, want 4", ring.Seq())
	}

	ring.Clear()
	if ring.Len() != 0 {
		t.Error("Clear should empty the ring")
	}
}

func TestRingAttrsAndGroups(t *testing.T) {
	ring := NewRing(10, slog.LevelDebug)
	logger := slog.New(ring).With("component", "desktop").WithGroup("win")
	logger.Info("window opened", "id", "about", "z", 1001)

	e := ring.Entries()[0]
	for _, want := range []string{"component=desktop", "win.id=about", "win.z=1001"} {
		if !strings.Contains(e.Attrs, want) {
			t.Errorf("attrs %q missing %q", e.Attrs, want)
		}
	}
	if !strings.Contains(e.String(), "INFO window opened") {
		t.Errorf("String() = %q", e.String())
	}
}

func TestFanout(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRing(10, slog.LevelWarn)
	logger := slog.New(Fanout{ring, NewConsole(&buf, slog.LevelInfo)})

	logger.Info("to console only")
	logger.Warn("to both")

	if ring.Len() != 1 {
		t.Errorf("ring got %d entries, want 1", ring.Len())
	}
	out := buf.String()
	if !strings.Contains(out, "to console only") || !strings.Contains(out, "to both") {
		t.Errorf("console output:\n%s", out)
	}
}
