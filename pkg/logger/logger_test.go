package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "warn"}, &buf)

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestWithFields_WritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "debug"}, &buf)

	log.WithFields(map[string]interface{}{"method": "GetRegions", "duration_ms": 12}).
		WithError(errors.New("boom")).
		Debug("call finished")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["method"] != "GetRegions" {
		t.Errorf("method = %v", entry["method"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v", entry["error"])
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestParseLevel_Fallback(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"error", "error"},
		{"", "info"},
		{"loud", "info"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestMaskToken(t *testing.T) {
	masked := MaskToken("AQAAAAAsecret")
	if strings.Contains(masked, "secret") {
		t.Errorf("token leaked: %s", masked)
	}
	if masked != MaskToken("AQAAAAAsecret") {
		t.Error("mask is not stable")
	}
	if MaskToken("") != "<empty>" {
		t.Errorf("empty token = %s", MaskToken(""))
	}
}

func TestMaskAPIEndpoint(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://api.direct.yandex.ru/v4/json/", "https://api.direct.yandex.ru/***"},
		{"http://127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MaskAPIEndpoint(tt.input); got != tt.want {
			t.Errorf("MaskAPIEndpoint(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := MaskAPIEndpoint("not a url"); !strings.HasPrefix(got, "endpoint#") {
		t.Errorf("unparsable endpoint = %q", got)
	}
}
