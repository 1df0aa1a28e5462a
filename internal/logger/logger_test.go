package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "****"},
		{"12345678", "****"},
		{"abcd1234efgh", "abcd****efgh"},
	}

	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSensitive(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"api_key", true},
		{"pinata_jwt", true},
		{"Authorization", true},
		{"client_secret", true},
		{"token_id", false},
		{"prompt", false},
	}

	for _, tt := range tests {
		if got := IsSensitive(tt.key); got != tt.want {
			t.Errorf("IsSensitive(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMaskedLoggerRedactsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewMasked(zap.New(core))

	log.Info("configured",
		zap.String("api_key", "sk-live-abcdefghijkl"),
		zap.String("token_id", "42"),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["api_key"] == "sk-live-abcdefghijkl" {
		t.Error("api_key should be masked")
	}
	if fields["token_id"] != "42" {
		t.Errorf("token_id should be untouched, got %v", fields["token_id"])
	}
}

func TestMaskedLoggerRedactsWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewMasked(zap.New(core)).With(zap.String("pinata_jwt", "eyJhbGciOiJIUzI1NiJ9"))

	log.Info("upload")

	fields := logs.All()[0].ContextMap()
	if fields["pinata_jwt"] != "eyJh************NiJ9" {
		t.Errorf("unexpected masked value %v", fields["pinata_jwt"])
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != zapcore.DebugLevel {
		t.Error("expected debug level")
	}
	if ParseLevel("warning") != zapcore.WarnLevel {
		t.Error("expected warn level")
	}
	if ParseLevel("bogus") != zapcore.InfoLevel {
		t.Error("expected info fallback")
	}
}
