package serializer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	serializer "github.com/Bismuth083/ObjectSerializer"
)

func TestPipeline_DebugLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	p := serializer.New[payload](serializer.WithDebugLogger(logger))

	secret := "super-secret-password"
	envelope, err := p.Seal(payload{IntField: 1}, secret)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if _, err := p.Open(envelope, secret); err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "sealed envelope") {
		t.Error("missing seal diagnostic")
	}
	if !strings.Contains(out, "opened envelope") {
		t.Error("missing open diagnostic")
	}
	if !strings.Contains(out, "iv") {
		t.Error("missing iv field")
	}
	if strings.Contains(out, secret) {
		t.Error("diagnostics leaked the secret")
	}
}

func TestPipeline_NoDebugByDefault(t *testing.T) {
	// The default pipeline carries no logger; this mostly proves the nil
	// path does not panic.
	p := serializer.New[payload]()
	if _, err := p.Seal(payload{IntField: 1}, "pw"); err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
}
