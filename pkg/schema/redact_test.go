package schema

import (
	"testing"

	"github.com/aretw0/envchecker/pkg/env"
)

func TestResult_Redact(t *testing.T) {
	cfg := NewConfig(
		Var("API_KEY", FieldSpec{Type: TypeString, Sensitive: true}),
		Var("PORT", FieldSpec{Type: TypeNumber}),
	)
	res, err := Validate(cfg, env.Map{"API_KEY": "secret", "PORT": "8080"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	redacted := res.Redact(cfg)
	if redacted.Values["API_KEY"] != Redacted {
		t.Errorf("API_KEY = %v, want %q", redacted.Values["API_KEY"], Redacted)
	}
	if redacted.Values["PORT"] != 8080.0 {
		t.Errorf("PORT = %v, want 8080", redacted.Values["PORT"])
	}
	if res.Values["API_KEY"] != "secret" {
		t.Error("Redact must not modify the original result")
	}
	if len(redacted.Keys()) != 2 {
		t.Errorf("Keys() = %v, want order preserved", redacted.Keys())
	}

	var nilRes *Result
	if nilRes.Redact(cfg) != nil {
		t.Error("Redact on nil result should be nil")
	}
}
