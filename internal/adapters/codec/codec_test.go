package codec_test

import (
	"testing"

	"go.trai.ch/larder/internal/adapters/codec"
)

func TestEncodeDecode_CarriesTypeHashes(t *testing.T) {
	c, err := codec.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	value := map[string]any{
		"rows":    "42",
		"columns": []any{"ts", "price"},
	}
	typeHashes := map[string]string{"table.Frame": "a1b2c3d4e5f60718"}

	data, err := c.Encode(value, typeHashes)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	env, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if env.TypeHashes["table.Frame"] != typeHashes["table.Frame"] {
		t.Errorf("type hashes did not survive: %v", env.TypeHashes)
	}

	got, err := c.DecodeValue(env)
	if err != nil {
		t.Fatalf("DecodeValue failed: %v", err)
	}
	m, ok := got.(map[any]any)
	if !ok {
		t.Fatalf("expected map value, got %T", got)
	}
	if m["rows"] != "42" {
		t.Errorf("value did not survive: %v", m)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	c, err := codec.New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Decode([]byte("not a zstd frame")); err == nil {
		t.Fatal("expected garbage payload to fail decoding")
	}
}
