package live

import (
	"encoding/json"
	"testing"
)

func TestDecodeFrame(t *testing.T) {
	frame, err := DecodeFrame([]byte(`{"op":"set","field":"name","value":"Ada"}`))
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}

	if frame.Op != OpSet {
		t.Errorf("expected op %q, got %q", OpSet, frame.Op)
	}
	if frame.Field != "name" {
		t.Errorf("expected field name, got %q", frame.Field)
	}

	var value any
	if err := json.Unmarshal(frame.Value, &value); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if value != "Ada" {
		t.Errorf("expected value Ada, got %v", value)
	}
}

func TestDecodeFrameMissingOp(t *testing.T) {
	if _, err := DecodeFrame([]byte(`{"field":"name"}`)); err == nil {
		t.Error("expected error for frame without op")
	}
}

func TestDecodeFrameInvalidJSON(t *testing.T) {
	if _, err := DecodeFrame([]byte(`{`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestEncodePatch(t *testing.T) {
	data, err := EncodePatch(Patch{Op: "patch", Field: "name", Value: "Ada"})
	if err != nil {
		t.Fatalf("EncodePatch: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded["op"] != "patch" || decoded["field"] != "name" || decoded["value"] != "Ada" {
		t.Errorf("unexpected patch payload: %v", decoded)
	}
	if _, ok := decoded["error"]; ok {
		t.Error("empty error must be omitted")
	}
}
