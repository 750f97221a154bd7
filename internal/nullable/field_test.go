package nullable

import (
	"encoding/json"
	"testing"
)

func TestField_ZeroValueIsAbsent(t *testing.T) {
	var f Field[string]
	if f.IsSet() {
		t.Fatalf("zero Field must not be set")
	}
	if f.IsNull() {
		t.Fatalf("zero Field must not be null")
	}
	if f.Ptr() != nil {
		t.Fatalf("zero Field must yield nil pointer")
	}
}

func TestField_Of(t *testing.T) {
	f := Of("hello")
	if !f.IsSet() || f.IsNull() {
		t.Fatalf("Of() must be set and non-null")
	}
	v, ok := f.Get()
	if !ok || v != "hello" {
		t.Fatalf("Get() = (%q, %v), want (hello, true)", v, ok)
	}
	if p := f.Ptr(); p == nil || *p != "hello" {
		t.Fatalf("Ptr() mismatch: %v", p)
	}
}

func TestField_Null(t *testing.T) {
	f := Null[int]()
	if !f.IsSet() || !f.IsNull() {
		t.Fatalf("Null() must be set and null")
	}
	if _, ok := f.Get(); ok {
		t.Fatalf("Get() on null field must report absent value")
	}
	if f.Ptr() != nil {
		t.Fatalf("Ptr() on null field must be nil")
	}
}

func TestField_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Address Field[string] `json:"adress"`
		Active  Field[bool]   `json:"is_active"`
	}

	// absent field stays absent, explicit null is recorded as null
	var p payload
	if err := json.Unmarshal([]byte(`{"adress": null}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Address.IsNull() {
		t.Fatalf("adress should be explicitly null")
	}
	if p.Active.IsSet() {
		t.Fatalf("is_active was not provided, must stay absent")
	}

	var p2 payload
	if err := json.Unmarshal([]byte(`{"adress": "new", "is_active": false}`), &p2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := p2.Address.Get(); !ok || v != "new" {
		t.Fatalf("adress = (%q, %v), want (new, true)", v, ok)
	}
	if v, ok := p2.Active.Get(); !ok || v != false {
		t.Fatalf("is_active = (%v, %v), want (false, true)", v, ok)
	}
}

func TestField_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Of(int64(7)))
	if err != nil || string(b) != "7" {
		t.Fatalf("Marshal(Of(7)) = %s, %v", b, err)
	}
	b, err = json.Marshal(Null[int64]())
	if err != nil || string(b) != "null" {
		t.Fatalf("Marshal(Null) = %s, %v", b, err)
	}
}
