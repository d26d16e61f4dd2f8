// SPDX-License-Identifier: MPL-2.0

package ordered

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestMap_SetKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	m := New[string, string]()
	m.Set("build", "go build")
	m.Set("test", "go test")
	m.Set("build", "go build ./...")

	if got := m.Keys(); !slices.Equal(got, []string{"build", "test"}) {
		t.Errorf("Keys() = %v, want [build test]", got)
	}
	if v, _ := m.Get("build"); v != "go build ./..." {
		t.Errorf("Get(build) = %q, want replaced value", v)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMap_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var m *Map[string, int]
	if m.Len() != 0 {
		t.Errorf("nil Len() = %d, want 0", m.Len())
	}
	if m.Has("x") {
		t.Error("nil map should not contain keys")
	}
	for range m.All() {
		t.Error("nil map should not yield entries")
	}
}

func TestMap_UnmarshalJSONPreservesOrder(t *testing.T) {
	t.Parallel()

	data := []byte(`{"zeta": "z", "alpha": "a", "mid": "m\"q"}`)

	m := New[string, string]()
	if err := json.Unmarshal(data, m); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if got := m.Keys(); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Keys() = %v, want declaration order", got)
	}
	if v, _ := m.Get("mid"); v != `m"q` {
		t.Errorf("Get(mid) = %q, want %q", v, `m"q`)
	}
}

func TestMap_UnmarshalJSONInStruct(t *testing.T) {
	t.Parallel()

	var doc struct {
		Scripts *Map[string, string] `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(`{"scripts": {"b": "1", "a": "2"}}`), &doc); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got := doc.Scripts.Keys(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Keys() = %v, want [b a]", got)
	}
}

func TestMap_UnmarshalJSONRejectsNonObject(t *testing.T) {
	t.Parallel()

	m := New[string, string]()
	if err := json.Unmarshal([]byte(`["a"]`), m); err == nil {
		t.Error("expected error for JSON array")
	}
	if err := json.Unmarshal([]byte(`{"a": 1}`), m); err == nil {
		t.Error("expected error for non-string value")
	}
}

func TestMap_MarshalJSONRoundTripsOrder(t *testing.T) {
	t.Parallel()

	m := New[string, string]()
	m.Set("second", "2")
	m.Set("first", "1")

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != `{"second":"2","first":"1"}` {
		t.Errorf("Marshal() = %s", out)
	}
}
