package models

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestContentUnmarshal_KeepsOriginalObject verifies that a decoded object is
// re-encoded unchanged, including fields outside the known shape.
func TestContentUnmarshal_KeepsOriginalObject(t *testing.T) {
	in := `{"sections":[{"title":"Hero","content":"Welcome","extra":1}],"globalMeta":{"title":"Cafe"},"theme":"warm"}`

	var c Content
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(c.Sections) != 1 || c.Sections[0].Title != "Hero" {
		t.Fatalf("sections = %+v", c.Sections)
	}
	if c.GlobalMeta.Title != "Cafe" {
		t.Errorf("GlobalMeta.Title = %q, want Cafe", c.GlobalMeta.Title)
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != in {
		t.Errorf("re-encoded = %s, want %s", out, in)
	}
}

// TestContentUnmarshal_RejectsNonObjects verifies that arrays, strings and
// numbers do not count as structured content.
func TestContentUnmarshal_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{`[1,2]`, `"text"`, `42`, `null`, `true`} {
		t.Run(in, func(t *testing.T) {
			var c Content
			err := json.Unmarshal([]byte(in), &c)
			if !errors.Is(err, ErrNotObject) {
				t.Errorf("Unmarshal(%s) error = %v, want ErrNotObject", in, err)
			}
		})
	}
}

// TestContentUnmarshal_Lenient verifies that wrong-typed members are
// tolerated instead of failing the whole object.
func TestContentUnmarshal_Lenient(t *testing.T) {
	in := `{"sections":[{"title":7,"content":{"items":["a","b"]}}],"globalMeta":"nope"}`

	var c Content
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(c.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(c.Sections))
	}
	if got := c.Sections[0].HTML(); got != `{"items":["a","b"]}` {
		t.Errorf("nested content HTML() = %q", got)
	}
	if c.GlobalMeta.Title != "" {
		t.Errorf("GlobalMeta.Title = %q, want empty", c.GlobalMeta.Title)
	}
}

// TestContentUnmarshal_MissingSections verifies that an object without
// sections still decodes; shape checks happen elsewhere.
func TestContentUnmarshal_MissingSections(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(c.Sections) != 0 || !c.HasRaw() {
		t.Errorf("Content = %+v, HasRaw=%v", c, c.HasRaw())
	}
}

// TestContentMarshal_Built verifies encoding of content assembled in code.
func TestContentMarshal_Built(t *testing.T) {
	c := Content{
		Sections:   []Section{{Title: "Intro", Content: "hi"}},
		GlobalMeta: GlobalMeta{Title: "Intro", Description: "d"},
	}
	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"sections":[{"title":"Intro","content":"hi"}],"globalMeta":{"title":"Intro","description":"d"}}`
	if string(out) != want {
		t.Errorf("Marshal = %s, want %s", out, want)
	}
}

func TestContentTitle(t *testing.T) {
	tests := []struct {
		name string
		c    Content
		want string
	}{
		{"global title wins", Content{GlobalMeta: GlobalMeta{Title: "G"}, Sections: []Section{{Title: "S"}}}, "G"},
		{"first section fallback", Content{Sections: []Section{{Title: "S"}}}, "S"},
		{"empty", Content{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}
