package resumepath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, s string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestParse(t *testing.T) {
	tests := []struct {
		path    string
		want    []Segment
		wantErr bool
	}{
		{path: "summary", want: []Segment{{Key: "summary"}}},
		{path: "personal.email", want: []Segment{{Key: "personal"}, {Key: "email"}}},
		{path: "experience[0].title", want: []Segment{{Key: "experience", Indexed: true}, {Key: "title"}}},
		{path: "education[12]", want: []Segment{{Key: "education", Index: 12, Indexed: true}}},
		{path: "", wantErr: true},
		{path: "a..b", wantErr: true},
		{path: "a[x]", wantErr: true},
		{path: "a[0", wantErr: true},
		{path: "a[-1]", wantErr: true},
		{path: "[0]", wantErr: true},
		{path: "a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := Parse(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Segments)
			assert.Equal(t, tt.path, p.String())
		})
	}
}

func TestGet_Scalars(t *testing.T) {
	doc := mustDoc(t, `{
		"personal": {"email": "a@b.co", "name": ""},
		"experience": [{"title": "Engineer", "bullets": ["x", "y"]}],
		"skills": ["Go", "SQL", "Docker"],
		"flags": {"yes": true, "no": false, "zero": 0, "count": 3, "nothing": null, "obj": {"k": "v"}}
	}`)

	tests := []struct {
		path string
		want string
	}{
		{"personal.email", "a@b.co"},
		{"personal.name", ""},
		{"experience[0].title", "Engineer"},
		{"experience[0].bullets", "x, y"},
		{"skills", "Go, SQL, Docker"},
		{"flags.yes", "true"},
		{"flags.no", ""},
		{"flags.zero", ""},
		{"flags.count", "3"},
		{"flags.nothing", ""},
		{"flags.obj", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Get(doc, tt.path))
		})
	}
}

func TestGet_AbsentPaths(t *testing.T) {
	doc := mustDoc(t, `{"personal": {"email": "a@b.co"}, "experience": [], "summary": "text"}`)

	for _, path := range []string{
		"personal.phone",
		"missing.key",
		"experience[0].title",
		"experience[3]",
		"summary.inner",
		"personal[0]",
		"not a path",
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, "", Get(doc, path))
		})
	}
}

func TestGet_ExactStoredValue(t *testing.T) {
	doc := mustDoc(t, `{"a": {"b": [{"c": "  spaced value  "}]}}`)
	assert.Equal(t, "  spaced value  ", Get(doc, "a.b[0].c"))
}

func TestGet_MixedList(t *testing.T) {
	doc := mustDoc(t, `{"tags": ["a", 1, false]}`)
	assert.Equal(t, "a, 1, false", Get(doc, "tags"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("experience[0].company"))
	assert.False(t, Valid("experience[].company"))
}
