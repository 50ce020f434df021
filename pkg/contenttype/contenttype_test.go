package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        Category
	}{
		// JSON
		{"application/json", "application/json", JSON},
		{"vendor json", "application/vnd.api+json", JSON},
		{"json with charset", "application/json; charset=utf-8", JSON},
		{"short json", "json", JSON},
		{"ndjson", "application/x-ndjson", Unsupported},

		// YAML
		{"application/yaml", "application/yaml", YAML},
		{"text/yaml", "text/yaml", YAML},
		{"application/x-yaml", "application/x-yaml", YAML},
		{"short yml", "yml", YAML},

		// Undecided
		{"empty", "", Unknown},
		{"whitespace", "  ", Unknown},
		{"text/plain", "text/plain; charset=utf-8", Unknown},

		// Unsupported
		{"xml", "application/xml", Unsupported},
		{"png", "image/png", Unsupported},

		// Edge cases
		{"uppercase", "Application/JSON", JSON},
		{"malformed", "application/json;;;", JSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.contentType))
		})
	}
}

func TestFromFilename(t *testing.T) {
	assert.Equal(t, JSON, FromFilename("payload.json"))
	assert.Equal(t, JSON, FromFilename("/tmp/A.JSON"))
	assert.Equal(t, YAML, FromFilename("deploy.yml"))
	assert.Equal(t, YAML, FromFilename("deploy.yaml"))
	assert.Equal(t, Unknown, FromFilename("README"))
	assert.Equal(t, Unknown, FromFilename("notes.txt"))
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Category
	}{
		{"object", `  {"a": 1}`, JSON},
		{"array", "\n[1, 2]", JSON},
		{"broken object", `{"a": `, JSON},
		{"number", `-12.5`, JSON},
		{"null", `null`, JSON},
		{"bom", "\ufeff{}", JSON},
		{"yaml mapping", "a: 1\nb: 2\n", YAML},
		{"yaml sequence", "- a\n- b\n", YAML},
		{"empty", "   ", Unknown},
		{"binary", "\xff\xfe\x00", Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sniff([]byte(tt.data)))
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, YAML, Resolve("application/yaml", "x.json", []byte(`{}`)))
	assert.Equal(t, YAML, Resolve("", "x.yaml", []byte(`{}`)))
	assert.Equal(t, JSON, Resolve("", "", []byte(`{}`)))
	assert.Equal(t, Unsupported, Resolve("text/html", "", []byte(`{}`)))
}
