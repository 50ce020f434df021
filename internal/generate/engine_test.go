package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	invopop "github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var coded *CodedError
	require.ErrorAs(t, err, &coded)
	return coded.Code
}

func TestEngine_Generate_JSON(t *testing.T) {
	engine := NewEngine(Options{})

	res, err := engine.Generate(context.Background(), Request{
		Data: []byte(`{"user": {"name": "a", "age": 1}, "tags": ["x"]}`),
	})
	require.NoError(t, err)

	want := "type UserData = {\n    name: string;\n    age: number;\n}\n\n" +
		"type Root = {\n    user: UserData;\n    tags: string[];\n}\n"
	assert.Equal(t, want, res.Text)
	assert.Equal(t, 2, res.TypeCount)
	require.Len(t, res.Declarations, 2)
	assert.Equal(t, "UserData", res.Declarations[0].Name)
	assert.Nil(t, res.Schema)
}

func TestEngine_Generate_YAML(t *testing.T) {
	engine := NewEngine(Options{})

	res, err := engine.Generate(context.Background(), Request{
		Data:     []byte("server:\n  host: example.com\n  port: 443\n"),
		Filename: "config.yaml",
		RootName: "Config",
	})
	require.NoError(t, err)
	assert.Equal(t, "type ServerData = {\n    host: string;\n    port: number;\n}\n\n"+
		"type Config = {\n    server: ServerData;\n}\n", res.Text)
}

func TestEngine_Generate_BOMAndExport(t *testing.T) {
	engine := NewEngine(Options{})

	res, err := engine.Generate(context.Background(), Request{
		Data:   []byte("\ufeff{\"ok\": true}"),
		Export: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "export type Root = {\n    ok: boolean;\n}\n", res.Text)
}

func TestEngine_Generate_Select(t *testing.T) {
	engine := NewEngine(Options{})

	res, err := engine.Generate(context.Background(), Request{
		Data:     []byte(`{"data": {"items": [{"id": 1}, {"id": 2, "note": "x"}]}}`),
		Select:   ".data.items[]",
		RootName: "Item",
	})
	require.NoError(t, err)

	// Several selected values form an array root.
	assert.Equal(t, "type ItemData = {\n    id: number;\n    note?: string;\n}\n\n"+
		"type Item = ItemData[]\n", res.Text)
}

func TestEngine_Generate_PathNamingCollisions(t *testing.T) {
	engine := NewEngine(Options{})
	data := []byte(`{"home": {"address": {"zip": "1"}}, "work": {"address": {"street": "s"}}}`)

	flat, err := engine.Generate(context.Background(), Request{Data: data})
	require.NoError(t, err)
	require.Len(t, flat.Collisions, 1)
	assert.Equal(t, "AddressData", flat.Collisions[0].Name)

	path, err := engine.Generate(context.Background(), Request{Data: data, Naming: "path"})
	require.NoError(t, err)
	assert.Empty(t, path.Collisions)
	names := make([]string, 0, len(path.Declarations))
	for _, d := range path.Declarations {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "HomeAddressData")
	assert.Contains(t, names, "WorkAddressData")
}

func TestEngine_Generate_JSONSchema(t *testing.T) {
	engine := NewEngine(Options{})

	res, err := engine.Generate(context.Background(), Request{
		Data:   []byte(`{"id": 1, "owner": {"login": "x"}}`),
		Format: "jsonschema",
	})
	require.NoError(t, err)
	assert.Empty(t, res.Text)

	schema, ok := res.Schema.(*invopop.Schema)
	require.True(t, ok)
	assert.Equal(t, "#/$defs/Root", schema.Ref)
	assert.Contains(t, schema.Definitions, "Root")
	assert.Contains(t, schema.Definitions, "OwnerData")
}

func TestEngine_Generate_Errors(t *testing.T) {
	engine := NewEngine(Options{MaxInputBytes: 32})
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		code string
	}{
		{"empty", Request{Data: []byte("  \n")}, ErrCodeInvalidInput},
		{"malformed json", Request{Data: []byte(`{"a": `)}, ErrCodeInvalidInput},
		{"too large", Request{Data: []byte(`{"a": "` + string(make([]byte, 40)) + `"}`)}, ErrCodeInvalidInput},
		{"bad naming", Request{Data: []byte(`{}`), Naming: "camel"}, ErrCodeInvalidInput},
		{"bad format", Request{Data: []byte(`{}`), Format: "xml"}, ErrCodeInvalidInput},
		{"unsupported", Request{Data: []byte(`<a/>`), ContentType: "application/xml"}, ErrCodeUnsupportedContent},
		{"select no match", Request{Data: []byte(`{"a": []}`), Select: ".a[]"}, ErrCodeSelectFailed},
		{"select invalid", Request{Data: []byte(`{}`), Select: ".a["}, ErrCodeSelectFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Generate(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, codeOf(t, err))
		})
	}
}

func TestEngine_Generate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(Options{}).Generate(ctx, Request{Data: []byte(`{}`)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_GenerateFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"a": 1}`,
		"b.yaml": "b: true\n",
		"c.json": `[{"c": "x"}]`,
	}
	var paths []string
	for _, name := range []string{"a.json", "b.yaml", "c.json"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(files[name]), 0o644))
		paths = append(paths, p)
	}

	results, err := NewEngine(Options{}).GenerateFiles(context.Background(), paths, Request{}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, paths[0], results[0].Source)
	assert.Equal(t, "type Root = {\n    a: number;\n}\n", results[0].Text)
	assert.Equal(t, "type Root = {\n    b: boolean;\n}\n", results[1].Text)
	assert.Equal(t, "type RootData = {\n    c: string;\n}\n\ntype Root = RootData[]\n", results[2].Text)
}

func TestEngine_GenerateFiles_Failure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{}`), 0o644))

	_, err := NewEngine(Options{}).GenerateFiles(context.Background(),
		[]string{good, filepath.Join(dir, "missing.json")}, Request{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestCodedError(t *testing.T) {
	err := ErrInvalidInput("invalid JSON", assert.AnError)
	assert.Equal(t, "INVALID_INPUT: invalid JSON: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, "UNSUPPORTED_CONTENT: nope", errUnsupported("nope").Error())
}
