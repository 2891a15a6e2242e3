package yamlstream_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yaml.in/yamlstream"
)

func TestOptsYAML(t *testing.T) {
	tests := []struct {
		name     string
		yamlStr  string
		errMatch string
	}{
		{
			name:    "valid options",
			yamlStr: "indent: 4\nline-width: 100",
		},
		{
			name:    "empty",
			yamlStr: "",
		},
		{
			name:     "typo in field name",
			yamlStr:  "indnt: 2",
			errMatch: "field indnt not found",
		},
		{
			name:     "multiple options with one typo",
			yamlStr:  "indent: 2\nunicoode: true",
			errMatch: "field unicoode not found",
		},
		{
			name:     "bad line break",
			yamlStr:  "line-break: lf",
			errMatch: "invalid line-break value",
		},
		{
			name:     "bad encoding",
			yamlStr:  "encoding: latin1",
			errMatch: "invalid encoding value",
		},
		{
			name: "all valid options",
			yamlStr: `
indent: 2
line-width: 80
unicode: true
canonical: false
line-break: ln
explicit-start: true
encoding: utf-8
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := yamlstream.OptsYAML(tt.yamlStr)
			if tt.errMatch != "" {
				assert.ErrorContains(t, err, tt.errMatch)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, opt)
		})
	}
}

func TestOptsYAMLAppliesToEmitter(t *testing.T) {
	opt, err := yamlstream.OptsYAML("indent: 4\nline-break: crln\nexplicit-start: true")
	require.NoError(t, err)

	var buf bytes.Buffer
	e, err := yamlstream.NewEmitter(&buf, opt)
	require.NoError(t, err)
	p := yamlstream.NewParserBytes([]byte("a:\n  b: c\n"))
	copyEvents(t, p, e)
	assert.Equal(t, "---\r\na:\r\n    b: c\r\n", buf.String())
}

func TestOptsYAMLInvalidValue(t *testing.T) {
	opt, err := yamlstream.OptsYAML("indent: 12")
	require.NoError(t, err)
	_, err = yamlstream.NewEmitter(&bytes.Buffer{}, opt)
	assert.EqualError(t, err, "yaml: indent must be between 1 and 9, got 12")
}

func TestOptionsPreset(t *testing.T) {
	preset := yamlstream.Options(yamlstream.WithIndent(4), yamlstream.WithExplicitStart())

	var buf bytes.Buffer
	e, err := yamlstream.NewEmitter(&buf, preset, yamlstream.WithIndent(3))
	require.NoError(t, err)
	copyEvents(t, yamlstream.NewParserBytes([]byte("a:\n  b: c\n")), e)
	assert.Equal(t, "---\na:\n   b: c\n", buf.String())
}
