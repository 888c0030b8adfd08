package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRenderer(out, errOut, mode), out, errOut
}

func TestNewRendererAutoNonTTY(t *testing.T) {
	r, _, _ := newTestRenderer(ModeAuto)
	// Buffers are not terminals, so auto resolves to markdown.
	assert.Equal(t, ModeMarkdown, r.Mode())
}

func TestRendererPlainWhenUnstyled(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText)

	r.Success("scenario generated")
	r.Warning("jar missing")
	r.Error("run failed")
	r.Banner("Executing simulation for config.xml")

	assert.Equal(t, "✓ scenario generated\n! jar missing\nExecuting simulation for config.xml\n", out.String())
	assert.Equal(t, "✗ run failed\n", errOut.String())
}

func TestRendererStatusLine(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText)

	r.StatusLine("java", "ok", "openjdk 11")
	r.StatusLine("matsim jar", "failed", "")

	assert.Contains(t, out.String(), "✓ java: openjdk 11\n")
	assert.Contains(t, out.String(), "✗ matsim jar\n")
}

func TestRendererTableText(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText)
	r.Table([]string{"GROUP", "SCORE"}, [][]string{{"agents_500", "104.25"}})

	assert.Contains(t, out.String(), "GROUP")
	assert.Contains(t, out.String(), "agents_500")
	assert.Contains(t, out.String(), "104.25")
}

func TestRendererTableMarkdown(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown)
	r.Table([]string{"GROUP", "SCORE"}, [][]string{{"agents_500", "104.25"}})

	assert.Contains(t, out.String(), "| GROUP | SCORE |")
	assert.Contains(t, out.String(), "| agents_500 | 104.25 |")
}

func TestRendererJSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON)
	assert.True(t, r.IsJSON())

	require.NoError(t, r.JSON(map[string]int{"runs": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["runs"])
}
