package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "under limit", text: "short", want: []string{"short"}},
		{
			name: "exactly at limit",
			text: strings.Repeat("a", 2000),
			want: []string{strings.Repeat("a", 2000)},
		},
		{
			name: "one over limit",
			text: strings.Repeat("a", 2001),
			want: []string{strings.Repeat("a", 2000), "a"},
		},
		{
			name: "three segments",
			text: strings.Repeat("a", 4001),
			want: []string{strings.Repeat("a", 2000), strings.Repeat("a", 2000), "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkText(tt.text, maxRichTextChunk)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, strings.Join(got, ""), "segments must concatenate back to the input")
		})
	}
}

func TestChunkTextCountsCharactersNotBytes(t *testing.T) {
	// Multi-byte characters must not be split mid-rune.
	text := strings.Repeat("é", 2001)
	chunks := chunkText(text, maxRichTextChunk)

	require.Len(t, chunks, 2)
	assert.Equal(t, 2000, len([]rune(chunks[0])))
	assert.Equal(t, "é", chunks[1])
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestRichTextPropRoundTrip(t *testing.T) {
	long := strings.Repeat("x", 4500)
	prop := richTextProp(long)

	runs, ok := prop["rich_text"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, runs, 3)

	// Rebuild the read shape from the write shape and reverse the split.
	read := property{}
	for _, run := range runs {
		content := run["text"].(map[string]any)["content"].(string)
		read.RichText = append(read.RichText, textRun{PlainText: content})
	}
	assert.Equal(t, long, read.plainText())
}

func TestPropertyReadHelpers(t *testing.T) {
	num := 42.5
	link := "https://example.com"

	p := property{
		Title:    []textRun{{PlainText: "My "}, {PlainText: "Project"}},
		RichText: []textRun{{PlainText: "part one "}, {PlainText: "part two"}},
		Select:   &selectValue{Name: "active"},
		Number:   &num,
		URL:      &link,
		Date:     &dateValue{Start: "2024-05-02T14:00:00.000Z"},
		Relation: []relationRef{{ID: "rel-1"}, {ID: "rel-2"}},
	}

	assert.Equal(t, "My Project", p.titleText())
	assert.Equal(t, "part one part two", p.plainText())
	assert.Equal(t, "active", p.selectName())
	assert.Equal(t, 42.5, p.numberValue())
	assert.Equal(t, "https://example.com", p.urlValue())
	assert.Equal(t, "2024-05-02T14:00:00.000Z", p.dateStart())
	assert.Equal(t, []string{"rel-1", "rel-2"}, p.relationIDs())
}

func TestPropertyReadHelpersZeroValues(t *testing.T) {
	var p property

	assert.Empty(t, p.titleText())
	assert.Empty(t, p.plainText())
	assert.Empty(t, p.selectName())
	assert.Zero(t, p.numberValue())
	assert.Empty(t, p.urlValue())
	assert.Empty(t, p.dateStart())
	assert.Empty(t, p.relationIDs())
}

func TestURLPropEmptyClearsValue(t *testing.T) {
	assert.Equal(t, map[string]any{"url": nil}, urlProp(""))
	assert.Equal(t, map[string]any{"url": "https://example.com"}, urlProp("https://example.com"))
}
