package workspace

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestInsertText(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		text      string
		selection string
		want      string
	}{
		{"first occurrence", "foo bar foo", "baz", "foo", "baz bar foo"},
		{"no selection appends", "foo", "bar", "", "foo\n\nbar"},
		{"missing selection appends", "foo", "bar", "qux", "foo\n\nbar"},
		{"empty content", "", "hello", "", "\n\nhello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertText(tt.content, tt.text, tt.selection))
		})
	}
}

func TestInsertText_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("absent selection appends after a blank line", prop.ForAll(
		func(content, text string) bool {
			return InsertText(content, text, "") == content+"\n\n"+text
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("present selection is replaced once at its first index", prop.ForAll(
		func(prefix, sel, suffix, text string) bool {
			content := prefix + sel + suffix
			i := strings.Index(content, sel)
			want := content[:i] + text + content[i+len(sel):]
			return InsertText(content, text, sel) == want
		},
		gen.AlphaString(),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString(),
		gen.NumString(),
	))

	properties.TestingRun(t)
}

func TestToolbar_Update(t *testing.T) {
	var tb Toolbar

	assert.True(t, tb.Update(StaticSelection{Text: "pick me", Region: RegionPreview}))
	assert.True(t, tb.Visible())
	assert.Equal(t, "pick me", tb.Selection().Text)

	assert.False(t, tb.Update(StaticSelection{Text: "editor text", Region: RegionEditor}))
	assert.False(t, tb.Visible())

	assert.False(t, tb.Update(StaticSelection{Text: "   ", Region: RegionPreview}))
	assert.False(t, tb.Update(StaticSelection{}))
	assert.Equal(t, Selection{}, tb.Selection())

	tb.Update(StaticSelection{Text: "keep", Region: RegionPreview})
	tb.Hide()
	assert.False(t, tb.Visible())
	assert.Equal(t, "keep", tb.Selection().Text)
}
