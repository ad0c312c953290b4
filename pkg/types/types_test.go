package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b.md", "a/b.md"},
		{`a\b\c.png`, "a/b/c.png"},
		{"/a/b.md", "a/b.md"},
		{"a/b/", "a/b"},
		{"  a.md  ", "a.md"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in), "input %q", tt.in)
	}
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "a/b", JoinPath("a", "b"))
	assert.Equal(t, "b", JoinPath("", "b"))

	assert.Equal(t, "a/b", ParentPath("a/b/c.md"))
	assert.Equal(t, "", ParentPath("c.md"))

	assert.Equal(t, "c.md", BaseName("a/b/c.md"))
	assert.Equal(t, "c.md", BaseName("c.md"))

	assert.True(t, IsMarkdown("Note.MD"))
	assert.True(t, IsMarkdown("a/b.markdown"))
	assert.False(t, IsMarkdown("img.png"))

	assert.True(t, IsUnder("a/b/c", "a/b"))
	assert.True(t, IsUnder("a/b", "a/b"))
	assert.False(t, IsUnder("a/bc", "a/b"))
	assert.True(t, IsUnder("anything", ""))
}

func TestEntryMark(t *testing.T) {
	tests := []struct {
		name  string
		entry FileEntry
		want  string
	}{
		{"conflict wins", FileEntry{Kind: KindAttachmentFile, Tags: []Tag{TagConflictTarget}, Action: MoveTo("x", "", false)}, "C"},
		{"missing", FileEntry{Kind: KindUnknown, Tags: []Tag{TagMissing}}, "M"},
		{"staging move", FileEntry{Kind: KindAttachmentFile, Action: MoveToStaging("orphan")}, "B"},
		{"relocation", FileEntry{Kind: KindAttachmentFile, Action: MoveTo("x", "", false)}, "R"},
		{"kept attachment", FileEntry{Kind: KindAttachmentFile, Action: Keep("")}, "K"},
		{"note", FileEntry{Kind: KindNote, Action: Keep("")}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Mark())
		})
	}
}

func TestEntryTagAndBacklinkDedup(t *testing.T) {
	e := &FileEntry{}
	e.AddTag(TagOrphan)
	e.AddTag(TagMissing)
	e.AddTag(TagOrphan)
	assert.Equal(t, []Tag{TagMissing, TagOrphan}, e.Tags)

	e.AddBacklink(Backlink{FromNote: "a.md"})
	e.AddBacklink(Backlink{FromNote: "a.md", Raw: "different"})
	e.AddBacklink(Backlink{FromNote: "b.md"})
	assert.Len(t, e.ReferencedBy, 2)
}

func TestReportMoves(t *testing.T) {
	report := &DetectReport{
		Preview: []*FileEntry{
			{Path: "_staging/a.png", VirtualFrom: "a.png", IsPreview: true},
			{Path: "notes/b.png", VirtualFrom: "old/b.png", IsPreview: true},
		},
	}
	assert.Equal(t, []Move{
		{From: "a.png", To: "_staging/a.png"},
		{From: "old/b.png", To: "notes/b.png"},
	}, report.Moves())
}

func TestMoveReversed(t *testing.T) {
	m := Move{From: "a", To: "b"}
	assert.Equal(t, Move{From: "b", To: "a"}, m.Reversed())
}
