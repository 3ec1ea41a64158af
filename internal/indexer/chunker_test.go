package indexer

import (
	"strings"
	"testing"
)

func TestNewChunker_Validation(t *testing.T) {
	if _, err := NewChunker(1000, 1000); err == nil {
		t.Error("overlap == size should fail")
	}
	if _, err := NewChunker(1000, 1200); err == nil {
		t.Error("overlap > size should fail")
	}
	if _, err := NewChunker(0, 0); err == nil {
		t.Error("zero size should fail")
	}
	if _, err := NewChunker(1000, 200); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestChunk_WindowWalk(t *testing.T) {
	// 2400 content characters plus 100 trailing spaces: windows start at
	// 0, 800, 1600; the window at 2400 strips to nothing and is discarded.
	text := strings.Repeat("a", 2400) + strings.Repeat(" ", 100)
	c, err := NewChunker(1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.Chunk(text, nil)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	wantStarts := []int{0, 800, 1600}
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
		if ch.StartOffset != wantStarts[i] {
			t.Errorf("chunk %d start = %d, want %d", i, ch.StartOffset, wantStarts[i])
		}
		if len(ch.Text) > 1000 {
			t.Errorf("chunk %d length %d exceeds chunk size", i, len(ch.Text))
		}
		if ch.Length != len(ch.Text) {
			t.Errorf("chunk %d Length = %d, want len(Text) = %d", i, ch.Length, len(ch.Text))
		}
	}
}

func TestChunk_Idempotent(t *testing.T) {
	text := strings.Repeat("The company reported results. ", 200)
	c, _ := NewChunker(1000, 200)
	first := c.Chunk(text, map[string]any{"ticker": "AAPL"})
	second := c.Chunk(text, map[string]any{"ticker": "AAPL"})
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("chunk %d text differs between runs", i)
		}
		if first[i].StartOffset != second[i].StartOffset || first[i].EndOffset != second[i].EndOffset {
			t.Errorf("chunk %d offsets differ between runs", i)
		}
	}
}

func TestChunk_SentenceBoundary(t *testing.T) {
	text := strings.Repeat("Revenue grew again this year. ", 40) // 1200 chars
	c, _ := NewChunker(300, 50)
	chunks := c.Chunk(text, nil)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	first := chunks[0]
	if !strings.HasSuffix(first.Text, ".") {
		t.Errorf("chunk not truncated at sentence boundary: %q", first.Text[len(first.Text)-20:])
	}
	if len(first.Text) > 300 {
		t.Errorf("chunk length %d exceeds size", len(first.Text))
	}
}

func TestChunk_ParagraphFallback(t *testing.T) {
	// No sentence terminators anywhere; a blank line sits inside the tail
	// search region of the first window.
	text := strings.Repeat("words without end ", 15) + "\n\n" + strings.Repeat("more words here ", 60)
	c, _ := NewChunker(300, 50)
	chunks := c.Chunk(text, nil)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	if strings.Contains(chunks[0].Text, "\n\n") {
		t.Errorf("chunk was not cut at the paragraph break: %q", chunks[0].Text)
	}
}

func TestChunk_NoBoundaryKeepsWindow(t *testing.T) {
	text := strings.Repeat("b", 1200)
	c, _ := NewChunker(300, 50)
	chunks := c.Chunk(text, nil)
	if len(chunks[0].Text) != 300 {
		t.Errorf("window without boundaries should stay unmodified, got len %d", len(chunks[0].Text))
	}
}

func TestChunk_ShortWindowSkipsOptimization(t *testing.T) {
	// 250 characters total: a single window well under 90% of the size is
	// kept as-is even though it contains sentence terminators.
	text := strings.Repeat("Short sentences. ", 15)[:250]
	c, _ := NewChunker(1000, 200)
	chunks := c.Chunk(text, nil)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("short document window modified: %q", chunks[0].Text)
	}
}

func TestChunk_MetadataAttached(t *testing.T) {
	template := map[string]any{"ticker": "MSFT", "filing_type": "10-K"}
	text := "ITEM 1A. RISK FACTORS " + strings.Repeat("The business faces competition. ", 40)
	c, _ := NewChunker(1000, 200)
	chunks := c.Chunk(text, template)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	ch := chunks[0]
	if ch.Metadata["ticker"] != "MSFT" || ch.Metadata["filing_type"] != "10-K" {
		t.Errorf("template fields missing: %v", ch.Metadata)
	}
	if ch.Metadata["chunk_index"] != 0 {
		t.Errorf("chunk_index = %v, want 0", ch.Metadata["chunk_index"])
	}
	if ch.SectionLabel != "Item 1A - Risk Factors" {
		t.Errorf("section label = %q", ch.SectionLabel)
	}
	if ch.Metadata["section_label"] != "Item 1A - Risk Factors" {
		t.Errorf("metadata section_label = %v", ch.Metadata["section_label"])
	}
	// The caller's template must not be mutated.
	if _, ok := template["chunk_index"]; ok {
		t.Error("template map was mutated")
	}
}

func TestChunk_EmptyAndTinyText(t *testing.T) {
	c, _ := NewChunker(1000, 200)
	if got := c.Chunk("", nil); len(got) != 0 {
		t.Errorf("empty text produced %d chunks", len(got))
	}
	if got := c.Chunk("too short", nil); len(got) != 0 {
		t.Errorf("sub-minimum text produced %d chunks", len(got))
	}
}
