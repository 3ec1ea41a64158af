package segment

import (
	"strings"
	"testing"
)

func filler(n int) string {
	return strings.Repeat("x ", n/2)
}

func TestSegment_FindsSections(t *testing.T) {
	text := "ITEM 1. BUSINESS " + filler(300) +
		" ITEM 1A. RISK FACTORS " + filler(300) +
		" ITEM 7. MANAGEMENT'S DISCUSSION " + filler(300)

	sections := Segment(text)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3: %v", len(sections), sections)
	}

	business, ok := sections["Item 1 - Business"]
	if !ok {
		t.Fatal("Item 1 - Business not found")
	}
	if business.StartOffset != 0 {
		t.Errorf("business start = %d, want 0", business.StartOffset)
	}
	risk := sections["Item 1A - Risk Factors"]
	if business.EndOffset != risk.StartOffset {
		t.Errorf("business end = %d, want next section start %d", business.EndOffset, risk.StartOffset)
	}
}

func TestSegment_LastSectionRunsToEnd(t *testing.T) {
	text := "ITEM 15. EXHIBITS " + filler(400)
	sections := Segment(text)
	s, ok := sections["Item 15 - Exhibits"]
	if !ok {
		t.Fatal("Item 15 - Exhibits not found")
	}
	if s.EndOffset != len(text) {
		t.Errorf("end = %d, want document end %d", s.EndOffset, len(text))
	}
}

func TestSegment_LookAheadGuard(t *testing.T) {
	// The next header starts within 100 characters of the first; the guard
	// means it cannot delimit the first section.
	text := "ITEM 1. BUSINESS short " + "ITEM 2. PROPERTIES " + filler(300)
	sections := Segment(text)
	business := sections["Item 1 - Business"]
	if business.EndOffset != len(text) {
		t.Errorf("business end = %d, want %d (guard should skip the close header)", business.EndOffset, len(text))
	}
}

func TestSegment_AbsentLabels(t *testing.T) {
	sections := Segment("No recognizable headers in this text at all. " + filler(200))
	if len(sections) != 0 {
		t.Errorf("got %d sections, want 0", len(sections))
	}
}

func TestSegment_CaseInsensitive(t *testing.T) {
	sections := Segment("item 1. business " + filler(300))
	if _, ok := sections["Item 1 - Business"]; !ok {
		t.Error("lowercase header not matched")
	}
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"ITEM 1A. RISK FACTORS The company faces risks", "Item 1A - Risk Factors"},
		{"Leading text then ITEM 8. FINANCIAL STATEMENTS follow", "Item 8 - Financial Statements"},
		{"no header at all here", ""},
		{"ITEM 2. PROPERTIES is not in the reduced subset", ""},
	}
	for _, tt := range tests {
		if got := Identify(tt.text); got != tt.want {
			t.Errorf("Identify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
