package vector

import "testing"

func TestFilter_Matches(t *testing.T) {
	meta := map[string]any{
		"ticker":      "AAPL",
		"filing_type": "10-K",
		"chunk_index": 3,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"nil filter", nil, true},
		{"empty filter", Filter{}, true},
		{"exact match", Filter{"ticker": "AAPL"}, true},
		{"exact mismatch", Filter{"ticker": "MSFT"}, false},
		{"two keys both match", Filter{"ticker": "AAPL", "filing_type": "10-K"}, true},
		{"two keys one mismatch", Filter{"ticker": "AAPL", "filing_type": "10-Q"}, false},
		{"missing key", Filter{"cik": "0000320193"}, false},
		{"string list member", Filter{"filing_type": []string{"10-K", "10-Q"}}, true},
		{"string list non-member", Filter{"filing_type": []string{"8-K", "S-1"}}, false},
		{"any list member", Filter{"ticker": []any{"AAPL", "GOOG"}}, true},
		{"int equality", Filter{"chunk_index": 3}, true},
		{"int mismatch", Filter{"chunk_index": 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(meta); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_UncomparableValues(t *testing.T) {
	// Nested objects out of JSON decode to maps and slices. They can never
	// satisfy a filter, but they must not panic the comparison either.
	meta := map[string]any{
		"ticker": "AAPL",
		"extra":  map[string]any{"nested": true},
	}
	if (Filter{"extra": map[string]any{"nested": true}}).Matches(meta) {
		t.Error("map-valued filter should not match")
	}
	if (Filter{"ticker": map[string]any{}}).Matches(meta) {
		t.Error("map filter against string metadata should not match")
	}
	if (Filter{"extra": "flat"}).Matches(meta) {
		t.Error("string filter against map metadata should not match")
	}
	if (Filter{"extra": []any{map[string]any{"nested": true}}}).Matches(meta) {
		t.Error("list of maps should not match")
	}
	if !(Filter{"ticker": "AAPL"}).Matches(map[string]any{"ticker": "AAPL", "blob": []byte("x")}) {
		t.Error("unrelated uncomparable metadata must not affect other keys")
	}
}

func TestFilter_NumericJSONRoundTrip(t *testing.T) {
	// After a snapshot reload, JSON numbers come back as float64. The filter
	// must still match an int written by the chunker.
	meta := map[string]any{"chunk_index": float64(3)}
	if !(Filter{"chunk_index": 3}).Matches(meta) {
		t.Error("int filter should match float64 metadata")
	}
	if !(Filter{"chunk_index": []any{float64(3)}}).Matches(map[string]any{"chunk_index": 3}) {
		t.Error("float64 list filter should match int metadata")
	}
}
