package merge

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		existing *string
		proposed *string
		want     *string
	}{
		{"nil proposal keeps existing", strPtr("기존"), nil, strPtr("기존")},
		{"empty proposal keeps existing", strPtr("기존"), strPtr(""), strPtr("기존")},
		{"proposal overwrites", strPtr("기존"), strPtr("새 값"), strPtr("새 값")},
		{"proposal fills nil", nil, strPtr("새 값"), strPtr("새 값")},
		{"both nil", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.existing, tt.proposed)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Text() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Text() = %q, want %q", *got, *tt.want)
			}
		})
	}
}

func TestTextCopiesValue(t *testing.T) {
	proposed := strPtr("원본")
	got := Text(nil, proposed)
	*proposed = "변경됨"
	if *got != "원본" {
		t.Errorf("Text must copy the proposed value, got %q", *got)
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		proposed []string
		want     []string
	}{
		{"empty proposal keeps existing", []string{"React"}, nil, []string{"React"}},
		{"dedupes against existing", []string{"React"}, []string{"React", "Node"}, []string{"React", "Node"}},
		{"preserves existing order", []string{"b", "a"}, []string{"c", "a"}, []string{"b", "a", "c"}},
		{"drops empty strings", []string{"", "React"}, []string{"", "Node"}, []string{"React", "Node"}},
		{"fills from nil", nil, []string{"Go"}, []string{"Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Union(tt.existing, tt.proposed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Union(%v, %v) = %v, want %v", tt.existing, tt.proposed, got, tt.want)
			}
		})
	}
}

func TestUnionIdempotent(t *testing.T) {
	existing := []string{"React", "Node"}
	proposed := []string{"Node", "Go"}

	once := Union(existing, proposed)
	twice := Union(once, proposed)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("applying the same proposal twice changed the result: %v vs %v", once, twice)
	}
}
