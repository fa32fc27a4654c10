package keywords

import (
	"reflect"
	"testing"
)

func TestFrequencies(t *testing.T) {
	freq := Frequencies("The plumbing experts. Plumbing, heating, and cooling!")

	if freq["plumbing"] != 2 {
		t.Errorf("plumbing: got %d, want 2", freq["plumbing"])
	}
	if freq["heating"] != 1 || freq["cooling"] != 1 {
		t.Errorf("heating/cooling: got %v", freq)
	}
	if _, ok := freq["the"]; ok {
		t.Error("stopword 'the' not filtered")
	}
	if _, ok := freq["and"]; ok {
		t.Error("stopword 'and' not filtered")
	}
}

func TestFrequenciesDropsShortTokens(t *testing.T) {
	freq := Frequencies("go is ok but repair matters")
	if _, ok := freq["go"]; ok {
		t.Error("two-letter token kept")
	}
	if freq["repair"] != 1 {
		t.Errorf("repair: got %v", freq)
	}
}

func TestTopOrderingAndTies(t *testing.T) {
	freq := map[string]int{"bread": 3, "cake": 1, "pastry": 3, "coffee": 2}
	got := Top(freq, 3)

	// bread and pastry tie at 3; alphabetical break puts bread first.
	want := []string{"bread", "pastry", "coffee"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTopBounds(t *testing.T) {
	freq := map[string]int{"solo": 1}
	if got := Top(freq, 10); len(got) != 1 {
		t.Errorf("n beyond size: got %v", got)
	}
	if got := Top(freq, 0); len(got) != 0 {
		t.Errorf("n zero: got %v", got)
	}
}

func TestMerge(t *testing.T) {
	merged := Merge([]map[string]int{
		{"bread": 2, "cake": 1},
		{"bread": 1, "coffee": 4},
	})

	want := map[string]int{"bread": 3, "cake": 1, "coffee": 4}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("got %v, want %v", merged, want)
	}
}

func TestIsStopword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"the", true},
		{"The", true},
		{"click", true},
		{"bakery", false},
	}
	for _, tt := range tests {
		if got := IsStopword(tt.word); got != tt.want {
			t.Errorf("IsStopword(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
