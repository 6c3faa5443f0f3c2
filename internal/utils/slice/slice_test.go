package slice

import (
	"reflect"
	"testing"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		str   string
		want  bool
	}{
		{"present", []string{"eatmydata", "gdebi-core"}, "gdebi-core", true},
		{"absent", []string{"eatmydata", "gdebi-core"}, "python3.5", false},
		{"empty slice", []string{}, "anything", false},
		{"empty string present", []string{""}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.slice, tt.str); got != tt.want {
				t.Errorf("Contains(%v, %q) = %v, want %v", tt.slice, tt.str, got, tt.want)
			}
		})
	}
}

func TestDedup(t *testing.T) {
	got := Dedup([]string{"main", "universe", "main", "restricted", "universe"})
	want := []string{"main", "universe", "restricted"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedup returned %v, want %v", got, want)
	}
}

func TestDedupEmpty(t *testing.T) {
	if got := Dedup(nil); len(got) != 0 {
		t.Errorf("Dedup(nil) returned %v, want empty", got)
	}
}
