package hotkeys

import (
	"reflect"
	"sort"
	"testing"
)

func TestIgnoreModCombinations(t *testing.T) {
	tests := []struct {
		name  string
		masks []uint16
		want  []uint16
	}{
		{"caps only", []uint16{2, 0, 0}, []uint16{0, 2}},
		{"caps and numlock", []uint16{2, 16, 0}, []uint16{0, 2, 16, 18}},
		{"all three", []uint16{2, 16, 128}, []uint16{0, 2, 16, 18, 128, 130, 144, 146}},
		{"duplicate numlock", []uint16{2, 2, 16}, []uint16{0, 2, 16, 18}},
		{"nothing", nil, []uint16{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ignoreModCombinations(tt.masks...)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
