package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestTail(t *testing.T) {
	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"all (0)", 0, all},
		{"all (negative)", -1, all},
		{"partial (3)", 3, all[7:]},
		{"exactly all (10)", 10, all},
		{"more than exists (20)", 20, all},
		{"one", 1, all[9:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(strings.NewReader(content.String()), tt.n)
			if err != nil {
				t.Fatalf("Tail returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tail(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.log")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path, 2)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("ReadFile = %v, want [b c]", got)
	}
}

func TestReadFile_MissingFileIsEmpty(t *testing.T) {
	got, err := ReadFile(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ReadFile = %v, want empty", got)
	}
}
