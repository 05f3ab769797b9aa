package embeddings

import (
	"context"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	if got := truncate("héllo", 3); got != "hél" {
		t.Fatalf("truncate() = %q, want %q", got, "hél")
	}
	if got := truncate("go", 10); got != "go" {
		t.Fatalf("truncate() = %q, want %q", got, "go")
	}
}

func TestToFloat32(t *testing.T) {
	got := toFloat32([]float64{0.5, -1})
	if len(got) != 2 || got[0] != 0.5 || got[1] != -1 {
		t.Fatalf("toFloat32() = %v", got)
	}
}

func TestGenerateEmbeddingRejectsBlankText(t *testing.T) {
	g := NewGenerator("test-key")
	if _, err := g.GenerateEmbedding(context.Background(), strings.Repeat(" ", 4)); err == nil {
		t.Fatalf("GenerateEmbedding(blank) error = nil")
	}
}
