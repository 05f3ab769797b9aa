package assist

import (
	"reflect"
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

func TestCleanGeneratedText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"'## Senior **Go** Engineer'", "Senior Go Engineer"},
		{"plain text", "plain text"},
		{"it's fine", "it's fine"},
		{"''", ""},
	}
	for _, tt := range tests {
		if got := CleanGeneratedText(tt.in); got != tt.want {
			t.Errorf("CleanGeneratedText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	want := []string{"go", "kubernetes"}
	inputs := []string{
		`["go","kubernetes"]`,
		"```json\n[\"go\", \"kubernetes\"]\n```",
		"json [\"go\",\"kubernetes\"]",
	}
	for _, in := range inputs {
		got, err := ParseTags(in)
		if err != nil {
			t.Fatalf("ParseTags(%q) error = %v", in, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("ParseTags(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseTags("here are some tags: go, rust"); !errx.IsCode(err, CodeUnparseableTags) {
		t.Fatalf("ParseTags(prose) error = %v", err)
	}
}

func TestPrompt(t *testing.T) {
	got, err := Prompt(KindJobDescription, "Backend Engineer", "Go, SQL")
	if err != nil || got != "Generate a detailed job description for the position: Backend Engineer. Skills: Go, SQL" {
		t.Fatalf("Prompt() = %q, %v", got, err)
	}
	if _, err := Prompt("poem", "x", ""); !errx.IsCode(err, CodeUnknownKind) {
		t.Fatalf("Prompt(unknown) error = %v", err)
	}
}
