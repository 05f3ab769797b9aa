// Package assist drafts job and company copy with a text generation model.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// TextGenerator returns a model's answer to a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Kind names a drafting prompt
type Kind string

const (
	KindJobDescription   Kind = "job-description"
	KindShortDescription Kind = "short-description"
	KindCompanyOverview  Kind = "company-overview"
	KindWhyJoinUs        Kind = "why-join-us"
)

// Prompt renders the prompt of a drafting kind
func Prompt(kind Kind, position, skills string) (string, error) {
	switch kind {
	case KindJobDescription:
		return fmt.Sprintf("Generate a detailed job description for the position: %s. Skills: %s", position, skills), nil
	case KindShortDescription:
		return fmt.Sprintf("Generate a short description for the job position: %s", position), nil
	case KindCompanyOverview:
		return fmt.Sprintf("Generate a detailed company overview for the position: %s.", position), nil
	case KindWhyJoinUs:
		return fmt.Sprintf("Generate a compelling reason why someone should join the role: %s.", position), nil
	}
	return "", ErrUnknownKind().WithDetail("kind", string(kind))
}

// TagsPrompt asks for keywords of a profession as a JSON array
func TagsPrompt(position string) string {
	return fmt.Sprintf("Generate a list of 10 relevant keywords related to the job profession %q. Return as JSON array.", position)
}

var markdownMarks = regexp.MustCompile(`[*#]`)

// CleanGeneratedText drops one leading and one trailing single quote and markdown emphasis characters
func CleanGeneratedText(s string) string {
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimSuffix(s, "'")
	return strings.TrimSpace(markdownMarks.ReplaceAllString(s, ""))
}

var leadingJSONMarker = regexp.MustCompile(`^json\s*`)

// ParseTags reads a JSON string array out of a model answer that may be
// wrapped in a code fence or prefixed with a "json" marker
func ParseTags(raw string) ([]string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "```", "")
	s = strings.TrimSpace(leadingJSONMarker.ReplaceAllString(strings.TrimSpace(s), ""))

	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, ErrUnparseableTags().WithCause(err)
	}
	return tags, nil
}
