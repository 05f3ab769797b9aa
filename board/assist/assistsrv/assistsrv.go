package assistsrv

import (
	"context"
	"strings"

	"github.com/Abraxas-365/jobboard/board/assist"
	"github.com/Abraxas-365/jobboard/board/job"
	"github.com/Abraxas-365/jobboard/pkg/logx"
)

// AssistService drafts copy for job and company forms
type AssistService struct {
	generator assist.TextGenerator
}

// NewAssistService creates the service. A nil generator makes every call fail with ErrUnavailable.
func NewAssistService(generator assist.TextGenerator) *AssistService {
	return &AssistService{generator: generator}
}

// Draft generates and cleans free text of the given kind
func (s *AssistService) Draft(ctx context.Context, kind assist.Kind, req assist.DraftRequest) (*assist.DraftResponse, error) {
	position := strings.TrimSpace(req.Position)
	if position == "" {
		return nil, assist.ErrMissingPosition()
	}

	prompt, err := assist.Prompt(kind, position, strings.TrimSpace(req.Skills))
	if err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &assist.DraftResponse{Text: assist.CleanGeneratedText(raw)}, nil
}

// SuggestTags asks for keywords and merges the new ones after the existing tags
func (s *AssistService) SuggestTags(ctx context.Context, req assist.TagsRequest) (*assist.TagsResponse, error) {
	position := strings.TrimSpace(req.Position)
	if position == "" {
		return nil, assist.ErrMissingPosition()
	}

	raw, err := s.generate(ctx, assist.TagsPrompt(position))
	if err != nil {
		return nil, err
	}

	suggested, err := assist.ParseTags(raw)
	if err != nil {
		logx.Warnf("unparseable tag suggestions for %q: %q", position, raw)
		return nil, err
	}

	return &assist.TagsResponse{
		Suggested: suggested,
		Tags:      job.MergeTags(req.Existing, suggested),
	}, nil
}

func (s *AssistService) generate(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", assist.ErrUnavailable()
	}

	out, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logx.Errorf("text generation failed: %v", err)
		return "", assist.ErrGenerationFailed().WithCause(err)
	}
	return out, nil
}
