package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-builder-backend/internal/llm"
	"resume-builder-backend/resume/model"
)

type staticClient struct {
	resp string
	err  error
}

func (c staticClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return c.resp, c.err
}

func testContent() model.Content {
	return model.Content{
		PersonalInfo: model.PersonalInfo{
			FullName: "Dana Smith",
			Email:    "dana@example.com",
			Summary:  "Existing summary.",
		},
		Experience: []model.Experience{{
			Company:  "Acme",
			Position: "Engineer",
			Bullets:  []string{"Did things"},
		}},
	}
}

func TestEnhanceBulletParsesResponse(t *testing.T) {
	svc := &Service{LLM: staticClient{resp: `{"enhanced": "Led things", "alternatives": ["Drove things"]}`}}

	out, err := svc.EnhanceBullet(context.Background(), "Did things", "Engineer")
	if err != nil {
		t.Fatalf("EnhanceBullet: %v", err)
	}
	if out.Enhanced != "Led things" || len(out.Alternatives) != 1 {
		t.Fatalf("out = %+v", out)
	}
}

func TestEnhanceBulletFallsBackOnParseFailure(t *testing.T) {
	svc := &Service{LLM: staticClient{resp: "not json at all"}}

	out, err := svc.EnhanceBullet(context.Background(), "Did things", "")
	if err != nil {
		t.Fatalf("EnhanceBullet: %v", err)
	}
	if out.Enhanced != "Did things" {
		t.Fatalf("fallback should echo the original bullet, got %q", out.Enhanced)
	}
}

func TestEnhanceBulletRejectsEmptyInput(t *testing.T) {
	svc := &Service{LLM: staticClient{}}
	if _, err := svc.EnhanceBullet(context.Background(), "   ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSummaryFallsBackToExistingSummary(t *testing.T) {
	svc := &Service{LLM: staticClient{resp: "no json"}}

	out, err := svc.Summary(context.Background(), testContent(), "")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if out != "Existing summary." {
		t.Fatalf("fallback summary = %q", out)
	}
}

func TestATSScoreBoundsAndDefaults(t *testing.T) {
	svc := &Service{LLM: staticClient{resp: `{"score": 150, "strengths": [], "improvements": []}`}}

	out, err := svc.ATSScore(context.Background(), testContent(), "Go developer role")
	if err != nil {
		t.Fatalf("ATSScore: %v", err)
	}
	// Out-of-range scores fall back to the static default.
	if out.Score != 50 {
		t.Fatalf("score = %d, want 50", out.Score)
	}
	if len(out.Improvements) == 0 {
		t.Fatalf("default result should carry an improvement hint")
	}
}

func TestAssistPropagatesNotConfigured(t *testing.T) {
	svc := &Service{LLM: llm.PlaceholderClient{}}

	if _, err := svc.EnhanceBullet(context.Background(), "Did things", ""); !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestRenderTextIncludesSections(t *testing.T) {
	text := renderText(testContent())
	for _, want := range []string{"Dana Smith", "Acme", "- Did things", "Existing summary."} {
		if !strings.Contains(text, want) {
			t.Fatalf("rendered text missing %q:\n%s", want, text)
		}
	}
}
