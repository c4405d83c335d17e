package assist

import (
	"context"
	"fmt"
	"strings"

	"resume-builder-backend/internal/llm"
	"resume-builder-backend/internal/shared/telemetry"
	"resume-builder-backend/resume/model"
)

// BulletResult is the enhance-bullet outcome.
type BulletResult struct {
	Enhanced     string   `json:"enhanced"`
	Alternatives []string `json:"alternatives"`
}

// ATSResult is the ATS-score outcome.
type ATSResult struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Service builds prompts, calls the model, and parses best-effort JSON
// out of the reply. Parse failures fall back to static defaults rather
// than failing the request.
type Service struct {
	LLM llm.Client
}

// EnhanceBullet rewrites one resume bullet.
func (s *Service) EnhanceBullet(ctx context.Context, bullet, role string) (BulletResult, error) {
	bullet = strings.TrimSpace(bullet)
	if bullet == "" {
		return BulletResult{}, ErrInvalidInput
	}

	raw, err := s.LLM.Complete(ctx, llm.EnhanceBulletPrompt(bullet, role))
	if err != nil {
		return BulletResult{}, err
	}

	var out BulletResult
	if !decodeInto(raw, &out) || out.Enhanced == "" {
		telemetry.Error("assist.parse_fallback", map[string]any{"op": "enhance_bullet"})
		return BulletResult{Enhanced: bullet, Alternatives: []string{}}, nil
	}
	if out.Alternatives == nil {
		out.Alternatives = []string{}
	}
	return out, nil
}

// Summary drafts a professional summary from the resume content.
func (s *Service) Summary(ctx context.Context, content model.Content, targetRole string) (string, error) {
	raw, err := s.LLM.Complete(ctx, llm.SummaryPrompt(renderText(content), targetRole))
	if err != nil {
		return "", err
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if !decodeInto(raw, &out) || strings.TrimSpace(out.Summary) == "" {
		telemetry.Error("assist.parse_fallback", map[string]any{"op": "summary"})
		return content.PersonalInfo.Summary, nil
	}
	return out.Summary, nil
}

// CoverLetter drafts a cover letter for a job description.
func (s *Service) CoverLetter(ctx context.Context, content model.Content, jobDescription, company string) (string, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return "", ErrInvalidInput
	}

	raw, err := s.LLM.Complete(ctx, llm.CoverLetterPrompt(renderText(content), jobDescription, company))
	if err != nil {
		return "", err
	}

	var out struct {
		CoverLetter string `json:"coverLetter"`
	}
	if !decodeInto(raw, &out) || strings.TrimSpace(out.CoverLetter) == "" {
		telemetry.Error("assist.parse_fallback", map[string]any{"op": "cover_letter"})
		// The raw reply is usually the letter itself when JSON parsing fails.
		return raw, nil
	}
	return out.CoverLetter, nil
}

// ATSScore estimates how well the resume matches a job description.
func (s *Service) ATSScore(ctx context.Context, content model.Content, jobDescription string) (ATSResult, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return ATSResult{}, ErrInvalidInput
	}

	raw, err := s.LLM.Complete(ctx, llm.ATSScorePrompt(renderText(content), jobDescription))
	if err != nil {
		return ATSResult{}, err
	}

	var out ATSResult
	if !decodeInto(raw, &out) || out.Score < 0 || out.Score > 100 {
		telemetry.Error("assist.parse_fallback", map[string]any{"op": "ats_score"})
		return defaultATSResult(), nil
	}
	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Improvements == nil {
		out.Improvements = []string{}
	}
	return out, nil
}

func defaultATSResult() ATSResult {
	return ATSResult{
		Score:        50,
		Strengths:    []string{},
		Improvements: []string{"Automatic scoring was unavailable; review keyword coverage manually."},
	}
}

// renderText flattens resume content into plain text for prompts.
func renderText(c model.Content) string {
	var b strings.Builder
	p := c.PersonalInfo
	fmt.Fprintf(&b, "%s\n%s | %s | %s\n", p.FullName, p.Email, p.Phone, p.Location)
	if p.Summary != "" {
		fmt.Fprintf(&b, "\nSummary\n%s\n", p.Summary)
	}
	if len(c.Experience) > 0 {
		b.WriteString("\nExperience\n")
		for _, e := range c.Experience {
			end := e.EndDate
			if e.Current {
				end = "Present"
			}
			fmt.Fprintf(&b, "%s, %s (%s - %s)\n", e.Position, e.Company, e.StartDate, end)
			for _, bullet := range e.Bullets {
				fmt.Fprintf(&b, "- %s\n", bullet)
			}
		}
	}
	if len(c.Education) > 0 {
		b.WriteString("\nEducation\n")
		for _, e := range c.Education {
			fmt.Fprintf(&b, "%s, %s %s (%s - %s)\n", e.Institution, e.Degree, e.Field, e.StartDate, e.EndDate)
		}
	}
	skills := append(append(append(append([]string{}, c.Skills.Technical...), c.Skills.Tools...), c.Skills.Languages...), c.Skills.Soft...)
	if len(skills) > 0 {
		fmt.Fprintf(&b, "\nSkills\n%s\n", strings.Join(skills, ", "))
	}
	if len(c.Projects) > 0 {
		b.WriteString("\nProjects\n")
		for _, p := range c.Projects {
			fmt.Fprintf(&b, "%s: %s\n", p.Name, p.Description)
		}
	}
	if len(c.Certifications) > 0 {
		b.WriteString("\nCertifications\n")
		for _, cert := range c.Certifications {
			fmt.Fprintf(&b, "%s (%s)\n", cert.Name, cert.Issuer)
		}
	}
	for _, s := range c.CustomSections {
		fmt.Fprintf(&b, "\n%s\n", s.Title)
		for _, item := range s.Items {
			fmt.Fprintf(&b, "%s: %s\n", item.Heading, item.Body)
		}
	}
	return b.String()
}
