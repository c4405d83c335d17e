package llm

import (
	"fmt"
	"strings"
)

// EnhanceBulletPrompt asks for a stronger phrasing of one resume bullet.
// The model must answer with a JSON object: {"enhanced": string,
// "alternatives": [string]}.
func EnhanceBulletPrompt(bullet, role string) string {
	var b strings.Builder
	b.WriteString("You are a resume writing assistant. Rewrite the following resume bullet point to be concise, achievement-oriented, and to start with a strong action verb. Quantify impact where the original implies it; never invent numbers.\n")
	if strings.TrimSpace(role) != "" {
		fmt.Fprintf(&b, "Target role: %s\n", strings.TrimSpace(role))
	}
	fmt.Fprintf(&b, "Bullet: %q\n", bullet)
	b.WriteString(`Respond with a JSON object only: {"enhanced": "...", "alternatives": ["...", "..."]}`)
	return b.String()
}

// SummaryPrompt asks for a professional summary derived from the resume.
// Expected answer: {"summary": string}.
func SummaryPrompt(resumeText, targetRole string) string {
	var b strings.Builder
	b.WriteString("You are a resume writing assistant. Write a professional summary of 2-3 sentences for the resume below. Use plain, confident language without first-person pronouns.\n")
	if strings.TrimSpace(targetRole) != "" {
		fmt.Fprintf(&b, "Target role: %s\n", strings.TrimSpace(targetRole))
	}
	b.WriteString("Resume:\n")
	b.WriteString(resumeText)
	b.WriteString("\nRespond with a JSON object only: {\"summary\": \"...\"}")
	return b.String()
}

// CoverLetterPrompt asks for a cover letter tailored to a job posting.
// Expected answer: {"coverLetter": string}.
func CoverLetterPrompt(resumeText, jobDescription, company string) string {
	var b strings.Builder
	b.WriteString("You are a career assistant. Write a one-page cover letter tailored to the job description below, grounded only in what the resume states.\n")
	if strings.TrimSpace(company) != "" {
		fmt.Fprintf(&b, "Company: %s\n", strings.TrimSpace(company))
	}
	b.WriteString("Job description:\n")
	b.WriteString(jobDescription)
	b.WriteString("\nResume:\n")
	b.WriteString(resumeText)
	b.WriteString("\nRespond with a JSON object only: {\"coverLetter\": \"...\"}")
	return b.String()
}

// ATSScorePrompt asks for an applicant-tracking-system style score.
// Expected answer: {"score": int 0-100, "strengths": [string],
// "improvements": [string]}.
func ATSScorePrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString("You are an ATS evaluation assistant. Score how well the resume below matches the job description on a 0-100 scale, considering keyword coverage, relevant experience, and formatting.\n")
	b.WriteString("Job description:\n")
	b.WriteString(jobDescription)
	b.WriteString("\nResume:\n")
	b.WriteString(resumeText)
	b.WriteString("\nRespond with a JSON object only: {\"score\": 0, \"strengths\": [], \"improvements\": []}")
	return b.String()
}
