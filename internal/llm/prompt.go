package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/analyze_v1.txt
var promptV1 string

// SystemPrompt is the fixed system message sent with every analysis.
const SystemPrompt = "You are a resume review engine. Be specific and actionable. Always finish with the requested ATS score line."

// BuildPrompt renders the user prompt, embedding the job role and resume text
// verbatim.
func BuildPrompt(input AnalyzeInput) string {
	replacer := strings.NewReplacer(
		"{{JOB_ROLE}}", input.JobRole,
		"{{RESUME_TEXT}}", input.ResumeText,
	)
	return replacer.Replace(promptV1)
}
