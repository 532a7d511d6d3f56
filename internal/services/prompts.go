package services

import (
	"fmt"
	"strings"
)

// Prompt text lives here as versioned constants so wording changes are
// auditable independent of pipeline changes.

const visionSystemPrompt = `You are an OCR assistant powered by a Vision-Language Model. Your job is to extract text and formatting information from any document, regardless of its format (images, PDFs, handwritten notes, etc.). You must output all extracted content in a well-organized Markdown document.
Key requirements:
Comprehensive Extraction: Capture every bit of text present in the document.
Structured Markdown Output: Organize the extracted text into a structured Markdown format.
Formatting Preservation:
Headers: Convert document headers into Markdown headers (using #, ##, etc.).
Footers: Identify and annotate footers appropriately.
Tables: Recognize tables and render them using Markdown table syntax.
Additional Features: Include lists, bold or italic text, page breaks, and any other formatting cues that can be represented in Markdown.
Detail-Oriented: Ensure that nothing is omitted - extract and present all available information from the document.
Your final output should be a single, structured Markdown document that faithfully represents both the content and the formatting of the original input.`

const visionUserPrompt = `Please extract all text and formatting from this page and present it as a well-structured Markdown document.`

const scoringGuidelines = `Scoring guidelines:
- Score each criterion on a 0-10 scale with one decimal of precision.
- 0 means the criterion is missing or irrelevant in the CV.
- 5 means the CV meets the basic requirement.
- 10 means the CV clearly exceeds expectations.
- Base every score on concrete evidence from the CV, judged against the job description.
- Do not invent information that is not in the CV. If the CV gives no evidence for a criterion, score it low and say so.`

const scoringResponseShape = `Respond with ONLY a JSON object in exactly this shape, with no Markdown code fences and no text outside the JSON:
{
  "candidate": "<full name of the candidate, or \"N/A\" if it cannot be determined>",
  "scores": {
    "<criterion name>": {
      "score": <number between 0 and 10 with one decimal>,
      "explanation": "<one to three sentences of evidence-backed reasoning>"
    }
  },
  "summary": "<a 2-paragraph narrative summary of the candidate against the job description>"
}

Example:
{
  "candidate": "Jane Doe",
  "scores": {
    "Experience": {
      "score": 7.5,
      "explanation": "Six years of backend roles with increasing scope, closely matching the position's requirements."
    }
  },
  "summary": "Jane Doe is a strong match for the role...\n\nHer main gap is..."
}`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildVisionMessages returns the fixed page-extraction prompt sequence.
func (pb *PromptBuilder) BuildVisionMessages() []Message {
	return []Message{
		{Role: RoleSystem, Content: visionSystemPrompt},
		{Role: RoleUser, Content: visionUserPrompt},
	}
}

// BuildScoringMessages renders the criteria-aware scoring prompt for one
// document transcript.
func (pb *PromptBuilder) BuildScoringMessages(transcript, jobDescription string, criteria []CriterionWeight) []Message {
	var criteriaList strings.Builder
	for _, c := range criteria {
		fmt.Fprintf(&criteriaList, "- %s: %s\n", c.Name, c.Description)
	}

	system := fmt.Sprintf(`You are an expert HR recruiter evaluating a candidate's CV for the following position.

JOB DESCRIPTION:
%s

EVALUATION CRITERIA:
%s
%s

%s`, jobDescription, criteriaList.String(), scoringGuidelines, scoringResponseShape)

	user := fmt.Sprintf(`CANDIDATE CV (Markdown transcript):
%s

Extract the candidate's full name (use "N/A" if the CV does not state one) and score the candidate on every criterion listed above. Remember: JSON only, exactly the shape specified.`, transcript)

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}
