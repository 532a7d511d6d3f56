package services

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// unknownCandidate labels a result whose identity could not be parsed at
// all, as opposed to the model's own "N/A" for a nameless CV.
const unknownCandidate = "Unknown"

// CVAnalysisResult is one candidate's full result. Immutable once built;
// ownership passes to the persistence layer. A degraded result keeps its
// slot in the batch and carries Error instead of raising.
type CVAnalysisResult struct {
	Filename      string
	CandidateName string
	Scores        map[string]CriterionScore
	Summary       string
	TotalScore    float64
	Error         string
}

// Degraded reports whether this result came out of a failure path.
func (r *CVAnalysisResult) Degraded() bool {
	return r.Error != ""
}

type ScorerService interface {
	// ScoreCV turns a document transcript into a scored result. Never
	// returns an error: every failure mode degrades into the result
	// itself so the batch can continue.
	ScoreCV(ctx context.Context, transcript *DocumentTranscript, criteria []CriterionWeight, jobDescription, filename string) *CVAnalysisResult
}

type scorerService struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	logger        *zap.Logger
}

func NewScorerService(llm LLMService, logger *zap.Logger) ScorerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &scorerService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		logger:        logger,
	}
}

// modelVerdict is the JSON shape the scoring prompt demands.
type modelVerdict struct {
	Candidate string                    `json:"candidate"`
	Scores    map[string]CriterionScore `json:"scores"`
	Summary   string                    `json:"summary"`
}

// ScoreCV implements ScorerService.
func (s *scorerService) ScoreCV(ctx context.Context, transcript *DocumentTranscript, criteria []CriterionWeight, jobDescription, filename string) *CVAnalysisResult {
	if transcript == nil || transcript.Empty() {
		return s.degraded(filename, "insufficient evidence: document transcript is empty")
	}

	messages := s.promptBuilder.BuildScoringMessages(transcript.Text, jobDescription, criteria)
	response, err := s.llm.CompleteText(ctx, messages)
	if err != nil {
		s.logger.Error("scoring completion failed",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return s.degraded(filename, "model invocation failed: "+err.Error())
	}

	verdict, err := parseVerdict(response)
	if err != nil {
		s.logger.Warn("unparseable scoring response",
			zap.String("filename", filename),
			zap.Int("response_len", len(response)),
			zap.Error(err),
		)
		return s.degraded(filename, "unparseable model response: "+err.Error())
	}

	// Criteria the model skipped stay absent; the aggregator treats
	// absence as "not assessed", never as zero.
	scores := make(map[string]CriterionScore, len(criteria))
	for _, criterion := range criteria {
		if score, ok := verdict.Scores[criterion.Name]; ok {
			scores[criterion.Name] = score
		}
	}

	return &CVAnalysisResult{
		Filename:      filename,
		CandidateName: NormalizeCandidateName(verdict.Candidate),
		Scores:        scores,
		Summary:       strings.TrimSpace(verdict.Summary),
		TotalScore:    AggregateScore(scores, criteria),
	}
}

func (s *scorerService) degraded(filename, reason string) *CVAnalysisResult {
	return &CVAnalysisResult{
		Filename:      filename,
		CandidateName: unknownCandidate,
		Scores:        map[string]CriterionScore{},
		TotalScore:    0.0,
		Error:         reason,
	}
}

func parseVerdict(response string) (*modelVerdict, error) {
	var verdict modelVerdict
	if err := json.Unmarshal([]byte(RepairJSON(response)), &verdict); err != nil {
		return nil, err
	}
	if verdict.Scores == nil {
		verdict.Scores = map[string]CriterionScore{}
	}
	return &verdict, nil
}

// RepairJSON strips the Markdown code fences the model sometimes wraps its
// JSON in despite instruction, then slices out the outermost JSON object.
// Applying it to already-clean JSON is a no-op, so nested fences collapse.
func RepairJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// NormalizeCandidateName title-cases each word of an extracted name,
// leaving the "N/A" sentinel and empty input untouched.
func NormalizeCandidateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "N/A" {
		return name
	}
	// A cases.Caser is stateful; build one per call.
	return cases.Title(language.English).String(name)
}
