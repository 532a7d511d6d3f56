package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UploadedDocument is one CV as received from the HTTP layer.
type UploadedDocument struct {
	Filename string
	Data     []byte
}

type AnalyzerService interface {
	// AnalyzeBatch runs the full pipeline over every uploaded document
	// and returns one result per document, ranked by composite score
	// descending with ties kept in submission order. Individual document
	// failures become degraded results; the batch itself never fails.
	AnalyzeBatch(ctx context.Context, docs []UploadedDocument, criteria []CriterionWeight, jobDescription string) []*CVAnalysisResult
}

type analyzerService struct {
	rasterizer RasterizerService
	transcript TranscriptService
	scorer     ScorerService
	groupSize  int
	logger     *zap.Logger
}

func NewAnalyzerService(
	rasterizer RasterizerService,
	transcript TranscriptService,
	scorer ScorerService,
	groupSize int,
	logger *zap.Logger,
) AnalyzerService {
	if groupSize < 1 {
		groupSize = 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analyzerService{
		rasterizer: rasterizer,
		transcript: transcript,
		scorer:     scorer,
		groupSize:  groupSize,
		logger:     logger,
	}
}

// AnalyzeBatch implements AnalyzerService. Documents run in fixed-size
// groups so the number of outstanding model calls stays bounded: groups are
// sequential, documents within a group concurrent.
func (a *analyzerService) AnalyzeBatch(ctx context.Context, docs []UploadedDocument, criteria []CriterionWeight, jobDescription string) []*CVAnalysisResult {
	results := make([]*CVAnalysisResult, len(docs))

	for start := 0; start < len(docs); start += a.groupSize {
		end := start + a.groupSize
		if end > len(docs) {
			end = len(docs)
		}

		g := new(errgroup.Group)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = a.analyzeDocument(ctx, docs[i], criteria, jobDescription)
				return nil
			})
		}
		// Workers never return errors; Wait only synchronizes the group.
		_ = g.Wait()
	}

	// Rank explicitly so completion-order nondeterminism never leaks into
	// the output. Stable: equal scores keep submission order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	return results
}

func (a *analyzerService) analyzeDocument(ctx context.Context, doc UploadedDocument, criteria []CriterionWeight, jobDescription string) *CVAnalysisResult {
	log := a.logger.With(zap.String("filename", doc.Filename))

	if !isPDF(doc.Filename, doc.Data) {
		log.Warn("rejecting non-pdf document")
		return degradedResult(doc.Filename, ErrUnsupportedFormat.Error())
	}

	pages, err := a.rasterizer.RasterizePDF(doc.Data)
	if err != nil {
		log.Warn("document rasterization failed", zap.Error(err))
		return degradedResult(doc.Filename, err.Error())
	}
	log.Info("document rasterized", zap.Int("pages", len(pages)))

	transcript, err := a.transcript.ExtractTranscript(ctx, doc.Data, pages)
	if err != nil && !errors.Is(err, ErrEmptyTranscript) {
		log.Warn("transcript extraction failed", zap.Error(err))
		return degradedResult(doc.Filename, err.Error())
	}
	// An empty transcript still goes to the scorer, which records it as
	// insufficient evidence rather than fabricating scores.

	result := a.scorer.ScoreCV(ctx, transcript, criteria, jobDescription, doc.Filename)
	if result.Degraded() {
		log.Warn("document scored degraded", zap.String("reason", result.Error))
	} else {
		log.Info("document scored",
			zap.String("candidate", result.CandidateName),
			zap.Float64("total_score", result.TotalScore),
		)
	}
	return result
}

func degradedResult(filename, reason string) *CVAnalysisResult {
	return &CVAnalysisResult{
		Filename:      filename,
		CandidateName: unknownCandidate,
		Scores:        map[string]CriterionScore{},
		TotalScore:    0.0,
		Error:         reason,
	}
}

var pdfMagic = []byte("%PDF")

func isPDF(filename string, data []byte) bool {
	if bytes.HasPrefix(data, pdfMagic) {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
