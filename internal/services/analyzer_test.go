package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedScorer maps transcript text to a canned result.
type scriptedScorer struct {
	results map[string]*CVAnalysisResult
}

func (s *scriptedScorer) ScoreCV(_ context.Context, transcript *DocumentTranscript, criteria []CriterionWeight, _ string, filename string) *CVAnalysisResult {
	if transcript == nil || transcript.Empty() {
		return degradedResult(filename, "insufficient evidence: document transcript is empty")
	}
	if result, ok := s.results[transcript.Text]; ok {
		out := *result
		out.Filename = filename
		return &out
	}
	return degradedResult(filename, "unscripted transcript")
}

func pdfDoc(filename, marker string) UploadedDocument {
	return UploadedDocument{
		Filename: filename,
		Data:     []byte("%PDF-1.4\n" + marker),
	}
}

func passthroughPipeline(failMarker string) (RasterizerService, TranscriptService) {
	rasterizer := &fakeRasterizer{
		rasterize: func(pdfBytes []byte) ([]PageImage, error) {
			if failMarker != "" && string(pdfBytes) == "%PDF-1.4\n"+failMarker {
				return nil, fmt.Errorf("%w: damaged xref table", ErrRasterization)
			}
			return []PageImage{{PageIndex: 0, MIMEType: "image/jpeg", Data: pdfBytes}}, nil
		},
	}
	transcript := &fakeTranscript{
		extract: func(_ context.Context, pdfBytes []byte, _ []PageImage) (*DocumentTranscript, error) {
			return &DocumentTranscript{Text: string(pdfBytes), PageCount: 1}, nil
		},
	}
	return rasterizer, transcript
}

func TestAnalyzeBatchRanksByScore(t *testing.T) {
	docA := pdfDoc("a.pdf", "alice")
	docB := pdfDoc("b.pdf", "bob")

	scorer := &scriptedScorer{results: map[string]*CVAnalysisResult{
		string(docA.Data): {CandidateName: "Alice", TotalScore: 6.0, Scores: map[string]CriterionScore{}},
		string(docB.Data): {CandidateName: "Bob", TotalScore: 8.5, Scores: map[string]CriterionScore{}},
	}}
	rasterizer, transcript := passthroughPipeline("")
	analyzer := NewAnalyzerService(rasterizer, transcript, scorer, 2, nil)

	results := analyzer.AnalyzeBatch(context.Background(), []UploadedDocument{docA, docB}, nil, "job")

	require.Len(t, results, 2)
	assert.Equal(t, "Bob", results[0].CandidateName)
	assert.Equal(t, "Alice", results[1].CandidateName)
}

func TestAnalyzeBatchIsolatesDocumentFailure(t *testing.T) {
	doc1 := pdfDoc("one.pdf", "one")
	doc2 := pdfDoc("two.pdf", "broken")
	doc3 := pdfDoc("three.pdf", "three")

	scorer := &scriptedScorer{results: map[string]*CVAnalysisResult{
		string(doc1.Data): {CandidateName: "First", TotalScore: 7.0, Scores: map[string]CriterionScore{"Grammar": {Score: 7.0}}},
		string(doc3.Data): {CandidateName: "Third", TotalScore: 5.0, Scores: map[string]CriterionScore{"Grammar": {Score: 5.0}}},
	}}
	rasterizer, transcript := passthroughPipeline("broken")
	analyzer := NewAnalyzerService(rasterizer, transcript, scorer, 2, nil)

	results := analyzer.AnalyzeBatch(context.Background(), []UploadedDocument{doc1, doc2, doc3}, nil, "job")

	// One entry per submitted document, no exception escapes the batch.
	require.Len(t, results, 3)

	byFile := make(map[string]*CVAnalysisResult)
	for _, r := range results {
		byFile[r.Filename] = r
	}
	assert.False(t, byFile["one.pdf"].Degraded())
	assert.NotEmpty(t, byFile["one.pdf"].Scores)
	assert.True(t, byFile["two.pdf"].Degraded())
	assert.Contains(t, byFile["two.pdf"].Error, "rasterization failed")
	assert.Empty(t, byFile["two.pdf"].Scores)
	assert.False(t, byFile["three.pdf"].Degraded())

	// Degraded zero-score entries sink to the bottom.
	assert.Equal(t, "two.pdf", results[2].Filename)
}

func TestAnalyzeBatchStableOnTies(t *testing.T) {
	docA := pdfDoc("first.pdf", "a")
	docB := pdfDoc("second.pdf", "b")

	scorer := &scriptedScorer{results: map[string]*CVAnalysisResult{
		string(docA.Data): {CandidateName: "A", TotalScore: 7.5, Scores: map[string]CriterionScore{}},
		string(docB.Data): {CandidateName: "B", TotalScore: 7.5, Scores: map[string]CriterionScore{}},
	}}
	rasterizer, transcript := passthroughPipeline("")
	analyzer := NewAnalyzerService(rasterizer, transcript, scorer, 2, nil)

	results := analyzer.AnalyzeBatch(context.Background(), []UploadedDocument{docA, docB}, nil, "job")

	// Equal composites keep submission order.
	require.Len(t, results, 2)
	assert.Equal(t, "first.pdf", results[0].Filename)
	assert.Equal(t, "second.pdf", results[1].Filename)
}

func TestAnalyzeBatchRejectsNonPDF(t *testing.T) {
	doc := UploadedDocument{Filename: "resume.docx", Data: []byte("PK\x03\x04 word things")}

	scorer := &scriptedScorer{results: map[string]*CVAnalysisResult{}}
	rasterizer, transcript := passthroughPipeline("")
	analyzer := NewAnalyzerService(rasterizer, transcript, scorer, 2, nil)

	results := analyzer.AnalyzeBatch(context.Background(), []UploadedDocument{doc}, nil, "job")

	require.Len(t, results, 1)
	assert.True(t, results[0].Degraded())
	assert.Contains(t, results[0].Error, "unsupported document format")
}

func TestAnalyzeBatchGroupsAreSequential(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	// Track concurrency through the rasterizer, which every document
	// passes through before any model call.
	rasterizer := &fakeRasterizer{
		rasterize: func(pdfBytes []byte) ([]PageImage, error) {
			current := inFlight.Add(1)
			for {
				seen := maxInFlight.Load()
				if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
			return []PageImage{{PageIndex: 0, Data: pdfBytes}}, nil
		},
	}
	transcript := &fakeTranscript{
		extract: func(_ context.Context, pdfBytes []byte, _ []PageImage) (*DocumentTranscript, error) {
			return &DocumentTranscript{Text: string(pdfBytes), PageCount: 1}, nil
		},
	}
	scorer := &scriptedScorer{results: map[string]*CVAnalysisResult{}}
	analyzer := NewAnalyzerService(rasterizer, transcript, scorer, 2, nil)

	docs := []UploadedDocument{
		pdfDoc("1.pdf", "1"), pdfDoc("2.pdf", "2"),
		pdfDoc("3.pdf", "3"), pdfDoc("4.pdf", "4"), pdfDoc("5.pdf", "5"),
	}
	results := analyzer.AnalyzeBatch(context.Background(), docs, nil, "job")

	assert.Len(t, results, 5)
	assert.LessOrEqual(t, maxInFlight.Load(), int32(2), "no more than one group in flight")
}
