package services

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// pageDelimiter separates per-page Markdown in a document transcript.
const pageDelimiter = "\n\n---\n\n"

// DocumentTranscript is the page-ordered Markdown reconstruction of one
// document. FailedPages lists pages whose extraction was skipped.
type DocumentTranscript struct {
	Text        string
	PageCount   int
	FailedPages []int
}

// Empty reports whether the transcript carries no usable text.
func (t *DocumentTranscript) Empty() bool {
	return strings.TrimSpace(t.Text) == ""
}

type TranscriptService interface {
	// ExtractTranscript drives the vision model over every page image and
	// reassembles the per-page Markdown in page order. A failed page is
	// skipped; if all pages fail it falls back to the PDF's embedded text
	// and, when that too is empty, returns ErrEmptyTranscript alongside
	// the (empty) transcript.
	ExtractTranscript(ctx context.Context, pdfBytes []byte, pages []PageImage) (*DocumentTranscript, error)
}

type transcriptService struct {
	llm           LLMService
	promptBuilder *PromptBuilder
	concurrency   int
	logger        *zap.Logger
}

func NewTranscriptService(llm LLMService, concurrency int, logger *zap.Logger) TranscriptService {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &transcriptService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		concurrency:   concurrency,
		logger:        logger,
	}
}

// ExtractTranscript implements TranscriptService.
func (t *transcriptService) ExtractTranscript(ctx context.Context, pdfBytes []byte, pages []PageImage) (*DocumentTranscript, error) {
	messages := t.promptBuilder.BuildVisionMessages()

	// Vision calls may finish out of order; reassembly is strictly by
	// page index, never completion order.
	texts := make([]string, len(pages))
	failed := make([]bool, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)
	for _, page := range pages {
		g.Go(func() error {
			text, err := t.llm.CompleteVision(gctx, messages, []ImageInput{{
				MIMEType: page.MIMEType,
				Data:     page.Data,
			}})
			if err != nil {
				t.logger.Warn("page extraction failed, skipping page",
					zap.Int("page", page.PageIndex),
					zap.Error(err),
				)
				failed[page.PageIndex] = true
				return nil
			}
			texts[page.PageIndex] = strings.TrimSpace(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	transcript := &DocumentTranscript{PageCount: len(pages)}
	var parts []string
	for i, text := range texts {
		if failed[i] {
			transcript.FailedPages = append(transcript.FailedPages, i)
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	transcript.Text = strings.Join(parts, pageDelimiter)

	if len(pages) > 0 && len(transcript.FailedPages) == len(pages) {
		// Every vision call failed. Try the PDF's embedded text layer
		// before declaring the document unreadable.
		if fallback := extractEmbeddedText(pdfBytes); fallback != "" {
			t.logger.Warn("all vision calls failed, using embedded pdf text",
				zap.Int("pages", len(pages)))
			transcript.Text = fallback
			return transcript, nil
		}
		return transcript, ErrEmptyTranscript
	}

	return transcript, nil
}

// extractEmbeddedText pulls the native text layer out of a PDF. Best effort:
// any failure yields an empty string.
func extractEmbeddedText(pdfBytes []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}
