package services

import (
	"context"
	"fmt"
	"sync/atomic"
)

// fakeLLM lets each test script the gateway's behavior. Counters are atomic
// because the transcript extractor fans calls out across goroutines.
type fakeLLM struct {
	completeText   func(ctx context.Context, messages []Message) (string, error)
	completeVision func(ctx context.Context, messages []Message, images []ImageInput) (string, error)
	textCalls      atomic.Int32
	visionCalls    atomic.Int32
}

func (f *fakeLLM) CompleteText(ctx context.Context, messages []Message) (string, error) {
	f.textCalls.Add(1)
	if f.completeText == nil {
		return "", fmt.Errorf("unexpected CompleteText call")
	}
	return f.completeText(ctx, messages)
}

func (f *fakeLLM) CompleteVision(ctx context.Context, messages []Message, images []ImageInput) (string, error) {
	f.visionCalls.Add(1)
	if f.completeVision == nil {
		return "", fmt.Errorf("unexpected CompleteVision call")
	}
	return f.completeVision(ctx, messages, images)
}

// fakeRasterizer returns scripted pages or errors per document payload.
type fakeRasterizer struct {
	rasterize func(pdfBytes []byte) ([]PageImage, error)
}

func (f *fakeRasterizer) RasterizePDF(pdfBytes []byte) ([]PageImage, error) {
	return f.rasterize(pdfBytes)
}

// fakeTranscript returns a scripted transcript for any document.
type fakeTranscript struct {
	extract func(ctx context.Context, pdfBytes []byte, pages []PageImage) (*DocumentTranscript, error)
}

func (f *fakeTranscript) ExtractTranscript(ctx context.Context, pdfBytes []byte, pages []PageImage) (*DocumentTranscript, error) {
	return f.extract(ctx, pdfBytes, pages)
}
