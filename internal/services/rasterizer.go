package services

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
)

// PageImage is one rendered PDF page, consumed exactly once by the
// transcript extractor. PageIndex is 0-based and order-significant.
type PageImage struct {
	PageIndex int
	MIMEType  string
	Data      []byte
}

type RasterizerService interface {
	RasterizePDF(pdfBytes []byte) ([]PageImage, error)
}

type rasterizerService struct {
	dpi         float64
	jpegQuality int
}

// NewRasterizerService renders PDF pages at the given DPI. The resolution is
// a process-wide tunable, not a per-call parameter; anything in the
// 150-300 range gives OCR-quality text.
func NewRasterizerService(dpi float64) RasterizerService {
	if dpi <= 0 {
		dpi = 200
	}
	return &rasterizerService{
		dpi:         dpi,
		jpegQuality: 85,
	}
}

// RasterizePDF implements RasterizerService. A PDF that cannot be decoded
// yields no pages and an ErrRasterization; the caller treats that as a
// document-level failure.
func (r *rasterizerService) RasterizePDF(pdfBytes []byte) ([]PageImage, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterization, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrRasterization)
	}

	pages := make([]PageImage, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRasterization, i, err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.jpegQuality}); err != nil {
			return nil, fmt.Errorf("%w: encode page %d: %v", ErrRasterization, i, err)
		}

		pages = append(pages, PageImage{
			PageIndex: i,
			MIMEType:  "image/jpeg",
			Data:      buf.Bytes(),
		})
	}

	return pages, nil
}
