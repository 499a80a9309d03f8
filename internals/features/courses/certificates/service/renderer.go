package service

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/jung-kurt/gofpdf"
)

type CertificateTemplateParams struct {
	UserName    string
	CourseTitle string
	IssuedAt    time.Time
}

// Renderer adalah kolaborator dokumen: bikin PDF sertifikat dan
// rasterisasi halaman pertamanya untuk preview.
type Renderer interface {
	RenderCertificatePDF(p CertificateTemplateParams) ([]byte, error)
	RasterizeFirstPage(pdfBytes []byte, dpi int) (image.Image, error)
}

// PDFRenderer: implementasi default (gofpdf + mupdf via go-fitz).
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (PDFRenderer) RenderCertificatePDF(p CertificateTemplateParams) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Sertifikat Penyelesaian Kursus", true)
	pdf.AddPage()

	pdf.SetDrawColor(30, 64, 124)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, 281, 194, "D")

	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetY(42)
	pdf.CellFormat(0, 14, "SERTIFIKAT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "diberikan kepada", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetY(78)
	pdf.CellFormat(0, 12, p.UserName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetY(100)
	pdf.CellFormat(0, 9, "atas penyelesaian kursus", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 11, p.CourseTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetY(150)
	pdf.CellFormat(0, 8, p.IssuedAt.Format("02 January 2006"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (PDFRenderer) RasterizeFirstPage(pdfBytes []byte, dpi int) (image.Image, error) {
	doc, err := fitz.NewFromMemory(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return nil, fmt.Errorf("pdf tanpa halaman")
	}
	img, err := doc.ImageDPI(0, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rasterize page 0: %w", err)
	}
	return img, nil
}
