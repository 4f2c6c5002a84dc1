package generator

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
)

// renderEmailPDF renders the email as an A4 portrait document with the
// document reference barcode in the footer.
func renderEmailPDF(form EmailForm, docRef string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Email", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "From: "+form.From, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "To: "+form.To, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+time.Now().Format("02/01/2006"), "", 1, "L", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, "Subject: "+form.Subject, "", "L", false)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, form.Greeting, "", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 6, form.Summary, "", "L", false)
	pdf.Ln(6)
	for _, line := range strings.Split(form.Closing, "\n") {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	if err := addDocRefFooter(pdf, docRef); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// renderApplicationPDF renders the application letter.
func renderApplicationPDF(form ApplicationForm, docRef string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Application", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 11)
	if strings.TrimSpace(form.Date) != "" {
		pdf.CellFormat(0, 6, form.Date, "", 1, "R", false, 0, "")
		pdf.Ln(2)
	}

	pdf.CellFormat(0, 6, "To,", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, form.To, "", 1, "L", false, 0, "")
	if strings.TrimSpace(form.ToOrganization) != "" {
		pdf.CellFormat(0, 6, form.ToOrganization, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 7, "Subject: "+form.Subject, "", "L", false)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 11)
	if strings.TrimSpace(form.Respected) != "" {
		pdf.CellFormat(0, 6, form.Respected, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	pdf.MultiCell(0, 6, form.Body, "", "L", false)

	pdf.Ln(6)
	for _, line := range strings.Split(form.Closing, "\n") {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	signature := form.Name
	if strings.TrimSpace(form.ClassOrPosition) != "" {
		signature += ", " + form.ClassOrPosition
	}
	if strings.TrimSpace(form.Organization) != "" {
		signature += ", " + form.Organization
	}
	pdf.CellFormat(0, 6, signature, "", 1, "L", false, 0, "")

	if err := addDocRefFooter(pdf, docRef); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// addDocRefFooter prints a Code128 of the document reference at the page
// bottom so a printed copy can be traced back to its history entry.
func addDocRefFooter(pdf *gofpdf.Fpdf, docRef string) error {
	if strings.TrimSpace(docRef) == "" {
		return nil
	}
	barcodePNG, err := renderCode128PNG(docRef, 800, 160)
	if err != nil {
		return err
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := "doc-ref-" + docRef
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))

	pageW, pageH := pdf.GetPageSize()
	imgW := 60.0
	imgH := 12.0
	x := (pageW - imgW) / 2
	y := pageH - 28
	pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")

	pdf.SetY(y + imgH + 1)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, docRef, "", 1, "C", false, 0, "")
	return nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
