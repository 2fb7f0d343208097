package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"warrantyportal/internal/models"
)

// Generator renders downloadable warranty certificates.
type Generator interface {
	Certificate(w *models.Warranty) ([]byte, error)
}

type CertificateGenerator struct {
	// CheckerBaseURL is the public portal address; the QR code embeds
	// <CheckerBaseURL>/warranty-checker?serialNumber=<serial>.
	CheckerBaseURL string
}

func NewCertificateGenerator(checkerBaseURL string) *CertificateGenerator {
	return &CertificateGenerator{CheckerBaseURL: checkerBaseURL}
}

func (g *CertificateGenerator) Certificate(w *models.Warranty) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Warranty Certificate %s", w.SerialNumber), false)
	pdf.SetAuthor("Warranty Portal", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "WARRANTY CERTIFICATE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	sub := fmt.Sprintf("Issued %s", time.Now().Format("02 Jan 2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Product")
	g.kvLine(pdf, "Serial Number", w.SerialNumber)
	g.kvLine(pdf, "Product", w.ProductName)
	if w.ModelNumber != "" {
		g.kvLine(pdf, "Model", w.ModelNumber)
	}
	g.kvLine(pdf, "Quantity", fmt.Sprintf("%d", w.Quantity))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Coverage")
	g.kvLine(pdf, "Status", w.Status)
	g.kvLine(pdf, "Warranty Period", fmt.Sprintf("%s to %s",
		w.PurchaseDate.Format("02 Jan 2006"),
		w.ExpiryDate.Format("02 Jan 2006"),
	))
	if w.CustomerName != "" {
		g.kvLine(pdf, "Registered To", w.CustomerName)
	}
	if w.CompanyName != "" {
		g.kvLine(pdf, "Company", w.CompanyName)
	}
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5,
		"Warranty is subject to validation of purchase proof and product authenticity. "+
			"Scan the code below to verify the current status of this certificate.",
		"", "L", false)
	pdf.Ln(4)

	if err := g.embedQR(pdf, w.SerialNumber); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("certificate output: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *CertificateGenerator) embedQR(pdf *gofpdf.Fpdf, serial string) error {
	target := fmt.Sprintf("%s/warranty-checker?serialNumber=%s", g.CheckerBaseURL, serial)
	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("certificate qr: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("checker-qr", opts, bytes.NewReader(png))
	x := (210.0 - 40.0) / 2 // centered on A4
	pdf.ImageOptions("checker-qr", x, pdf.GetY(), 40, 40, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 42)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, target, "", 1, "C", false, 0, "")
	return nil
}

func (g *CertificateGenerator) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(20, y, 190, y)
	pdf.SetXY(x, y+2)
}

func (g *CertificateGenerator) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *CertificateGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(55, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}
