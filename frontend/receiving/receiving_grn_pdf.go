package receiving

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
)

// renderGRNPDF produces the goods-received note for one receiving:
// header block, a code128 barcode of the reference number, and a line
// table.
func renderGRNPDF(data GRNData) ([]byte, error) {
	return renderGRNPDFAt(data, time.Now())
}

func renderGRNPDFAt(data GRNData, printedAt time.Time) ([]byte, error) {
	barcodeValue := strings.TrimSpace(data.ReferenceNo)
	if barcodeValue == "" {
		barcodeValue = fmt.Sprintf("GRN%08d", data.HeaderID)
	}
	barcodePNG, err := renderCode128PNG(barcodeValue, 1200, 220)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Goods Received Note", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "GOODS RECEIVED NOTE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Customer: "+data.Customer, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Reference: "+data.ReferenceNo, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Warehouse: "+data.Warehouse, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Receiving Date: "+data.ReceivingDate, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Printed: "+printedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := fmt.Sprintf("grn-barcode-%d", data.HeaderID)
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	pageW, _ := pdf.GetPageSize()
	imgW := 120.0
	imgH := 24.0
	x := (pageW - imgW) / 2
	y := pdf.GetY() + 4
	pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")
	pdf.SetY(y + imgH + 2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, barcodeValue, "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	colWidths := []float64{35, 55, 30, 35, 20, 15}
	headers := []string{"Item", "Description", "Location", "Batch", "Qty", "Status"}
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var total int64
	for _, line := range data.Lines {
		cells := []string{
			line.ItemCode,
			line.ItemName,
			line.Location,
			line.BatchNo,
			fmt.Sprintf("%d", line.Quantity),
			line.Status,
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		total += line.Quantity
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[4], 8, fmt.Sprintf("%d", total), "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[5], 8, "", "1", 1, "L", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
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
