package infra

// pdf.go — purchase-order PDF generation using go-pdf/fpdf.
// The document sent to the supplier carries the order header, the line table
// and the total. Output file: storagePath/orden_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateOrdenPDF renders a purchase order as an A4 document and returns the
// absolute path to the generated file.
func GenerateOrdenPDF(orden *model.OrdenCompra, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orden_%s.pdf", orden.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Orden de Compra", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("N° %s", orden.ID), "", 1, "L", false, 0, "")
	if orden.Proveedor != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Proveedor: %s", orden.Proveedor.RazonSocial), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Fecha de orden: %s", orden.FechaOrden.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Entrega solicitada: %s", orden.FechaEntrega.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Line table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.50 // product
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.18 // unit cost
	col4 := contentW * 0.18 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cantidad", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Costo unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range orden.Detalles {
		nombre := d.ProductoID.String()
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if len(nombre) > 45 {
			nombre = nombre[:44] + "…"
		}
		subtotal := d.CostoUnidad.Mul(decimal.NewFromInt(int64(d.Cantidad)))
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+d.CostoUnidad.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+orden.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
