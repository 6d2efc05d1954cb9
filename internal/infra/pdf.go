package infra

// pdf.go renders the sale receipt with go-pdf/fpdf. The page is a narrow
// receipt whose height grows with the number of lines, and the document is
// written straight to w (usually the HTTP response).

import (
	"fmt"
	"io"
	"unicode/utf8"

	"mimbres/internal/dto"

	"github.com/go-pdf/fpdf"
)

const (
	reciboAncho  = 80.0
	reciboMargen = 5.0
)

// ComprobanteVentaPDF writes a PDF receipt for v to w.
func ComprobanteVentaPDF(w io.Writer, negocio string, v dto.VentaDetalleResponse) error {
	alto := 90.0 + 5.0*float64(len(v.Items))
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: reciboAncho, Ht: alto},
	})
	pdf.SetMargins(reciboMargen, reciboMargen, reciboMargen)
	pdf.SetAutoPageBreak(true, reciboMargen)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	contentW := reciboAncho - 2*reciboMargen

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(negocio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr("Comprobante de venta"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venta #%d", v.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, v.FechaVenta.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, tr("Cliente: "+v.ClienteNombre), "", 1, "L", false, 0, "")
	if v.Vendedor != "" {
		pdf.CellFormat(contentW, 4, tr("Atendió: "+v.Vendedor), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(reciboMargen, pdf.GetY(), reciboAncho-reciboMargen, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.50
	col2 := contentW * 0.15
	col3 := contentW * 0.35

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, it := range v.Items {
		pdf.CellFormat(col1, 5, tr(truncar(it.Nombre, 26)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", it.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+it.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(reciboMargen, pdf.GetY(), reciboAncho-reciboMargen, pdf.GetY())
	pdf.Ln(2)

	if !v.Descuento.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Subtotal:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+v.Bruto.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2, 5, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-$"+v.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+v.MontoTotal.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return nil
}

func truncar(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
