package infra

// pdf.go — Catalog export rendering using go-pdf/fpdf.
// Produces an A4 document with one section per brand and the category
// hierarchy indented beneath it, mirroring the explorer sidebar.
// The output file is saved to storagePath/catalog_{timestamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shopcat/internal/explorer"

	"github.com/go-pdf/fpdf"
)

const maxExportDepth = 12

// GenerateCatalogPDF renders the brand/category tree to a PDF file.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateCatalogPDF(tree []explorer.TreeNode, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("catalog_%s.pdf", time.Now().UTC().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Catalog Structure", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Brand sections ────────────────────────────────────────────────────────
	for _, brand := range tree {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentW, 7, nodeLabel(brand), "", 1, "L", false, 0, "")
		pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
		pdf.Ln(1)

		for _, child := range brand.Children {
			renderCategoryRows(pdf, child, 1, contentW)
		}
		pdf.Ln(3)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func renderCategoryRows(pdf *fpdf.Fpdf, node explorer.TreeNode, depth int, contentW float64) {
	// Cycle guard already ran at build time; the depth cap only protects
	// against pathological page counts.
	if depth > maxExportDepth {
		return
	}

	indent := float64(depth) * 6
	size := 10.0
	if depth > 1 {
		size = 9
	}
	pdf.SetFont("Helvetica", "", size)
	pdf.CellFormat(indent, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW-indent, 5, nodeLabel(node), "", 1, "L", false, 0, "")

	for _, child := range node.Children {
		renderCategoryRows(pdf, child, depth+1, contentW)
	}
}

func nodeLabel(node explorer.TreeNode) string {
	if node.NameAr != nil && *node.NameAr != "" {
		return fmt.Sprintf("%s  (%s)", node.Name, *node.NameAr)
	}
	return node.Name
}
