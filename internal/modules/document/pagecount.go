package document

import "bytes"

// PageCounter detects the number of pages in an uploaded file. Implementations
// must never fail the upload: when detection is impossible the count defaults
// to 1 and the customer corrects it in the cart.
type PageCounter interface {
	CountPages(data []byte) int
}

// pdfPageCounter counts page objects in a PDF body. It is deliberately
// minimal: it handles the plain (non-compressed object stream) layout that
// print-ready exports use, and falls back to 1 for anything else.
type pdfPageCounter struct{}

// NewPDFPageCounter returns the default page counter.
func NewPDFPageCounter() PageCounter { return pdfPageCounter{} }

var (
	pdfHeader    = []byte("%PDF-")
	pageObject   = []byte("/Type /Page")
	pagesObject  = []byte("/Type /Pages")
	pageCompact  = []byte("/Type/Page")
	pagesCompact = []byte("/Type/Pages")
)

func (pdfPageCounter) CountPages(data []byte) int {
	if !bytes.HasPrefix(data, pdfHeader) {
		return 1
	}
	// "/Type /Page" also matches every "/Type /Pages" tree node, so subtract those.
	n := bytes.Count(data, pageObject) - bytes.Count(data, pagesObject)
	n += bytes.Count(data, pageCompact) - bytes.Count(data, pagesCompact)
	if n < 1 {
		return 1
	}
	return n
}
