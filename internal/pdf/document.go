// Package pdf extracts comparable content from PDF documents and compares
// pairs of them. Text and page counts come from ledongthuc/pdf, embedded
// images from GoPDF2, and structural validation from pdfcpu; the comparison
// semantics on top of those libraries live here.
package pdf

import (
	"fmt"
	"os"
	"strings"

	ledongthucpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"doccompare/internal/diff"
	"doccompare/internal/logger"
	"doccompare/internal/types"
)

// Document is the comparable view of one PDF: per-page normalized text,
// per-page extracted image artifacts, and the two metadata fields subject
// to comparison.
type Document struct {
	Path      string
	PageCount int
	FileSize  int64
	// Text maps 1-based page numbers to normalized page text. Every page
	// is present, possibly with empty text.
	Text map[int]string
	// Images maps 1-based page numbers to extracted image paths in
	// extraction order. Pages without images are absent from the map,
	// never present with an empty list.
	Images map[int][]string
}

// ExtractDocument reads one PDF and produces its comparable view. Extracted
// images are written under imageDir, named page_<p>_img_<i>.<ext> so reruns
// produce the same artifact paths. Unreadable or structurally invalid files
// fail with types.ErrFilesystem; extraction failures with types.ErrExtract.
func ExtractDocument(path, imageDir string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to access file %s", path), err)
	}

	// Reject corrupt files up front; the extraction libraries degrade
	// less gracefully than pdfcpu's validator.
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("not a valid PDF file: %s", path), err)
	}

	f, reader, err := ledongthucpdf.Open(path)
	if err != nil {
		return nil, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to open PDF file %s", path), err)
	}
	defer f.Close()

	pageCount := reader.NumPage()
	text := make(map[int]string, pageCount)
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text[pageNum] = extractPageText(reader, pageNum, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to read file %s", path), err)
	}
	images, err := extractImages(data, imageDir)
	if err != nil {
		return nil, types.NewAppError(types.ErrExtract,
			fmt.Sprintf("unable to extract images from %s", path), err)
	}

	return &Document{
		Path:      path,
		PageCount: pageCount,
		FileSize:  info.Size(),
		Text:      text,
		Images:    images,
	}, nil
}

// extractPageText pulls plain text from one page and normalizes it. Pages
// the library cannot handle yield empty text rather than failing the
// document; the text comparison then reports against an empty page.
func extractPageText(reader *ledongthucpdf.Reader, pageNum int, path string) string {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		logger.L().WithField("file", path).WithField("page", pageNum).
			Warnf("text extraction failed: %v", err)
		return ""
	}
	return diff.Normalize(strings.TrimSpace(content))
}

// ImageDirName returns the per-document artifact folder name for a source
// file, derived from the filename up to its first dot.
func ImageDirName(docPath string) string {
	base := docPath
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}
	return "images_" + base
}
