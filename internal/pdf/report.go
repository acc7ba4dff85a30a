package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"doccompare/internal/types"
)

// ReportFileName returns the report artifact name for a pair.
func ReportFileName(fileA, fileB string) string {
	return fmt.Sprintf("pdf_comparison_%s_vs_%s.txt",
		filepath.Base(fileA), filepath.Base(fileB))
}

// WriteReport renders the comparison result as a text report inside folder
// and returns the report path. Sections appear in fixed order: text, image,
// metadata differences. Page listings are sorted ascending so reruns
// produce byte-identical reports.
func WriteReport(folder string, res *types.PDFResult) (string, error) {
	path := filepath.Join(folder, ReportFileName(res.FileA, res.FileB))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Comparison result for PDF files:\nFile 1: %s\nFile 2: %s\n\n",
		res.FileA, res.FileB)

	sb.WriteString("=== TEXT DIFFERENCES ===\n")
	sb.WriteString("Unique text in File 1:\n")
	writePageText(&sb, res.UniqueTextA)
	sb.WriteString("\nUnique text in File 2:\n")
	writePageText(&sb, res.UniqueTextB)

	sb.WriteString("\n=== IMAGE DIFFERENCES ===\n")
	sb.WriteString("Unique images in File 1:\n")
	writePageImages(&sb, res.UniqueImagesA)
	sb.WriteString("\nUnique images in File 2:\n")
	writePageImages(&sb, res.UniqueImagesB)
	sb.WriteString("\nMismatched Images:\n")
	for _, mismatch := range res.MismatchedImages {
		fmt.Fprintf(&sb, "Page %d:\nFile 1 Image: %s\nFile 2 Image: %s\n\n",
			mismatch.Page, mismatch.ImageA, mismatch.ImageB)
	}

	sb.WriteString("\n=== METADATA DIFFERENCES ===\n")
	for _, field := range []string{MetaPageCount, MetaFileSize} {
		if delta, ok := res.MetadataDiff[field]; ok {
			fmt.Fprintf(&sb, "%s: (%d, %d)\n", field, delta.ValueA, delta.ValueB)
		}
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to write report %s", path), err)
	}
	return path, nil
}

func writePageText(sb *strings.Builder, byPage map[int]string) {
	for _, page := range sortedPages(byPage) {
		fmt.Fprintf(sb, "\n Page %d:\n%s\n", page, byPage[page])
	}
}

func writePageImages(sb *strings.Builder, byPage map[int][]string) {
	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	for _, page := range pages {
		fmt.Fprintf(sb, "Page %d: %s\n", page, strings.Join(byPage[page], ", "))
	}
}

func sortedPages(byPage map[int]string) []int {
	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}
