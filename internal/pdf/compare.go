package pdf

import (
	"path/filepath"
	"sort"
	"strings"

	"doccompare/internal/diff"
	"doccompare/internal/types"
)

// Metadata field names as they appear in reports. Only these two document
// level fields are compared; everything else about a PDF is content.
const (
	MetaPageCount = "Page Count"
	MetaFileSize  = "File Size (bytes)"
)

// Comparator compares same-folder PDF file pairs.
type Comparator struct{}

// NewComparator creates a PDF Comparator.
func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare extracts both documents, then diffs their per-page text, their
// extracted images, and their metadata. Image artifacts land in
// per-document subfolders of outputFolder. Any extraction failure fails
// the pair before a report is written.
func (c *Comparator) Compare(fileA, fileB, outputFolder string) (*types.PDFResult, error) {
	docA, err := ExtractDocument(fileA, filepath.Join(outputFolder, ImageDirName(fileA)))
	if err != nil {
		return nil, err
	}
	docB, err := ExtractDocument(fileB, filepath.Join(outputFolder, ImageDirName(fileB)))
	if err != nil {
		return nil, err
	}
	return compareDocuments(docA, docB), nil
}

// compareDocuments assembles the full comparison result for two extracted
// documents.
func compareDocuments(a, b *Document) *types.PDFResult {
	uniqueTextA, uniqueTextB := CompareText(a, b)
	uniqueImagesA, uniqueImagesB, mismatched := CompareImages(a, b)

	return &types.PDFResult{
		FileA:            a.Path,
		FileB:            b.Path,
		UniqueTextA:      uniqueTextA,
		UniqueTextB:      uniqueTextB,
		UniqueImagesA:    uniqueImagesA,
		UniqueImagesB:    uniqueImagesB,
		MismatchedImages: mismatched,
		MetadataDiff:     CompareMetadata(a, b),
	}
}

// CompareText diffs normalized page text across the union of both page
// sets. A page absent from one document compares against empty text, so
// every line of the present side is unique. Pages whose unique text is
// blank are omitted from the result.
func CompareText(a, b *Document) (uniqueA, uniqueB map[int]string) {
	uniqueA = make(map[int]string)
	uniqueB = make(map[int]string)

	for _, page := range unionTextPages(a.Text, b.Text) {
		textA := a.Text[page]
		textB := b.Text[page]

		if onlyA := diff.UniqueLines(textA, textB); strings.TrimSpace(onlyA) != "" {
			uniqueA[page] = onlyA
		}
		if onlyB := diff.UniqueLines(textB, textA); strings.TrimSpace(onlyB) != "" {
			uniqueB[page] = onlyB
		}
	}
	return uniqueA, uniqueB
}

// CompareMetadata reports only the metadata fields whose values differ;
// equal fields are omitted entirely.
func CompareMetadata(a, b *Document) map[string]types.MetadataDelta {
	differences := make(map[string]types.MetadataDelta)
	if a.PageCount != b.PageCount {
		differences[MetaPageCount] = types.MetadataDelta{
			ValueA: int64(a.PageCount),
			ValueB: int64(b.PageCount),
		}
	}
	if a.FileSize != b.FileSize {
		differences[MetaFileSize] = types.MetadataDelta{
			ValueA: a.FileSize,
			ValueB: b.FileSize,
		}
	}
	return differences
}

func unionTextPages(a, b map[int]string) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	for page := range a {
		seen[page] = struct{}{}
	}
	for page := range b {
		seen[page] = struct{}{}
	}
	pages := make([]int, 0, len(seen))
	for page := range seen {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}
