// Package xml compares pairs of XML files line by line.
//
// There is no schema or DOM awareness here: files are read as numbered
// lines, exclusion-filtered, and diffed by content set. That is the whole
// contract — tolerant of reordering, strict about content.
package xml

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"doccompare/internal/diff"
	"doccompare/internal/types"
)

// Comparator compares same-folder XML file pairs using a fixed exclusion
// list.
type Comparator struct {
	exclusions []string
}

// NewComparator creates a Comparator with the given exclusion substrings.
func NewComparator(exclusions []string) *Comparator {
	return &Comparator{exclusions: exclusions}
}

// Compare reads both files, applies the exclusion filter, and reports the
// lines unique to each side. An unreadable file fails the whole pair with
// a types.ErrFilesystem; the caller decides whether the batch continues.
func (c *Comparator) Compare(fileA, fileB string) (*types.XMLResult, error) {
	linesA, err := ReadNumberedLines(fileA)
	if err != nil {
		return nil, err
	}
	linesB, err := ReadNumberedLines(fileB)
	if err != nil {
		return nil, err
	}

	filteredA := diff.Filter(linesA, c.exclusions)
	filteredB := diff.Filter(linesB, c.exclusions)
	uniqueA, uniqueB := diff.Unique(filteredA, filteredB)

	return &types.XMLResult{
		FileA:       fileA,
		FileB:       fileB,
		Identical:   len(uniqueA) == 0 && len(uniqueB) == 0,
		TotalLinesA: len(linesA),
		TotalLinesB: len(linesB),
		UniqueToA:   uniqueA,
		UniqueToB:   uniqueB,
	}, nil
}

// ReadNumberedLines reads a whole file as trimmed, 1-based numbered lines.
// UTF-8 BOMs and UTF-16 encodings are decoded transparently; exported
// XML frequently carries a BOM.
func ReadNumberedLines(path string) ([]types.NumberedLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to read file %s", path), err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to decode file %s", path), err)
	}

	var lines []types.NumberedLine
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	num := 0
	for scanner.Scan() {
		num++
		lines = append(lines, types.NumberedLine{
			Num:     num,
			Content: strings.TrimSpace(scanner.Text()),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to scan file %s", path), err)
	}
	return lines, nil
}

// decodeText decodes file bytes as UTF-8, honoring a UTF-8 or UTF-16 BOM
// when present.
func decodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
