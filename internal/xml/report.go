package xml

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doccompare/internal/types"
)

// ReportFileName returns the report artifact name for a pair.
func ReportFileName(fileA, fileB string) string {
	return fmt.Sprintf("xml_comparison_%s_vs_%s.txt",
		filepath.Base(fileA), filepath.Base(fileB))
}

// WriteReport renders the comparison result as a text report inside folder
// and returns the report path. Writing is the last step of a comparison, so
// a pair that failed earlier leaves no partial report behind.
func WriteReport(folder string, res *types.XMLResult) (string, error) {
	path := filepath.Join(folder, ReportFileName(res.FileA, res.FileB))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Files are identical: %t\n\n", res.Identical)
	fmt.Fprintf(&sb, "Total lines in File 1 %s: %d\n", res.FileA, res.TotalLinesA)
	fmt.Fprintf(&sb, "Total lines in File 2 %s: %d\n\n", res.FileB, res.TotalLinesB)

	sb.WriteString("Distinctive lines in File 1:\n")
	for _, line := range res.UniqueToA {
		fmt.Fprintf(&sb, "  Line %d: %s\n", line.Num, line.Content)
	}
	sb.WriteString("\nDistinctive lines in File 2:\n")
	for _, line := range res.UniqueToB {
		fmt.Fprintf(&sb, "  Line %d: %s\n", line.Num, line.Content)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to write report %s", path), err)
	}
	return path, nil
}
