package xml

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doccompare/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestCompare(t *testing.T) {
	t.Run("identical files", func(t *testing.T) {
		dir := t.TempDir()
		content := "<root>\n  <item>a</item>\n  <item>b</item>\n</root>\n"
		fileA := writeFile(t, dir, "a.xml", content)
		fileB := writeFile(t, dir, "b.xml", content)

		res, err := NewComparator(nil).Compare(fileA, fileB)
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		if !res.Identical {
			t.Error("identical files reported as different")
		}
		if len(res.UniqueToA) != 0 || len(res.UniqueToB) != 0 {
			t.Errorf("unique lines for identical files: %v / %v", res.UniqueToA, res.UniqueToB)
		}
		if res.TotalLinesA != 4 || res.TotalLinesB != 4 {
			t.Errorf("total lines = (%d, %d), want (4, 4)", res.TotalLinesA, res.TotalLinesB)
		}
	})

	t.Run("differing lines reported with their positions", func(t *testing.T) {
		dir := t.TempDir()
		// A carries "A" at line 3; B lacks it and carries "B" at line 5.
		fileA := writeFile(t, dir, "a.xml",
			"<root>\n<shared/>\n<value>A</value>\n</root>\n")
		fileB := writeFile(t, dir, "b.xml",
			"<root>\n<shared/>\n<other/>\n</root>\n<value>B</value>\n")

		res, err := NewComparator(nil).Compare(fileA, fileB)
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		if res.Identical {
			t.Error("differing files reported identical")
		}
		if len(res.UniqueToA) != 1 || res.UniqueToA[0].Num != 3 || res.UniqueToA[0].Content != "<value>A</value>" {
			t.Errorf("UniqueToA = %v, want line 3 <value>A</value>", res.UniqueToA)
		}
		foundB := false
		for _, line := range res.UniqueToB {
			if line.Content == "<value>B</value>" {
				foundB = true
				if line.Num != 5 {
					t.Errorf("line B reported at %d, want 5", line.Num)
				}
			}
		}
		if !foundB {
			t.Errorf("UniqueToB = %v, want <value>B</value> present", res.UniqueToB)
		}
	})

	t.Run("reordering is not a difference", func(t *testing.T) {
		dir := t.TempDir()
		fileA := writeFile(t, dir, "a.xml", "<x/>\n<y/>\n<z/>\n")
		fileB := writeFile(t, dir, "b.xml", "<z/>\n<x/>\n<y/>\n")

		res, err := NewComparator(nil).Compare(fileA, fileB)
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		if !res.Identical {
			t.Error("reordered files reported as different")
		}
	})

	t.Run("excluded differences are invisible", func(t *testing.T) {
		dir := t.TempDir()
		fileA := writeFile(t, dir, "a.xml",
			"<doc>\n<timestamp>2026-01-15</timestamp>\n<body>same</body>\n</doc>\n")
		fileB := writeFile(t, dir, "b.xml",
			"<doc>\n<timestamp>2026-01-16</timestamp>\n<body>same</body>\n</doc>\n")

		res, err := NewComparator([]string{"timestamp"}).Compare(fileA, fileB)
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		if !res.Identical {
			t.Errorf("timestamp-only difference survived exclusion: %v / %v",
				res.UniqueToA, res.UniqueToB)
		}
		// Totals count raw lines, before filtering.
		if res.TotalLinesA != 4 {
			t.Errorf("TotalLinesA = %d, want 4", res.TotalLinesA)
		}
	})

	t.Run("unreadable file fails the pair", func(t *testing.T) {
		dir := t.TempDir()
		fileA := writeFile(t, dir, "a.xml", "<x/>\n")

		_, err := NewComparator(nil).Compare(fileA, filepath.Join(dir, "missing.xml"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		var appErr *types.AppError
		if !errors.As(err, &appErr) || appErr.Code != types.ErrFilesystem {
			t.Errorf("error = %v, want AppError with ErrFilesystem", err)
		}
	})
}

func TestReadNumberedLines(t *testing.T) {
	t.Run("lines are trimmed and numbered from one", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "f.xml", "  <a/>  \n\t<b/>\n")

		lines, err := ReadNumberedLines(path)
		if err != nil {
			t.Fatalf("ReadNumberedLines: %v", err)
		}
		if len(lines) != 2 {
			t.Fatalf("got %d lines, want 2", len(lines))
		}
		if lines[0].Num != 1 || lines[0].Content != "<a/>" {
			t.Errorf("line 1 = %+v, want trimmed <a/>", lines[0])
		}
		if lines[1].Num != 2 || lines[1].Content != "<b/>" {
			t.Errorf("line 2 = %+v, want trimmed <b/>", lines[1])
		}
	})

	t.Run("utf8 BOM is stripped", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "bom.xml", "\xef\xbb\xbf<a/>\n")

		lines, err := ReadNumberedLines(path)
		if err != nil {
			t.Fatalf("ReadNumberedLines: %v", err)
		}
		if len(lines) != 1 || lines[0].Content != "<a/>" {
			t.Errorf("lines = %v, want single <a/> without BOM", lines)
		}
	})

	t.Run("invalid utf8 decodes leniently", func(t *testing.T) {
		dir := t.TempDir()
		// Invalid byte sequence; both sides get the same replacement
		// characters, so the pair still compares cleanly.
		raw := []byte("<a>\xff\xfe\x80</a>\n")
		pathA := filepath.Join(dir, "a.xml")
		pathB := filepath.Join(dir, "b.xml")
		for _, path := range []string{pathA, pathB} {
			if err := os.WriteFile(path, raw, 0644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
		}

		res, err := NewComparator(nil).Compare(pathA, pathB)
		if err != nil {
			t.Fatalf("Compare on invalid utf8: %v", err)
		}
		if !res.Identical {
			t.Errorf("identically malformed files reported different: %v / %v",
				res.UniqueToA, res.UniqueToB)
		}
	})

	t.Run("utf16 little endian decodes", func(t *testing.T) {
		dir := t.TempDir()
		// "<a/>\n" as UTF-16LE with BOM.
		raw := []byte{0xff, 0xfe, '<', 0, 'a', 0, '/', 0, '>', 0, '\n', 0}
		path := filepath.Join(dir, "utf16.xml")
		if err := os.WriteFile(path, raw, 0644); err != nil {
			t.Fatalf("writing utf16 fixture: %v", err)
		}

		lines, err := ReadNumberedLines(path)
		if err != nil {
			t.Fatalf("ReadNumberedLines: %v", err)
		}
		if len(lines) != 1 || lines[0].Content != "<a/>" {
			t.Errorf("lines = %v, want single <a/>", lines)
		}
	})
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	res := &types.XMLResult{
		FileA:       filepath.Join(dir, "a.xml"),
		FileB:       filepath.Join(dir, "b.xml"),
		Identical:   false,
		TotalLinesA: 3,
		TotalLinesB: 4,
		UniqueToA:   []types.NumberedLine{{Num: 3, Content: "<value>A</value>"}},
		UniqueToB:   []types.NumberedLine{{Num: 5, Content: "<value>B</value>"}},
	}

	path, err := WriteReport(dir, res)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if filepath.Base(path) != "xml_comparison_a.xml_vs_b.xml.txt" {
		t.Errorf("report name = %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	report := string(data)

	for _, want := range []string{
		"Files are identical: false",
		"Distinctive lines in File 1:",
		"  Line 3: <value>A</value>",
		"Distinctive lines in File 2:",
		"  Line 5: <value>B</value>",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
