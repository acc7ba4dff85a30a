// Package runner walks the directory tree and drives pairwise comparison.
//
// Execution is strictly sequential: one folder at a time, one pair at a
// time. Per-pair failures are logged and the batch continues; only startup
// configuration problems abort a run.
package runner

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doccompare/internal/logger"
	"doccompare/internal/pdf"
	"doccompare/internal/types"
	"doccompare/internal/xml"
)

type pairFunc func(fileA, fileB, folder string) error

// Runner holds the per-run collaborators. Construct one per run.
type Runner struct {
	settings *types.Settings
	xmlCmp   *xml.Comparator
	pdfCmp   *pdf.Comparator
	xmlPair  pairFunc
	pdfPair  pairFunc
}

// New creates a Runner for the given settings.
func New(settings *types.Settings) *Runner {
	r := &Runner{
		settings: settings,
		xmlCmp:   xml.NewComparator(settings.Exclusions),
		pdfCmp:   pdf.NewComparator(),
	}
	r.xmlPair = r.compareXMLPair
	r.pdfPair = r.comparePDFPair
	return r
}

// Run compares every same-kind pair folder by folder under the configured
// root and returns the accumulated statistics. The folder list is
// snapshotted before any processing: PDF extraction writes image artifacts
// into new subfolders mid-run, and those are outputs, not input to walk.
// The walk itself failing is the only error returned; individual folder
// and pair failures are logged and skipped.
func (r *Runner) Run() (*types.RunStats, error) {
	start := time.Now()
	stats := &types.RunStats{}

	folders, err := collectFolders(r.settings.RootPath)
	if err != nil {
		stats.Elapsed = time.Since(start)
		return stats, types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("walk failed under %s", r.settings.RootPath), err)
	}
	for _, folder := range folders {
		r.processFolder(folder, stats)
	}
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// collectFolders returns every directory under root, root included, as it
// exists at call time.
func collectFolders(root string) ([]string, error) {
	var folders []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.L().WithField("path", path).Warnf("skipping unreadable entry: %v", err)
			return fs.SkipDir
		}
		if d.IsDir() {
			folders = append(folders, path)
		}
		return nil
	})
	return folders, err
}

// processFolder classifies one folder's immediate files and runs all
// unordered same-kind pairs. Folders holding both XML and PDF files are
// recorded as mixed and skipped entirely: comparing across kinds is an
// operator error in data layout, not something to resolve here.
func (r *Runner) processFolder(folder string, stats *types.RunStats) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		logger.L().WithField("folder", folder).Warnf("unable to list folder: %v", err)
		return
	}

	var xmlFiles, pdfFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		switch {
		case strings.HasSuffix(entry.Name(), ".xml"):
			xmlFiles = append(xmlFiles, path)
		case strings.HasSuffix(entry.Name(), ".pdf"):
			pdfFiles = append(pdfFiles, path)
		default:
			stats.UnsupportedFiles = append(stats.UnsupportedFiles, path)
		}
	}

	if len(xmlFiles) > 0 && len(pdfFiles) > 0 {
		logger.L().WithField("folder", folder).
			Warn("mixed XML and PDF files detected, skipping folder")
		stats.MixedFolders = append(stats.MixedFolders, folder)
		return
	}

	if len(xmlFiles) > 0 {
		logger.L().WithField("folder", folder).WithField("count", len(xmlFiles)).
			Info("processing XML files")
		stats.XMLFilesProcessed += len(xmlFiles)
		r.compareAllPairs(xmlFiles, folder, r.xmlPair)
	}
	if len(pdfFiles) > 0 {
		logger.L().WithField("folder", folder).WithField("count", len(pdfFiles)).
			Info("processing PDF files")
		stats.PDFFilesProcessed += len(pdfFiles)
		r.compareAllPairs(pdfFiles, folder, r.pdfPair)
	}
}

// compareAllPairs invokes compare for every unordered pair of files,
// C(n,2) invocations for n files. A failed pair never aborts the batch.
func (r *Runner) compareAllPairs(files []string, folder string, compare pairFunc) {
	for i := 0; i < len(files); i++ {
		for j := i + 1; j < len(files); j++ {
			if err := compare(files[i], files[j], folder); err != nil {
				logger.L().WithField("fileA", files[i]).WithField("fileB", files[j]).
					Errorf("comparison failed: %v", err)
			}
		}
	}
}

func (r *Runner) compareXMLPair(fileA, fileB, folder string) error {
	result, err := r.xmlCmp.Compare(fileA, fileB)
	if err != nil {
		return err
	}
	reportPath, err := xml.WriteReport(folder, result)
	if err != nil {
		return err
	}
	logger.L().WithField("report", reportPath).Info("XML comparison result saved")
	return nil
}

func (r *Runner) comparePDFPair(fileA, fileB, folder string) error {
	result, err := r.pdfCmp.Compare(fileA, fileB, folder)
	if err != nil {
		return err
	}
	reportPath, err := pdf.WriteReport(folder, result)
	if err != nil {
		return err
	}
	logger.L().WithField("report", reportPath).Info("PDF comparison result saved")
	return nil
}

// WriteSummary prints the end-of-run operator summary.
func WriteSummary(w io.Writer, stats *types.RunStats) {
	fmt.Fprintln(w, "\n--- Summary Report ---")
	fmt.Fprintf(w, "Total XML files processed: %d\n", stats.XMLFilesProcessed)
	fmt.Fprintf(w, "Total PDF files processed: %d\n", stats.PDFFilesProcessed)
	if len(stats.MixedFolders) > 0 {
		fmt.Fprintln(w, "Folders with mixed XML and PDF files (skipped):")
		for _, folder := range stats.MixedFolders {
			fmt.Fprintf(w, "  %s\n", folder)
		}
	}
	if len(stats.UnsupportedFiles) > 0 {
		fmt.Fprintln(w, "Unsupported files detected but skipped:")
		for _, file := range stats.UnsupportedFiles {
			fmt.Fprintf(w, "  %s\n", file)
		}
	}
	fmt.Fprintf(w, "Processing Time: %.2f seconds\n", stats.Elapsed.Seconds())
}
