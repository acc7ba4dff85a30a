// Package types defines the core data types and error model shared by the
// document comparison tool.
package types

import "time"

// Settings holds the run configuration loaded at startup. It is constructed
// once and passed by reference into the runner; nothing mutates it afterwards.
type Settings struct {
	// RootPath is the directory tree to walk for comparable documents.
	RootPath string
	// Exclusions are substrings; any XML line containing one of them is
	// dropped before comparison.
	Exclusions []string
}

// NumberedLine is a single line of a source file together with its 1-based
// position. The position is informational only: files are compared by line
// content, never by aligned position.
type NumberedLine struct {
	Num     int
	Content string
}

// XMLResult is the outcome of comparing one pair of XML files.
type XMLResult struct {
	FileA string
	FileB string
	// Identical holds iff both unique slices are empty after exclusion
	// filtering.
	Identical   bool
	TotalLinesA int
	TotalLinesB int
	UniqueToA   []NumberedLine
	UniqueToB   []NumberedLine
}

// ImageMismatch is a position-paired image pair whose decoded pixels differ.
type ImageMismatch struct {
	Page   int
	ImageA string
	ImageB string
}

// MetadataDelta holds the two differing values of a single metadata field.
type MetadataDelta struct {
	ValueA int64
	ValueB int64
}

// PDFResult is the outcome of comparing one pair of PDF files. Image values
// are paths to extracted artifacts on disk; the path is the image's identity
// for the remainder of the run. Extracted artifacts are not cleaned up
// automatically.
type PDFResult struct {
	FileA string
	FileB string
	// UniqueTextA/B map 1-based page numbers to the newline-joined lines
	// found only on that side of the page.
	UniqueTextA map[int]string
	UniqueTextB map[int]string
	// UniqueImagesA/B map page numbers to extracted image paths that have
	// no positional counterpart on the other side. Two pixel-identical
	// images at different positions are not deduplicated.
	UniqueImagesA map[int][]string
	UniqueImagesB map[int][]string
	// MismatchedImages are position-paired images with differing pixels.
	MismatchedImages []ImageMismatch
	// MetadataDiff contains only fields whose values differ; equal fields
	// are omitted entirely.
	MetadataDiff map[string]MetadataDelta
}

// RunStats accumulates counters across a whole run. Only the runner mutates
// it; it is finalized once when the walk completes.
type RunStats struct {
	XMLFilesProcessed int           `json:"xml_files_processed"`
	PDFFilesProcessed int           `json:"pdf_files_processed"`
	MixedFolders      []string      `json:"mixed_folders"`
	UnsupportedFiles  []string      `json:"unsupported_files"`
	Elapsed           time.Duration `json:"-"`
}

// ErrorCode classifies application errors.
type ErrorCode string

const (
	// ErrConfig marks invalid or missing settings; fatal before any
	// processing starts.
	ErrConfig ErrorCode = "CONFIG_ERROR"
	// ErrFilesystem marks an unreadable file or folder; fatal to the
	// single comparison it occurred in, the batch continues.
	ErrFilesystem ErrorCode = "FILESYSTEM_ERROR"
	// ErrDecode marks an undecodable image; fatal to the single image
	// pair only.
	ErrDecode ErrorCode = "DECODE_ERROR"
	// ErrExtract marks a failure while extracting PDF content.
	ErrExtract ErrorCode = "EXTRACT_ERROR"
	// ErrInternal marks an unexpected internal failure.
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application error type. It carries a machine-readable
// code and wraps the underlying cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface for AppError
func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError with the given code, message, and optional cause
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
