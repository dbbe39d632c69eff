// Package types defines every cross-package data structure used by the catrepo CLI.
package types

import "time"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"

	SortByName   = "name"
	SortBySize   = "size"
	SortByTokens = "tokens"
)

// DefaultMaxFileSize is the byte-size cutoff applied when no explicit limit is given.
const DefaultMaxFileSize int64 = 1 << 20

// FileRecord describes one qualifying file discovered during a directory walk.
// The path is slash-normalized and relative to the walk root. Records are
// created once per file and never mutated afterwards.
type FileRecord struct {
	RelativePath string
	SizeBytes    int64
	ModifiedAt   time.Time
}

// FileOutput represents one file entry in the rendered dump.
type FileOutput struct {
	Path         string `json:"path"`
	Size         string `json:"size"`
	SizeBytes    int64  `json:"sizeBytes"`
	LastModified string `json:"lastModified,omitempty"`
	Tokens       int    `json:"tokens"`
	Truncated    bool   `json:"truncated,omitempty"`
	Content      string `json:"content"`
}

// DumpSummary captures aggregate information about the rendered files.
type DumpSummary struct {
	TotalFiles  int    `json:"totalFiles"`
	TotalSize   string `json:"totalSize"`
	TotalTokens int    `json:"totalTokens"`
	Model       string `json:"model,omitempty"`
}

// DumpDocument is the complete dump handed to a serializer.
type DumpDocument struct {
	Root    string       `json:"root"`
	Tree    string       `json:"tree,omitempty"`
	Files   []FileOutput `json:"files"`
	Summary DumpSummary  `json:"summary"`
}
