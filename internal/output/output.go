// Package output assembles the final dump document and serializes it into the
// requested format: plain text, JSON, or HTML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"catrepo/internal/loader"
	"catrepo/internal/tokenizer"
	"catrepo/internal/tree"
	"catrepo/internal/types"
	"catrepo/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	fileSectionHeaderFormat = "File: %s\n"
	fileSectionFooterFormat = "End of file: %s\n"
	sectionSeparatorLine    = "----------------------------------------"
	truncatedContentNotice  = "(content omitted to satisfy token budget)"
	textSummaryFormat       = "%d files, %s, %d tokens"

	unsupportedFormatMessage = "unsupported output format '%s'"

	// maxConcurrentFileLoads bounds the fan-out when loading and counting file
	// contents for the dump.
	maxConcurrentFileLoads = 8
)

// Options configures dump rendering.
type Options struct {
	Format    string
	MaxTokens int
	ShowTree  bool
	Tree      tree.ViewOptions
	Counter   tokenizer.Counter
	Logger    *zap.Logger
}

// RenderDump builds the dump document for files under rootPath and serializes
// it with the requested format. The tree view, file sections, token budget,
// and summary all come from the same document, so every format reports the
// same totals.
func RenderDump(files []types.FileRecord, rootPath string, options Options) (string, error) {
	document := buildDocument(files, rootPath, options)
	switch options.Format {
	case types.FormatJSON:
		return renderJSON(document)
	case types.FormatHTML:
		return renderHTML(document)
	case types.FormatText, "":
		return renderText(document), nil
	default:
		return "", fmt.Errorf(unsupportedFormatMessage, options.Format)
	}
}

// buildDocument loads file contents, counts tokens, applies the token budget,
// and computes the dump summary. Contents are loaded with a bounded worker
// group; each worker writes only its own slot, so the entry order matches the
// input order deterministically.
func buildDocument(files []types.FileRecord, rootPath string, options Options) types.DumpDocument {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	counter := options.Counter
	if counter == nil {
		counter = tokenizer.NewHeuristicCounter()
	}

	entries := make([]types.FileOutput, len(files))
	var loadGroup errgroup.Group
	loadGroup.SetLimit(maxConcurrentFileLoads)
	for index, record := range files {
		index, record := index, record
		loadGroup.Go(func() error {
			absolutePath := filepath.Join(rootPath, filepath.FromSlash(record.RelativePath))
			content, loadError := loader.LoadText(absolutePath)
			if loadError != nil {
				logger.Warn("skipping unreadable file content", zap.String("path", record.RelativePath), zap.Error(loadError))
				content = ""
			}
			tokens, countError := counter.CountString(content)
			if countError != nil {
				logger.Warn("failed to count tokens", zap.String("path", record.RelativePath), zap.Error(countError))
				tokens = 0
			}
			entries[index] = types.FileOutput{
				Path:         record.RelativePath,
				Size:         utils.FormatSize(record.SizeBytes),
				SizeBytes:    record.SizeBytes,
				LastModified: utils.FormatTimestamp(record.ModifiedAt),
				Tokens:       tokens,
				Content:      content,
			}
			return nil
		})
	}
	_ = loadGroup.Wait()

	applyTokenBudget(entries, options.MaxTokens)

	var totalSizeBytes int64
	totalTokens := 0
	for _, entry := range entries {
		totalSizeBytes += entry.SizeBytes
		totalTokens += entry.Tokens
	}

	treeView := ""
	if options.ShowTree {
		treeView = tree.GenerateTreeView(files, rootPath, options.Tree)
	}

	return types.DumpDocument{
		Root:  rootPath,
		Tree:  treeView,
		Files: entries,
		Summary: types.DumpSummary{
			TotalFiles:  len(entries),
			TotalSize:   utils.FormatSize(totalSizeBytes),
			TotalTokens: totalTokens,
			Model:       counter.Name(),
		},
	}
}

// renderText emits the tree view followed by one delimited section per file
// and a trailing totals line.
func renderText(document types.DumpDocument) string {
	var buffer bytes.Buffer
	if document.Tree != "" {
		buffer.WriteString(document.Tree)
		buffer.WriteString("\n\n")
	}
	for _, entry := range document.Files {
		buffer.WriteString(fmt.Sprintf(fileSectionHeaderFormat, entry.Path))
		if entry.Truncated {
			buffer.WriteString(truncatedContentNotice + "\n")
		} else if entry.Content != "" {
			buffer.WriteString(entry.Content)
			if !strings.HasSuffix(entry.Content, "\n") {
				buffer.WriteString("\n")
			}
		}
		buffer.WriteString(fmt.Sprintf(fileSectionFooterFormat, entry.Path))
		buffer.WriteString(sectionSeparatorLine + "\n")
	}
	buffer.WriteString(fmt.Sprintf(textSummaryFormat, document.Summary.TotalFiles, document.Summary.TotalSize, document.Summary.TotalTokens))
	return buffer.String()
}

func renderJSON(document types.DumpDocument) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(document, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", fmt.Errorf("marshal dump to JSON: %w", jsonEncodeError)
	}
	return string(encoded), nil
}
