package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"catrepo/internal/tree"
	"catrepo/internal/types"
)

// byteCounter counts one token per byte so tests can reason about budgets
// exactly.
type byteCounter struct{}

func (byteCounter) Name() string { return "bytes" }

func (byteCounter) CountString(input string) (int, error) {
	return len(input), nil
}

func writeDumpFixture(t *testing.T) (string, []types.FileRecord) {
	t.Helper()
	rootDirectory := t.TempDir()
	files := map[string]string{
		"main.go":      "package main\n",
		"docs/note.md": "note\n",
	}
	for relativePath, content := range files {
		fullPath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
		if mkdirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
			t.Fatalf("create parent of %s: %v", relativePath, mkdirError)
		}
		if writeError := os.WriteFile(fullPath, []byte(content), 0o644); writeError != nil {
			t.Fatalf("write %s: %v", relativePath, writeError)
		}
	}

	records := []types.FileRecord{
		{RelativePath: "main.go", SizeBytes: 13, ModifiedAt: time.Now()},
		{RelativePath: "docs/note.md", SizeBytes: 5, ModifiedAt: time.Now()},
	}
	return rootDirectory, records
}

func TestRenderDumpText(t *testing.T) {
	rootDirectory, records := writeDumpFixture(t)

	dump, renderError := RenderDump(records, rootDirectory, Options{
		Format:   types.FormatText,
		ShowTree: true,
		Tree:     tree.DefaultViewOptions(),
		Counter:  byteCounter{},
	})
	if renderError != nil {
		t.Fatalf("RenderDump returned error: %v", renderError)
	}

	for _, fragment := range []string{
		"├── docs",
		"File: main.go\n",
		"package main\n",
		"End of file: main.go\n",
		"File: docs/note.md\n",
		"1 directories, 2 files",
	} {
		if !strings.Contains(dump, fragment) {
			t.Errorf("text dump missing %q:\n%s", fragment, dump)
		}
	}
	if !strings.HasSuffix(dump, "2 files, 18, 18 tokens") {
		t.Errorf("text dump missing totals line:\n%s", dump)
	}
}

func TestRenderDumpTextWithoutTree(t *testing.T) {
	rootDirectory, records := writeDumpFixture(t)

	dump, renderError := RenderDump(records, rootDirectory, Options{
		Format:  types.FormatText,
		Counter: byteCounter{},
	})
	if renderError != nil {
		t.Fatalf("RenderDump returned error: %v", renderError)
	}
	if strings.Contains(dump, "└──") {
		t.Errorf("dump contains a tree view despite ShowTree being off:\n%s", dump)
	}
	if !strings.HasPrefix(dump, "File: ") {
		t.Errorf("dump does not start with the first file section:\n%s", dump)
	}
}

func TestRenderDumpJSON(t *testing.T) {
	rootDirectory, records := writeDumpFixture(t)

	dump, renderError := RenderDump(records, rootDirectory, Options{
		Format:  types.FormatJSON,
		Counter: byteCounter{},
	})
	if renderError != nil {
		t.Fatalf("RenderDump returned error: %v", renderError)
	}

	var document types.DumpDocument
	if decodeError := json.Unmarshal([]byte(dump), &document); decodeError != nil {
		t.Fatalf("decode JSON dump: %v", decodeError)
	}
	if document.Root != rootDirectory {
		t.Errorf("Root = %q, expected %q", document.Root, rootDirectory)
	}
	if len(document.Files) != 2 {
		t.Fatalf("decoded %d files, expected 2", len(document.Files))
	}
	if document.Files[0].Path != "main.go" || document.Files[0].Content != "package main\n" {
		t.Errorf("first entry = %+v", document.Files[0])
	}
	if document.Summary.TotalFiles != 2 || document.Summary.TotalTokens != 18 {
		t.Errorf("summary = %+v", document.Summary)
	}
	if document.Summary.Model != "bytes" {
		t.Errorf("summary model = %q, expected bytes", document.Summary.Model)
	}
}

func TestRenderDumpHTML(t *testing.T) {
	rootDirectory, records := writeDumpFixture(t)

	dump, renderError := RenderDump(records, rootDirectory, Options{
		Format:   types.FormatHTML,
		ShowTree: true,
		Tree:     tree.DefaultViewOptions(),
		Counter:  byteCounter{},
	})
	if renderError != nil {
		t.Fatalf("RenderDump returned error: %v", renderError)
	}

	for _, fragment := range []string{
		"<!DOCTYPE html>",
		"<h2>main.go</h2>",
		"<h2>docs/note.md</h2>",
		`<pre class="tree">`,
		"<footer>",
	} {
		if !strings.Contains(dump, fragment) {
			t.Errorf("HTML dump missing %q", fragment)
		}
	}
}

func TestRenderDumpUnsupportedFormat(t *testing.T) {
	rootDirectory, records := writeDumpFixture(t)
	if _, renderError := RenderDump(records, rootDirectory, Options{Format: "yaml", Counter: byteCounter{}}); renderError == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRenderDumpTokenBudgetTruncatesLargestFirst(t *testing.T) {
	rootDirectory, records := writeDumpFixture(t)

	dump, renderError := RenderDump(records, rootDirectory, Options{
		Format:    types.FormatJSON,
		MaxTokens: 6,
		Counter:   byteCounter{},
	})
	if renderError != nil {
		t.Fatalf("RenderDump returned error: %v", renderError)
	}

	var document types.DumpDocument
	if decodeError := json.Unmarshal([]byte(dump), &document); decodeError != nil {
		t.Fatalf("decode JSON dump: %v", decodeError)
	}
	if len(document.Files) != 2 {
		t.Fatalf("decoded %d files, expected both entries listed", len(document.Files))
	}

	mainEntry := document.Files[0]
	noteEntry := document.Files[1]
	if !mainEntry.Truncated || mainEntry.Content != "" || mainEntry.Tokens != 0 {
		t.Errorf("largest entry not truncated: %+v", mainEntry)
	}
	if noteEntry.Truncated || noteEntry.Content != "note\n" {
		t.Errorf("smaller entry unexpectedly truncated: %+v", noteEntry)
	}
	if document.Summary.TotalTokens != 5 {
		t.Errorf("TotalTokens = %d, expected 5 after truncation", document.Summary.TotalTokens)
	}
}

func TestApplyTokenBudget(t *testing.T) {
	entries := []types.FileOutput{
		{Path: "a", Tokens: 10, Content: "aaaa"},
		{Path: "b", Tokens: 30, Content: "bbbb"},
		{Path: "c", Tokens: 5, Content: "cccc"},
	}

	applyTokenBudget(entries, 20)

	if !entries[1].Truncated {
		t.Error("largest entry b not truncated")
	}
	if entries[0].Truncated || entries[2].Truncated {
		t.Errorf("unexpected truncation: a=%v c=%v", entries[0].Truncated, entries[2].Truncated)
	}
	remaining := entries[0].Tokens + entries[1].Tokens + entries[2].Tokens
	if remaining != 15 {
		t.Errorf("remaining tokens = %d, expected 15", remaining)
	}
}

func TestApplyTokenBudgetDisabled(t *testing.T) {
	entries := []types.FileOutput{{Path: "a", Tokens: 100, Content: "x"}}
	applyTokenBudget(entries, 0)
	if entries[0].Truncated || entries[0].Tokens != 100 {
		t.Errorf("budget applied despite being disabled: %+v", entries[0])
	}
}

func TestRenderTextTruncatedSection(t *testing.T) {
	document := types.DumpDocument{
		Root: "repo",
		Files: []types.FileOutput{
			{Path: "big.txt", Truncated: true},
		},
		Summary: types.DumpSummary{TotalFiles: 1, TotalSize: "0", TotalTokens: 0},
	}
	rendered := renderText(document)
	if !strings.Contains(rendered, truncatedContentNotice) {
		t.Errorf("rendered text missing truncation notice:\n%s", rendered)
	}
}
