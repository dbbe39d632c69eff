package tree

import (
	"fmt"
	"strings"

	"catrepo/internal/types"
	"catrepo/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	sizeFieldFormat   = "[%10s] "
	tokenSuffixFormat = " (%s tok)"
	summaryLineFormat = "%d directories, %d files"
)

// ViewOptions configures tree construction and rendering in one place.
type ViewOptions struct {
	MaxDepth   int
	ShowTokens bool
	ShowSize   bool
	SortBy     string
	DirsFirst  bool
}

// DefaultViewOptions returns the tree view configuration used when the caller
// specifies nothing: unlimited depth, token annotations on, size annotations
// off, name ordering, directories first.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		ShowTokens: true,
		SortBy:     types.SortByName,
		DirsFirst:  true,
	}
}

// GenerateTreeView builds a tree from files rooted at rootPath and renders it
// as a multi-line string terminated by the directory/file summary.
func GenerateTreeView(files []types.FileRecord, rootPath string, options ViewOptions) string {
	builder := Builder{
		MaxDepth:  options.MaxDepth,
		SortBy:    options.SortBy,
		DirsFirst: options.DirsFirst,
	}
	rootNode := builder.Build(files, rootPath)
	return strings.Join(Render(rootNode, options.ShowTokens, options.ShowSize), "\n")
}

// Render walks the tree and returns one line per node in display order,
// followed by a blank line and a summary counting directories (root excluded)
// and files. The counts come from the aggregates rolled up before any depth
// pruning, so hidden descendants are still reported.
func Render(rootNode *Node, showTokens, showSize bool) []string {
	lines := renderNode(rootNode, "", true, showTokens, showSize, nil)
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf(summaryLineFormat, rootNode.TotalDirectories, rootNode.TotalFiles))
	return lines
}

func renderNode(node *Node, prefix string, isLast bool, showTokens, showSize bool, lines []string) []string {
	connector := treeBranchConnector
	if isLast {
		connector = treeLastConnector
	}

	var line strings.Builder
	line.WriteString(prefix)
	line.WriteString(connector)
	if showSize {
		line.WriteString(fmt.Sprintf(sizeFieldFormat, utils.FormatSize(node.SizeBytes)))
	}
	line.WriteString(node.Name)
	if showTokens && !node.IsDirectory {
		line.WriteString(fmt.Sprintf(tokenSuffixFormat, utils.FormatTokenCount(node.Tokens)))
	}
	lines = append(lines, line.String())

	childPrefix := prefix + treeBranchPadding
	if isLast {
		childPrefix = prefix + treeLastPadding
	}
	for index, childNode := range node.Children {
		lines = renderNode(childNode, childPrefix, index == len(node.Children)-1, showTokens, showSize, lines)
	}
	return lines
}
