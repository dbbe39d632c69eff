// Package tree assembles a directory tree from flat file records and renders
// it as ASCII art with size and token annotations.
package tree

import (
	"path/filepath"
	"sort"
	"strings"

	"catrepo/internal/types"
)

// leafTokenDivisor approximates a file's token count as one token per four
// bytes. The cheap proxy keeps tree building independent of the external
// tokenizer.
const leafTokenDivisor = 4

// Node is one entry in the aggregated directory tree. A directory node's
// SizeBytes and Tokens equal the sum over all descendant files; files are
// always leaves. TotalDirectories and TotalFiles hold the descendant counts
// computed before any depth pruning, so summaries stay exact when the
// displayed tree is truncated.
type Node struct {
	Name             string
	Path             string
	IsDirectory      bool
	SizeBytes        int64
	Tokens           int
	TotalDirectories int
	TotalFiles       int
	Children         []*Node
}

// Builder assembles directory trees from flat file records.
type Builder struct {
	// MaxDepth prunes the children of every directory at or below this depth,
	// counting the root as depth 0. Zero disables pruning.
	MaxDepth int
	// SortBy selects the sibling order: types.SortByName (case-insensitive,
	// the default), types.SortBySize, or types.SortByTokens (both descending).
	SortBy string
	// DirsFirst lists directory children before file children, each group
	// sorted independently.
	DirsFirst bool
}

// Build inserts every record under a root node named after rootPath, rolls up
// aggregate sizes, tokens, and counts, sorts siblings, and finally applies
// depth pruning. Pruning happens after aggregation, so totals are unaffected
// by what the rendered tree hides.
func (builder Builder) Build(files []types.FileRecord, rootPath string) *Node {
	rootNode := &Node{
		Name:        filepath.Base(filepath.Clean(rootPath)),
		Path:        ".",
		IsDirectory: true,
	}
	directoryIndex := map[string]*Node{"": rootNode}

	for _, record := range files {
		insertRecord(directoryIndex, rootNode, record)
	}

	rollUpAggregates(rootNode)
	builder.sortChildren(rootNode)
	if builder.MaxDepth > 0 {
		pruneBelowDepth(rootNode, 0, builder.MaxDepth)
	}
	return rootNode
}

// insertRecord walks the record's path segments from the root, creating
// directory placeholder nodes on demand. directoryIndex maps each directory's
// relative path to its node so repeated inserts never rescan sibling lists.
func insertRecord(directoryIndex map[string]*Node, rootNode *Node, record types.FileRecord) {
	segments := strings.Split(strings.Trim(record.RelativePath, "/"), "/")
	parentNode := rootNode
	parentPath := ""
	for _, segmentName := range segments[:len(segments)-1] {
		childPath := joinRelative(parentPath, segmentName)
		directoryNode, exists := directoryIndex[childPath]
		if !exists {
			directoryNode = &Node{Name: segmentName, Path: childPath, IsDirectory: true}
			directoryIndex[childPath] = directoryNode
			parentNode.Children = append(parentNode.Children, directoryNode)
		}
		parentNode = directoryNode
		parentPath = childPath
	}

	leafName := segments[len(segments)-1]
	parentNode.Children = append(parentNode.Children, &Node{
		Name:      leafName,
		Path:      joinRelative(parentPath, leafName),
		SizeBytes: record.SizeBytes,
		Tokens:    int(record.SizeBytes / leafTokenDivisor),
	})
}

func joinRelative(parentPath, childName string) string {
	if parentPath == "" {
		return childName
	}
	return parentPath + "/" + childName
}

// rollUpAggregates performs a post-order traversal computing every directory's
// aggregate size, token total, and descendant directory/file counts.
func rollUpAggregates(node *Node) (int64, int, int, int) {
	if !node.IsDirectory {
		node.TotalFiles = 1
		return node.SizeBytes, node.Tokens, 0, 1
	}

	var totalSize int64
	var totalTokens, totalDirectories, totalFiles int
	for _, childNode := range node.Children {
		childSize, childTokens, childDirectories, childFiles := rollUpAggregates(childNode)
		totalSize += childSize
		totalTokens += childTokens
		totalFiles += childFiles
		totalDirectories += childDirectories
		if childNode.IsDirectory {
			totalDirectories++
		}
	}
	node.SizeBytes = totalSize
	node.Tokens = totalTokens
	node.TotalDirectories = totalDirectories
	node.TotalFiles = totalFiles
	return totalSize, totalTokens, totalDirectories, totalFiles
}

func (builder Builder) sortChildren(node *Node) {
	less := builder.lessFunc()
	if builder.DirsFirst {
		var directories []*Node
		var files []*Node
		for _, childNode := range node.Children {
			if childNode.IsDirectory {
				directories = append(directories, childNode)
			} else {
				files = append(files, childNode)
			}
		}
		sort.SliceStable(directories, func(left, right int) bool { return less(directories[left], directories[right]) })
		sort.SliceStable(files, func(left, right int) bool { return less(files[left], files[right]) })
		node.Children = append(directories, files...)
	} else {
		children := node.Children
		sort.SliceStable(children, func(left, right int) bool { return less(children[left], children[right]) })
	}

	for _, childNode := range node.Children {
		if childNode.IsDirectory {
			builder.sortChildren(childNode)
		}
	}
}

func (builder Builder) lessFunc() func(*Node, *Node) bool {
	switch builder.SortBy {
	case types.SortBySize:
		return func(left, right *Node) bool { return left.SizeBytes > right.SizeBytes }
	case types.SortByTokens:
		return func(left, right *Node) bool { return left.Tokens > right.Tokens }
	default:
		return func(left, right *Node) bool {
			return strings.ToLower(left.Name) < strings.ToLower(right.Name)
		}
	}
}

// pruneBelowDepth clears the children of every directory at depth maxDepth or
// deeper, with the root at depth 0.
func pruneBelowDepth(node *Node, depth, maxDepth int) {
	if depth >= maxDepth {
		node.Children = nil
		return
	}
	for _, childNode := range node.Children {
		if childNode.IsDirectory {
			pruneBelowDepth(childNode, depth+1, maxDepth)
		}
	}
}
