package match

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"catrepo/internal/utils"
)

const (
	commentLinePrefix  = "#"
	negationLinePrefix = "!"
)

// LoadGitignorePatterns reads the .gitignore file at the root of
// rootDirectoryPath and returns its rule lines. Blank lines and comments are
// skipped. Negation lines ("!pattern") are parsed and discarded: a path
// excluded by an earlier rule can never be re-included. A missing, unreadable,
// or malformed file yields an empty rule set.
func LoadGitignorePatterns(rootDirectoryPath string) []string {
	gitIgnoreFilePath := filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName)
	fileHandle, openError := os.Open(gitIgnoreFilePath)
	if openError != nil {
		return nil
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentLinePrefix) {
			continue
		}
		if strings.HasPrefix(trimmedLine, negationLinePrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil
	}
	return patterns
}
