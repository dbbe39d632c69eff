// Package collect walks a root directory and produces the flat list of file
// records that the tree and output layers consume.
package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"catrepo/internal/match"
	"catrepo/internal/types"
	"catrepo/internal/utils"
)

const (
	errorAbsolutePathFormat  = "getting absolute path for %s: %w"
	errorRootStatFormat      = "stat root %s: %w"
	errorRootNotDirectory    = "root %s is not a directory"
	gitRecursivePattern      = utils.GitDirectoryName + "/**"
	defaultIncludeEverything = "*"
)

// Options configures a collection run.
type Options struct {
	IncludePatterns []string
	ExcludePatterns []string
	MaxFileSize     int64
	BinaryStrict    bool
	UseGitignore    bool
}

// Collect returns the records for every readable, non-binary file under
// rootPath that the include, exclude, and gitignore rules admit. Single-file
// failures (permission denial, transient I/O errors) are logged and skipped;
// the walk continues. The order of the returned records is unspecified. An
// invalid root is the only fatal condition.
func Collect(rootPath string, options Options, logger *zap.Logger) ([]types.FileRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	rootInformation, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		return nil, fmt.Errorf(errorRootStatFormat, rootPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectory, rootPath)
	}

	includePatterns := options.IncludePatterns
	if len(includePatterns) == 0 {
		includePatterns = []string{defaultIncludeEverything}
	}
	maxFileSize := options.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = types.DefaultMaxFileSize
	}

	var gitignorePatterns []string
	if options.UseGitignore {
		gitignorePatterns = match.LoadGitignorePatterns(absoluteRootPath)
	}

	expandedIncludes := expandPatterns(absoluteRootPath, includePatterns)
	expandedExcludes := expandPatterns(absoluteRootPath, options.ExcludePatterns)
	if !includesTargetGitDirectory(expandedIncludes) {
		expandedExcludes = append(expandedExcludes, gitRecursivePattern, utils.GitDirectoryName)
	}

	var records []types.FileRecord
	walkError := filepath.WalkDir(absoluteRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			logger.Warn("skipping inaccessible path", zap.String("path", walkedPath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			return nil
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, absoluteRootPath)
		if !matchesAnyInclude(relativePath, expandedIncludes) {
			return nil
		}
		if matchesAnyExclude(relativePath, expandedExcludes) {
			return nil
		}
		if options.UseGitignore && matchesAnyGitignore(relativePath, gitignorePatterns) {
			return nil
		}
		if utils.IsLikelyBinaryFile(walkedPath, options.BinaryStrict) {
			return nil
		}

		entryInformation, informationError := directoryEntry.Info()
		if informationError != nil {
			logger.Warn("skipping unreadable file", zap.String("path", walkedPath), zap.Error(informationError))
			return nil
		}
		if entryInformation.Size() > maxFileSize {
			return nil
		}

		records = append(records, types.FileRecord{
			RelativePath: relativePath,
			SizeBytes:    entryInformation.Size(),
			ModifiedAt:   entryInformation.ModTime(),
		})
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	return records, nil
}

func expandPatterns(rootDirectoryPath string, patterns []string) []string {
	expanded := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		expanded = append(expanded, match.ExpandPattern(rootDirectoryPath, pattern))
	}
	return expanded
}

// includesTargetGitDirectory reports whether any include pattern explicitly
// names the Git metadata directory, which lifts its forced exclusion.
func includesTargetGitDirectory(includePatterns []string) bool {
	for _, pattern := range includePatterns {
		if strings.HasPrefix(pattern, utils.GitDirectoryName) {
			return true
		}
	}
	return false
}

func matchesAnyInclude(relativePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if match.MatchesInclude(relativePath, pattern) {
			return true
		}
	}
	return false
}

func matchesAnyExclude(relativePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if match.MatchesExclude(relativePath, pattern) {
			return true
		}
	}
	return false
}

func matchesAnyGitignore(relativePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if match.MatchesGitignore(relativePath, pattern) {
			return true
		}
	}
	return false
}
