package match

import (
	"os"
	"path/filepath"
	"strings"

	"catrepo/internal/utils"
)

const (
	wildcardAll          = "*"
	wildcardAnyDepth     = "**"
	pathSeparator        = "/"
	recursiveSuffix      = "/**"
	anyDepthPrefix       = "**/"
	currentDirectoryTrim = "./"
)

// MatchesInclude reports whether relativePath satisfies an include glob.
// The whole path is matched with shell-glob semantics in which '*' spans any
// run of characters, path separators included, and '?' matches one character.
func MatchesInclude(relativePath, pattern string) bool {
	return globMatch(utils.NormalizePath(relativePath), utils.NormalizePath(pattern))
}

// MatchesExclude reports whether relativePath satisfies an exclude pattern.
// Patterns containing "**" match either any single path segment equal to the
// '**'-free base (when that base carries no separator) or the whole path with
// '**' spanning separators and '*' confined to one segment. Patterns with
// other wildcards or separators match the whole path as a plain glob. A bare
// name matches when any single path segment equals it under glob rules.
func MatchesExclude(relativePath, pattern string) bool {
	normalizedPath := utils.NormalizePath(relativePath)
	normalizedPattern := utils.NormalizePath(pattern)

	if strings.Contains(normalizedPattern, wildcardAnyDepth) {
		basePattern := strings.ReplaceAll(normalizedPattern, recursiveSuffix, "")
		basePattern = strings.ReplaceAll(basePattern, anyDepthPrefix, "")
		if !strings.Contains(basePattern, pathSeparator) {
			return anySegmentMatches(normalizedPath, basePattern)
		}
		return compileGlob(normalizedPattern, false).Matches(normalizedPath)
	}

	if strings.ContainsAny(normalizedPattern, "*?") || strings.Contains(normalizedPattern, pathSeparator) {
		return globMatch(normalizedPath, normalizedPattern)
	}

	return anySegmentMatches(normalizedPath, normalizedPattern)
}

// MatchesGitignore reports whether relativePath satisfies a gitignore-style rule.
// A trailing '/' anchors the rule to a directory: the path itself, any deeper
// path, with or without a leading path component. A leading '/' anchors the
// rule to the root and matches the whole path only. A separator elsewhere
// matches the whole path outright or under an implicit any-depth prefix. A
// rule without separators matches the basename, any single path segment, or
// any partial-path prefix ending at a matching segment.
func MatchesGitignore(relativePath, pattern string) bool {
	normalizedPath := utils.NormalizePath(relativePath)
	normalizedPattern := utils.NormalizePath(pattern)

	if strings.HasSuffix(normalizedPattern, pathSeparator) {
		directoryPattern := strings.TrimRight(normalizedPattern, pathSeparator)
		return globMatch(normalizedPath, directoryPattern) ||
			globMatch(normalizedPath, directoryPattern+recursiveSuffix) ||
			globMatch(normalizedPath, wildcardAll+pathSeparator+directoryPattern) ||
			globMatch(normalizedPath, wildcardAll+pathSeparator+directoryPattern+recursiveSuffix)
	}

	if strings.HasPrefix(normalizedPattern, pathSeparator) {
		return globMatch(normalizedPath, strings.TrimPrefix(normalizedPattern, pathSeparator))
	}

	if strings.Contains(normalizedPattern, pathSeparator) {
		return globMatch(normalizedPath, normalizedPattern) ||
			globMatch(normalizedPath, anyDepthPrefix+normalizedPattern)
	}

	pathSegments := strings.Split(normalizedPath, pathSeparator)
	baseName := pathSegments[len(pathSegments)-1]
	if globMatch(baseName, normalizedPattern) {
		return true
	}
	partialPath := ""
	for _, segmentValue := range pathSegments {
		if globMatch(segmentValue, normalizedPattern) {
			return true
		}
		if partialPath == "" {
			partialPath = segmentValue
		} else {
			partialPath = partialPath + pathSeparator + segmentValue
		}
		if globMatch(partialPath, normalizedPattern) {
			return true
		}
	}
	return false
}

// ExpandPattern normalizes an include or exclude pattern: separators become
// forward slashes, leading "./" and trailing "/" decorations are stripped, and
// a pattern naming an existing directory under root grows a "/**" suffix so it
// recurses.
func ExpandPattern(rootDirectoryPath, pattern string) string {
	normalizedPattern := utils.NormalizePath(pattern)
	for strings.HasPrefix(normalizedPattern, currentDirectoryTrim) {
		normalizedPattern = strings.TrimPrefix(normalizedPattern, currentDirectoryTrim)
	}
	normalizedPattern = strings.TrimRight(normalizedPattern, pathSeparator)
	if normalizedPattern == wildcardAll || normalizedPattern == wildcardAnyDepth {
		return normalizedPattern
	}
	candidatePath := filepath.Join(rootDirectoryPath, filepath.FromSlash(normalizedPattern))
	pathInformation, statError := os.Stat(candidatePath)
	if statError == nil && pathInformation.IsDir() {
		return normalizedPattern + recursiveSuffix
	}
	return normalizedPattern
}

// globMatch matches candidate against pattern with separator-crossing '*' semantics.
func globMatch(candidate, pattern string) bool {
	return compileGlob(pattern, true).Matches(candidate)
}

// anySegmentMatches reports whether any single path segment of normalizedPath
// matches basePattern under glob rules.
func anySegmentMatches(normalizedPath, basePattern string) bool {
	compiled := compileGlob(basePattern, true)
	for _, segmentValue := range strings.Split(normalizedPath, pathSeparator) {
		if compiled.Matches(segmentValue) {
			return true
		}
	}
	return false
}
