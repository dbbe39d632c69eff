// Package match implements the pattern predicates that decide which relative
// paths a collection run admits: plain include globs, richer exclude patterns,
// and gitignore-style rules. All predicates are pure functions over
// slash-normalized relative paths; matching is case-sensitive.
package match

import "strings"

// segmentKind enumerates the kinds of compiled pattern segments.
type segmentKind int

const (
	// segmentLiteral matches its text verbatim.
	segmentLiteral segmentKind = iota
	// segmentSingle matches exactly one character.
	segmentSingle
	// segmentStar matches any run of characters that does not cross a path separator.
	segmentStar
	// segmentStarAny matches any run of characters, path separators included.
	segmentStarAny
)

type patternSegment struct {
	kind segmentKind
	text string
}

// compiledPattern is a glob pattern parsed once into explicit segments and
// evaluated by a deterministic backtracking matcher. Compiling cannot fail:
// every input string yields a valid pattern.
type compiledPattern struct {
	segments []patternSegment
}

// compileGlob parses pattern into a compiledPattern. A run of two or more
// consecutive '*' characters always compiles to segmentStarAny; a single '*'
// compiles to segmentStarAny when starCrossesSeparator is set and to
// segmentStar otherwise. '?' compiles to segmentSingle and everything else is
// literal text.
func compileGlob(pattern string, starCrossesSeparator bool) compiledPattern {
	var segments []patternSegment
	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			segments = append(segments, patternSegment{kind: segmentLiteral, text: literal.String()})
			literal.Reset()
		}
	}

	patternRunes := []rune(pattern)
	for index := 0; index < len(patternRunes); index++ {
		switch patternRunes[index] {
		case '*':
			flushLiteral()
			if index+1 < len(patternRunes) && patternRunes[index+1] == '*' {
				for index+1 < len(patternRunes) && patternRunes[index+1] == '*' {
					index++
				}
				segments = append(segments, patternSegment{kind: segmentStarAny})
				continue
			}
			if starCrossesSeparator {
				segments = append(segments, patternSegment{kind: segmentStarAny})
			} else {
				segments = append(segments, patternSegment{kind: segmentStar})
			}
		case '?':
			flushLiteral()
			segments = append(segments, patternSegment{kind: segmentSingle})
		default:
			literal.WriteRune(patternRunes[index])
		}
	}
	flushLiteral()
	return compiledPattern{segments: segments}
}

// Matches reports whether candidate satisfies the whole pattern, anchored at
// both ends.
func (pattern compiledPattern) Matches(candidate string) bool {
	return matchSegments(pattern.segments, []rune(candidate))
}

func matchSegments(segments []patternSegment, input []rune) bool {
	if len(segments) == 0 {
		return len(input) == 0
	}
	headSegment := segments[0]
	switch headSegment.kind {
	case segmentLiteral:
		literalRunes := []rune(headSegment.text)
		if len(input) < len(literalRunes) {
			return false
		}
		for position := range literalRunes {
			if input[position] != literalRunes[position] {
				return false
			}
		}
		return matchSegments(segments[1:], input[len(literalRunes):])
	case segmentSingle:
		if len(input) == 0 {
			return false
		}
		return matchSegments(segments[1:], input[1:])
	case segmentStar:
		for consumed := 0; ; consumed++ {
			if matchSegments(segments[1:], input[consumed:]) {
				return true
			}
			if consumed >= len(input) || input[consumed] == '/' {
				return false
			}
		}
	case segmentStarAny:
		for consumed := 0; consumed <= len(input); consumed++ {
			if matchSegments(segments[1:], input[consumed:]) {
				return true
			}
		}
		return false
	}
	return false
}
