package match

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchesInclude(t *testing.T) {
	testCases := []struct {
		name         string
		relativePath string
		pattern      string
		expected     bool
	}{
		{name: "StarMatchesEverything", relativePath: "a/b/c.txt", pattern: "*", expected: true},
		{name: "StarCrossesSeparators", relativePath: "cmd/main.go", pattern: "*.go", expected: true},
		{name: "ExtensionMismatch", relativePath: "cmd/main.rs", pattern: "*.go", expected: false},
		{name: "AnchoredDirectoryGlob", relativePath: "docs/guide.md", pattern: "docs/*", expected: true},
		{name: "AnchoredDirectoryGlobDeep", relativePath: "docs/sub/guide.md", pattern: "docs/*", expected: true},
		{name: "AnchoredGlobWrongRoot", relativePath: "src/guide.md", pattern: "docs/*", expected: false},
		{name: "ExactFile", relativePath: "Makefile", pattern: "Makefile", expected: true},
		{name: "BackslashesNormalized", relativePath: `docs\guide.md`, pattern: "docs/*", expected: true},
		{name: "CaseSensitive", relativePath: "README.md", pattern: "readme.md", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := MatchesInclude(testCase.relativePath, testCase.pattern)
			if actual != testCase.expected {
				t.Errorf("MatchesInclude(%q, %q) = %v, expected %v",
					testCase.relativePath, testCase.pattern, actual, testCase.expected)
			}
		})
	}
}

func TestMatchesExclude(t *testing.T) {
	testCases := []struct {
		name         string
		relativePath string
		pattern      string
		expected     bool
	}{
		{name: "BareNameMatchesSegment", relativePath: "build/output.txt", pattern: "build", expected: true},
		{name: "BareNameMatchesNestedSegment", relativePath: "a/build/output.txt", pattern: "build", expected: true},
		{name: "BareNameNoSegment", relativePath: "src/builder.go", pattern: "build", expected: false},
		{name: "AnyDepthSuffixBase", relativePath: "a/b/node_modules/pkg/index.js", pattern: "node_modules/**", expected: true},
		{name: "AnyDepthPrefixExtension", relativePath: "logs/app.log", pattern: "**/*.log", expected: true},
		{name: "AnyDepthPrefixExtensionTopLevel", relativePath: "app.log", pattern: "**/*.log", expected: true},
		{name: "AnyDepthPrefixExtensionMiss", relativePath: "logs/app.txt", pattern: "**/*.log", expected: false},
		{name: "AnyDepthWithSlashBase", relativePath: "src/gen/a/b/out.go", pattern: "src/gen/**", expected: true},
		{name: "AnyDepthWithSlashBaseMiss", relativePath: "src/handwritten/out.go", pattern: "src/gen/**", expected: false},
		{name: "PlainGlobWholePath", relativePath: "cache/tmp1", pattern: "cache/tmp?", expected: true},
		{name: "SeparatorLiteralWholePath", relativePath: "docs/internal", pattern: "docs/internal", expected: true},
		{name: "SeparatorLiteralNotSegment", relativePath: "x/docs/internal", pattern: "docs/internal", expected: false},
		{name: "StarOnlyPattern", relativePath: "anything/at/all", pattern: "*", expected: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := MatchesExclude(testCase.relativePath, testCase.pattern)
			if actual != testCase.expected {
				t.Errorf("MatchesExclude(%q, %q) = %v, expected %v",
					testCase.relativePath, testCase.pattern, actual, testCase.expected)
			}
		})
	}
}

func TestMatchesGitignore(t *testing.T) {
	testCases := []struct {
		name         string
		relativePath string
		pattern      string
		expected     bool
	}{
		{name: "TrailingSlashDirectoryItself", relativePath: "build", pattern: "build/", expected: true},
		{name: "TrailingSlashContents", relativePath: "build/out/app", pattern: "build/", expected: true},
		{name: "TrailingSlashOneLevelUp", relativePath: "sub/build", pattern: "build/", expected: true},
		{name: "TrailingSlashOneLevelUpContents", relativePath: "sub/build/app", pattern: "build/", expected: true},
		{name: "TrailingSlashUnrelated", relativePath: "src/app.go", pattern: "build/", expected: false},
		{name: "RootAnchored", relativePath: "config.yaml", pattern: "/config.yaml", expected: true},
		{name: "RootAnchoredNested", relativePath: "sub/config.yaml", pattern: "/config.yaml", expected: false},
		{name: "MidSlashDirect", relativePath: "docs/build/index.html", pattern: "docs/build/*", expected: true},
		{name: "MidSlashAnyDepth", relativePath: "a/docs/build/index.html", pattern: "docs/build/*", expected: true},
		{name: "BareNameBasename", relativePath: "src/secret.pem", pattern: "*.pem", expected: true},
		{name: "BareNameSegment", relativePath: "vendor/pkg/lib.go", pattern: "vendor", expected: true},
		{name: "BareNameMiss", relativePath: "src/app.go", pattern: "vendor", expected: false},
		{name: "BareNameCaseSensitive", relativePath: "Vendor/lib.go", pattern: "vendor", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := MatchesGitignore(testCase.relativePath, testCase.pattern)
			if actual != testCase.expected {
				t.Errorf("MatchesGitignore(%q, %q) = %v, expected %v",
					testCase.relativePath, testCase.pattern, actual, testCase.expected)
			}
		})
	}
}

func TestExpandPattern(t *testing.T) {
	rootDirectory := t.TempDir()
	if mkdirError := os.MkdirAll(filepath.Join(rootDirectory, "src"), 0o755); mkdirError != nil {
		t.Fatalf("create src directory: %v", mkdirError)
	}
	if writeError := os.WriteFile(filepath.Join(rootDirectory, "notes.txt"), []byte("notes"), 0o644); writeError != nil {
		t.Fatalf("create notes.txt: %v", writeError)
	}

	testCases := []struct {
		name     string
		pattern  string
		expected string
	}{
		{name: "DirectoryGrowsRecursiveSuffix", pattern: "src", expected: "src/**"},
		{name: "DirectoryWithDotSlash", pattern: "./src", expected: "src/**"},
		{name: "DirectoryWithTrailingSlash", pattern: "src/", expected: "src/**"},
		{name: "FileStaysVerbatim", pattern: "notes.txt", expected: "notes.txt"},
		{name: "MissingNameStaysVerbatim", pattern: "lib", expected: "lib"},
		{name: "GlobStaysVerbatim", pattern: "*.go", expected: "*.go"},
		{name: "StarPassesThrough", pattern: "*", expected: "*"},
		{name: "DoubleStarPassesThrough", pattern: "**", expected: "**"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := ExpandPattern(rootDirectory, testCase.pattern)
			if actual != testCase.expected {
				t.Errorf("ExpandPattern(root, %q) = %q, expected %q", testCase.pattern, actual, testCase.expected)
			}
		})
	}
}
