// Package loader reads file content as text with a lossless-first decoding
// policy.
package loader

import (
	"os"
	"strings"
	"unicode/utf8"
)

// LoadText returns the contents of the file at filePath as text. Valid UTF-8
// is returned unchanged; invalid byte sequences are replaced with U+FFFD, so
// decoding never fails. Read errors propagate to the caller.
func LoadText(filePath string) (string, error) {
	data, readError := os.ReadFile(filePath)
	if readError != nil {
		return "", readError
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
}
