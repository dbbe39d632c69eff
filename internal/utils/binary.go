package utils

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// binarySniffLength defines the maximum number of bytes read when detecting binary content.
const binarySniffLength = 8192

// nonPrintableRatioLimit is the fraction of non-printable bytes above which
// strict detection classifies content as binary.
const nonPrintableRatioLimit = 0.30

const textMimeTypePrefix = "text"

// DetectMimeTypeByName guesses a MIME type from the file name extension alone.
// An empty string is returned when the extension is unknown.
func DetectMimeTypeByName(fileName string) string {
	return mime.TypeByExtension(filepath.Ext(fileName))
}

// IsLikelyBinaryFile reports whether the file at filePath looks binary.
// The MIME type guessed from the name rejects known non-text types without
// opening the file. Otherwise a bounded prefix of the content is read: any
// null byte classifies the file as binary, and in strict mode so does a
// fraction of bytes outside printable ASCII (plus tab, newline, and carriage
// return) above nonPrintableRatioLimit. Files that cannot be opened or read
// are reported as binary so the caller skips them.
func IsLikelyBinaryFile(filePath string, strict bool) bool {
	mimeType := DetectMimeTypeByName(filePath)
	if mimeType != "" && !strings.HasPrefix(mimeType, textMimeTypePrefix) {
		return true
	}

	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return true
	}
	defer fileHandle.Close()

	buffer := make([]byte, binarySniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return true
	}
	return IsBinaryContent(buffer[:bytesRead], strict)
}

// IsBinaryContent applies the null-byte and printable-ratio heuristics to data.
func IsBinaryContent(data []byte, strict bool) bool {
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	if strict && len(data) > 0 {
		nonPrintableCount := 0
		for _, byteValue := range data {
			if byteValue == '\t' || byteValue == '\n' || byteValue == '\r' {
				continue
			}
			if byteValue < 32 || byteValue > 126 {
				nonPrintableCount++
			}
		}
		if float64(nonPrintableCount)/float64(len(data)) > nonPrintableRatioLimit {
			return true
		}
	}
	return false
}
