package tokenizer

import (
	"errors"

	"catrepo/internal/loader"
)

// CountFile loads the text of the file at filePath and estimates its token
// count with counter.
func CountFile(counter Counter, filePath string) (int, error) {
	if counter == nil {
		return 0, errors.New("nil tokenizer counter")
	}
	text, loadError := loader.LoadText(filePath)
	if loadError != nil {
		return 0, loadError
	}
	return counter.CountString(text)
}

// TotalTokens sums the estimated token counts for the files at paths.
// Unreadable files contribute nothing to the total.
func TotalTokens(counter Counter, paths []string) int {
	total := 0
	for _, filePath := range paths {
		tokens, countError := CountFile(counter, filePath)
		if countError != nil {
			continue
		}
		total += tokens
	}
	return total
}
