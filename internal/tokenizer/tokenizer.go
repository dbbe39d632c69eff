// Package tokenizer provides token-count estimation strategies for text
// content. The precise strategy wraps a tiktoken encoding; the heuristic
// strategy approximates one token per four characters. The strategy is chosen
// once at startup and injected wherever counts are needed.
package tokenizer

import (
	"errors"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	heuristicCounterName   = "heuristic"
	heuristicBytesPerToken = 4
)

// NewCounter returns a Counter for the requested model together with the name
// of the strategy actually selected. The tiktoken encoding for the model is
// preferred; when it is unavailable the default encoding is tried, and when
// that also fails the heuristic counter is returned.
func NewCounter(model string) (Counter, string) {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = defaultModel
	}
	lowerModel := strings.ToLower(trimmedModel)

	encoding, encodingError := tiktoken.EncodingForModel(lowerModel)
	if encodingError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: lowerModel}, lowerModel
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError == nil && fallbackEncoding != nil {
		return encodingCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName
	}
	return NewHeuristicCounter(), heuristicCounterName
}

// NewHeuristicCounter returns the approximate counter used when no precise
// tokenizer is available.
func NewHeuristicCounter() Counter {
	return heuristicCounter{}
}

type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}

// heuristicCounter approximates one token per four characters with a minimum
// of one token for any input.
type heuristicCounter struct{}

func (heuristicCounter) Name() string {
	return heuristicCounterName
}

func (heuristicCounter) CountString(input string) (int, error) {
	tokenCount := len(input) / heuristicBytesPerToken
	if tokenCount < 1 {
		tokenCount = 1
	}
	return tokenCount, nil
}
