package output

import (
	"sort"

	"catrepo/internal/types"
)

// applyTokenBudget enforces a hard token cap on the dump. When the precise
// total exceeds maxTokens, file contents are dropped largest-first until the
// total fits; the affected entries stay listed and are marked truncated. A
// non-positive budget disables enforcement.
func applyTokenBudget(entries []types.FileOutput, maxTokens int) {
	if maxTokens <= 0 {
		return
	}
	totalTokens := 0
	for _, entry := range entries {
		totalTokens += entry.Tokens
	}
	if totalTokens <= maxTokens {
		return
	}

	order := make([]int, len(entries))
	for index := range order {
		order[index] = index
	}
	sort.SliceStable(order, func(left, right int) bool {
		return entries[order[left]].Tokens > entries[order[right]].Tokens
	})

	for _, entryIndex := range order {
		if totalTokens <= maxTokens {
			break
		}
		entry := &entries[entryIndex]
		if entry.Tokens == 0 && entry.Content == "" {
			continue
		}
		totalTokens -= entry.Tokens
		entry.Tokens = 0
		entry.Content = ""
		entry.Truncated = true
	}
}
