package services

import "sort"

// RankedItem pairs an input with its computed priority result.
type RankedItem struct {
	Input  PriorityInput
	Result PriorityResult
}

// SortByPriority scores every item and returns a new slice ordered by score
// descending. The sort is stable, so items with equal scores keep their
// relative input order, and the input slice is never mutated. The clock is
// sampled once for the whole batch so every item is scored against the same
// instant.
func (e *Engine) SortByPriority(items []PriorityInput) ([]RankedItem, error) {
	now := e.now()

	ranked := make([]RankedItem, 0, len(items))
	for _, item := range items {
		result, err := e.scoreAt(item, now)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedItem{Input: item, Result: result})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})

	return ranked, nil
}
