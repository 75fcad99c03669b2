package service

import "classpoll/internal/model"

// Aggregate tabulates the answer set into one entry per distinct option
// that received at least one vote. Entries are ordered by first
// occurrence in submission order, not by the question's option order;
// callers needing canonical option order must cross-reference the
// question.
func Aggregate(answers *AnswerSet) []model.ResultEntry {
	counts := make(map[string]int)
	var order []string
	for _, opt := range answers.Options() {
		if counts[opt] == 0 {
			order = append(order, opt)
		}
		counts[opt]++
	}

	results := make([]model.ResultEntry, 0, len(order))
	for _, opt := range order {
		results = append(results, model.ResultEntry{Option: opt, Count: counts[opt]})
	}
	return results
}
