package service

// AnswerSet maps connection ids to the chosen option, preserving the
// order in which participants first answered. Resubmission overwrites
// the option but keeps the original position (last write wins).
type AnswerSet struct {
	byID  map[string]string
	order []string
}

// NewAnswerSet creates an empty answer set.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{byID: make(map[string]string)}
}

// Set records or overwrites a participant's answer.
func (a *AnswerSet) Set(id, answer string) {
	if _, ok := a.byID[id]; !ok {
		a.order = append(a.order, id)
	}
	a.byID[id] = answer
}

// Get returns the recorded answer for a participant.
func (a *AnswerSet) Get(id string) (string, bool) {
	answer, ok := a.byID[id]
	return answer, ok
}

// Delete removes a participant's answer, e.g. after a disconnect.
func (a *AnswerSet) Delete(id string) {
	if _, ok := a.byID[id]; !ok {
		return
	}
	delete(a.byID, id)
	for i := range a.order {
		if a.order[i] == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of recorded answers.
func (a *AnswerSet) Len() int {
	return len(a.byID)
}

// Options returns the chosen options in first-submission order.
func (a *AnswerSet) Options() []string {
	out := make([]string, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.byID[id])
	}
	return out
}

// Reset clears all recorded answers.
func (a *AnswerSet) Reset() {
	a.byID = make(map[string]string)
	a.order = nil
}
