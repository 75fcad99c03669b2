package service

import "classpoll/internal/model"

// Roster tracks connected students in join order, keyed by connection id.
// It is not safe for concurrent use on its own; the PollService serializes
// access.
type Roster struct {
	participants []model.Participant
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Join adds a participant and reports true, or updates the name in
// place and reports false when the connection id is already present.
// No duplicate entry is ever created.
func (r *Roster) Join(id, name string) (model.Participant, bool) {
	for i := range r.participants {
		if r.participants[i].ID == id {
			r.participants[i].Name = name
			return r.participants[i], false
		}
	}
	p := model.Participant{ID: id, Name: name}
	r.participants = append(r.participants, p)
	return p, true
}

// Remove deletes the participant with the given id. Removing an unknown
// id is a no-op.
func (r *Roster) Remove(id string) {
	for i := range r.participants {
		if r.participants[i].ID == id {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return
		}
	}
}

// Has reports whether the id is a current member.
func (r *Roster) Has(id string) bool {
	for i := range r.participants {
		if r.participants[i].ID == id {
			return true
		}
	}
	return false
}

// List returns the participants in insertion order.
func (r *Roster) List() []model.Participant {
	out := make([]model.Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// Size returns the number of participants.
func (r *Roster) Size() int {
	return len(r.participants)
}
