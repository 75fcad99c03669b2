package service

import "errors"

// ErrPollInProgress rejects a createPoll while students are still
// answering the current question. Surfaced to the requesting
// connection only; session state is unchanged.
var ErrPollInProgress = errors.New("cannot create new poll until all students answer")
