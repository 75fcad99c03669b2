package service

// Outbound event names (server -> client).
const (
	EventNewQuestion        = "newQuestion"
	EventTimeUpdate         = "timeUpdate"
	EventUpdateAnswers      = "updateAnswers"
	EventShowResults        = "showResults"
	EventUpdateParticipants = "updateParticipants"
	EventKickedOut          = "kickedOut"
	EventChatMessage        = "chatMessage"
	EventPollReset          = "pollReset"
	EventPollHistory        = "pollHistory"
	EventJoined             = "joined"
	EventTeacherJoined      = "teacherJoined"
	EventError              = "error"
)
