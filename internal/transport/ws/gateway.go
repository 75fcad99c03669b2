package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"classpoll/internal/model"
	"classpoll/internal/service"
)

// Gateway maps inbound client events to session operations. Each event
// type has a declared payload shape; malformed payloads are rejected at
// this boundary with a targeted error, without touching session state
// and without dropping the connection.
type Gateway struct {
	poll             *service.PollService
	sender           service.Broadcaster
	defaultTimeLimit int

	handlers map[MessageType]func(connID string, payload json.RawMessage) error
}

// NewGateway builds the dispatch table.
func NewGateway(poll *service.PollService, sender service.Broadcaster, defaultTimeLimit int) *Gateway {
	g := &Gateway{
		poll:             poll,
		sender:           sender,
		defaultTimeLimit: defaultTimeLimit,
	}
	g.handlers = map[MessageType]func(string, json.RawMessage) error{
		MsgJoinAsTeacher:  g.handleJoinAsTeacher,
		MsgJoinAsStudent:  g.handleJoinAsStudent,
		MsgCreatePoll:     g.handleCreatePoll,
		MsgSubmitAnswer:   g.handleSubmitAnswer,
		MsgRemoveStudent:  g.handleRemoveStudent,
		MsgResetPoll:      g.handleResetPoll,
		MsgGetPollHistory: g.handleGetPollHistory,
		MsgChatMessage:    g.handleChatMessage,
	}
	return g
}

// Dispatch routes one inbound frame to its handler. Handler errors are
// surfaced to the sending connection only.
func (g *Gateway) Dispatch(connID string, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("Invalid message from %s: %v", connID, err)
		g.sendError(connID, "invalid message")
		return
	}

	handler, ok := g.handlers[msg.Type]
	if !ok {
		log.Printf("Unknown message type %q from %s", msg.Type, connID)
		g.sendError(connID, fmt.Sprintf("unknown message type %q", msg.Type))
		return
	}

	if err := handler(connID, msg.Payload); err != nil {
		log.Printf("Rejected %s from %s: %v", msg.Type, connID, err)
		g.sendError(connID, err.Error())
	}
}

// HandleDisconnect runs the system-initiated removal path for a closed
// connection.
func (g *Gateway) HandleDisconnect(connID string) {
	g.poll.HandleDisconnect(connID)
}

type joinAsStudentPayload struct {
	Name string `json:"name"`
}

type createPollPayload struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	TimeLimit int      `json:"timeLimit"`
}

type submitAnswerPayload struct {
	Answer string `json:"answer"`
}

type removeStudentPayload struct {
	StudentID string `json:"studentId"`
}

type chatMessagePayload struct {
	Text       string `json:"text"`
	SenderName string `json:"senderName"`
}

func (g *Gateway) handleJoinAsTeacher(connID string, _ json.RawMessage) error {
	g.poll.JoinTeacher(connID)
	return nil
}

func (g *Gateway) handleJoinAsStudent(connID string, payload json.RawMessage) error {
	var p joinAsStudentPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return err
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	g.poll.JoinStudent(connID, p.Name)
	return nil
}

func (g *Gateway) handleCreatePoll(connID string, payload json.RawMessage) error {
	var p createPollPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return err
	}
	if p.TimeLimit == 0 {
		p.TimeLimit = g.defaultTimeLimit
	}

	q := model.Question{
		Text:             p.Question,
		Options:          p.Options,
		TimeLimitSeconds: p.TimeLimit,
	}
	if err := q.Validate(); err != nil {
		return err
	}
	return g.poll.CreatePoll(q)
}

func (g *Gateway) handleSubmitAnswer(connID string, payload json.RawMessage) error {
	var p submitAnswerPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return err
	}
	if p.Answer == "" {
		return errors.New("answer is required")
	}
	// Stale submissions are discarded inside the session, not surfaced.
	g.poll.SubmitAnswer(connID, p.Answer)
	return nil
}

func (g *Gateway) handleRemoveStudent(connID string, payload json.RawMessage) error {
	var p removeStudentPayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return err
	}
	if p.StudentID == "" {
		return errors.New("studentId is required")
	}
	g.poll.RemoveStudent(p.StudentID)
	return nil
}

func (g *Gateway) handleResetPoll(connID string, _ json.RawMessage) error {
	g.poll.ResetPoll()
	return nil
}

func (g *Gateway) handleGetPollHistory(connID string, _ json.RawMessage) error {
	g.sender.SendTo(connID, service.EventPollHistory, g.poll.History())
	return nil
}

func (g *Gateway) handleChatMessage(connID string, payload json.RawMessage) error {
	var p chatMessagePayload
	if err := unmarshalPayload(payload, &p); err != nil {
		return err
	}
	if p.Text == "" {
		return errors.New("text is required")
	}

	// Stateless fan-out; the sender id is attached server-side.
	g.sender.BroadcastAll(service.EventChatMessage, model.ChatMessage{
		Text:       p.Text,
		SenderName: p.SenderName,
		SenderID:   connID,
	})
	return nil
}

func (g *Gateway) sendError(connID, message string) {
	g.sender.SendTo(connID, service.EventError, model.ErrorMessage{Message: message})
}

func unmarshalPayload(payload json.RawMessage, v interface{}) error {
	if len(payload) == 0 {
		return errors.New("payload is required")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
