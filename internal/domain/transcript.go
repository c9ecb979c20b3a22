package domain

import (
	"time"
)

// Sender identifies who produced a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single transcript entry.
type Message struct {
	Text   string    `json:"text"`
	Sender Sender    `json:"sender"`
	SentAt time.Time `json:"sent_at"`
}

// Transcript is the ordered, append-only log of exchanged messages. It is
// display-oriented and never authoritative for planning logic. Messages do
// not strictly alternate: a failed turn appends a bot error notice without an
// intervening user message.
type Transcript struct {
	messages []Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message stamped with the current time.
func (t *Transcript) Append(text string, sender Sender) {
	t.messages = append(t.messages, Message{
		Text:   text,
		Sender: sender,
		SentAt: time.Now().UTC(),
	})
}

// Messages returns a copy of the log; callers cannot mutate history.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int { return len(t.messages) }

// Last returns the most recent message, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
