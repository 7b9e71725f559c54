// Package transcript maintains the append-only courtroom record. Every
// statement made during a trial lands here in order; downstream consumers
// (jury context building, the debate watcher, export) only ever read.
package transcript

import (
	"sync"
	"time"

	"github.com/lexumbra/lexumbra/internal/agent"
)

// Message is a single entry in the courtroom record. Score is set only on
// juror entries, recording where the juror's verdict score landed when the
// statement was made.
type Message struct {
	AgentName string     `json:"agent_name"`
	AgentType agent.Role `json:"agent_type"`
	Content   string     `json:"content"`
	Score     *int       `json:"score,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Store is the trial's transcript. Entries are appended in courtroom order
// and never modified or removed. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty transcript.
func NewStore() *Store {
	return &Store{}
}

// Append records a statement and returns the stored message.
func (s *Store) Append(name string, role agent.Role, content string) Message {
	return s.append(Message{
		AgentName: name,
		AgentType: role,
		Content:   content,
	})
}

// AppendScored records a statement alongside the speaker's verdict score.
func (s *Store) AppendScored(name string, role agent.Role, content string, score int) Message {
	return s.append(Message{
		AgentName: name,
		AgentType: role,
		Content:   content,
		Score:     &score,
	})
}

func (s *Store) append(msg Message) Message {
	msg.Timestamp = time.Now().UTC()
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg
}

// Len returns the number of recorded statements.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// All returns a copy of the full record in order.
func (s *Store) All() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ByRole returns all statements made by agents of the given role, in order.
func (s *Store) ByRole(role agent.Role) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Message
	for _, m := range s.messages {
		if m.AgentType == role {
			out = append(out, m)
		}
	}
	return out
}

// LastByRole returns the most recent statement by an agent of the given
// role, or false when the role has not spoken.
func (s *Store) LastByRole(role agent.Role) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].AgentType == role {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

// Recent returns the last n statements in order. Fewer are returned when
// the record is shorter than n.
func (s *Store) Recent(n int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	if n > len(s.messages) {
		n = len(s.messages)
	}
	out := make([]Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// RecentByRoles returns the last n statements made by any of the given
// roles, in courtroom order.
func (s *Store) RecentByRoles(n int, roles ...agent.Role) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	var out []Message
	for i := len(s.messages) - 1; i >= 0 && len(out) < n; i-- {
		for _, role := range roles {
			if s.messages[i].AgentType == role {
				out = append(out, s.messages[i])
				break
			}
		}
	}
	// Reverse into courtroom order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
