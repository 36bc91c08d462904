// internal/conversation/store.go
// Package conversation keeps the append-only transcript of pipeline requests
// and synthesized responses.
package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwhite/nexus/internal/agents"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// defaultDomain is the pre-selected industry domain for a fresh session.
const defaultDomain = "XR"

// ChatMessage is one transcript entry. Insertion order is chronological order;
// entries are never reordered or evicted.
type ChatMessage struct {
	ID          string
	Role        Role
	Content     string
	Timestamp   time.Time
	AgentType   agents.AgentType
	IsStreaming bool
}

// MessageInput is the caller-supplied part of a message; id and timestamp are
// assigned on append.
type MessageInput struct {
	Role        Role
	Content     string
	AgentType   agents.AgentType
	IsStreaming bool
}

// Store is the session transcript plus the current company/domain selection.
type Store struct {
	mu              sync.Mutex
	messages        []ChatMessage
	selectedCompany string
	selectedDomain  string
}

var (
	instance *Store
	once     sync.Once
)

// GetInstance returns the process-wide conversation store.
func GetInstance() *Store {
	once.Do(func() {
		instance = NewStore()
	})
	return instance
}

// NewStore creates an isolated, empty conversation store.
func NewStore() *Store {
	return &Store{selectedDomain: defaultDomain}
}

// AddMessage assigns an id and timestamp and appends the message. The new
// message's id is returned so streaming updates can target it.
func (s *Store) AddMessage(input MessageInput) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := ChatMessage{
		ID:          uuid.NewString(),
		Role:        input.Role,
		Content:     input.Content,
		Timestamp:   time.Now(),
		AgentType:   input.AgentType,
		IsStreaming: input.IsStreaming,
	}
	s.messages = append(s.messages, msg)
	return msg.ID
}

// UpdateMessage replaces the content of an existing message and clears its
// streaming flag. An unknown id is a no-op.
func (s *Store) UpdateMessage(id, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Content = content
			s.messages[i].IsStreaming = false
			return
		}
	}
}

// Messages returns a chronological copy of the transcript.
func (s *Store) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage(nil), s.messages...)
}

// ClearMessages empties the transcript without touching the selection state.
func (s *Store) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// SetSelectedCompany records the company the UI currently targets.
func (s *Store) SetSelectedCompany(company string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCompany = company
}

// SelectedCompany returns the current company selection.
func (s *Store) SelectedCompany() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCompany
}

// SetSelectedDomain records the industry domain the UI currently targets.
func (s *Store) SetSelectedDomain(domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDomain = domain
}

// SelectedDomain returns the current domain selection.
func (s *Store) SelectedDomain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDomain
}

// Reset clears the transcript and restores the default selection.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.selectedCompany = ""
	s.selectedDomain = defaultDomain
}
