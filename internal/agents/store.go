// internal/agents/store.go
package agents

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxActivities caps the activity log; the oldest entries are evicted first.
const maxActivities = 50

// Store holds the session-lifetime agent statuses and activity log. All
// mutation goes through its methods; snapshots returned to callers are copies.
type Store struct {
	mu           sync.Mutex
	agents       map[AgentType]Agent
	activities   []AgentActivity
	activeAgents []AgentType
}

var (
	instance *Store
	once     sync.Once
)

// GetInstance returns the process-wide store shared by the commands and the dashboard.
func GetInstance() *Store {
	once.Do(func() {
		instance = NewStore()
	})
	return instance
}

// NewStore creates an isolated store with all agents idle and an empty log.
func NewStore() *Store {
	return &Store{agents: defaults()}
}

// SetAgentStatus replaces one agent's status, leaving everything else untouched.
func (s *Store) SetAgentStatus(agentType AgentType, status AgentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, ok := s.agents[agentType]
	if !ok {
		return
	}
	agent.Status = status
	s.agents[agentType] = agent
}

// SetAllAgentsStatus overwrites every agent's status in one sweep.
func (s *Store) SetAllAgentsStatus(status AgentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for agentType, agent := range s.agents {
		agent.Status = status
		s.agents[agentType] = agent
	}
}

// ActivityInput is the caller-supplied part of an activity entry.
type ActivityInput struct {
	AgentType AgentType
	Action    string
	Details   string
}

// AddActivity prepends a new entry with a fresh id and timestamp, then trims
// the log to the most recent entries.
func (s *Store) AddActivity(input ActivityInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := AgentActivity{
		ID:        uuid.NewString(),
		AgentType: input.AgentType,
		Action:    input.Action,
		Timestamp: time.Now(),
		Details:   input.Details,
	}
	s.activities = append([]AgentActivity{entry}, s.activities...)
	if len(s.activities) > maxActivities {
		s.activities = s.activities[:maxActivities]
	}
}

// ClearActivities empties the log without touching agent statuses.
func (s *Store) ClearActivities() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = nil
}

// SetActiveAgents records which agents the UI should highlight.
func (s *Store) SetActiveAgents(types []AgentType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeAgents = append([]AgentType(nil), types...)
}

// ActiveAgents returns the highlighted agent set.
func (s *Store) ActiveAgents() []AgentType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AgentType(nil), s.activeAgents...)
}

// Agent returns a copy of one agent's current state.
func (s *Store) Agent(agentType AgentType) (Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	agent, ok := s.agents[agentType]
	return agent, ok
}

// Agents returns copies of all five agents in display order.
func (s *Store) Agents() []Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Agent, 0, len(DisplayOrder))
	for _, agentType := range DisplayOrder {
		out = append(out, s.agents[agentType])
	}
	return out
}

// Activities returns a newest-first copy of the activity log.
func (s *Store) Activities() []AgentActivity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AgentActivity(nil), s.activities...)
}

// Reset restores the default descriptors, empties the log, and clears the
// active-agent selection.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = defaults()
	s.activities = nil
	s.activeAgents = nil
}
