// internal/agents/store_test.go
package agents

import (
	"fmt"
	"testing"
)

func TestSetAgentStatusTouchesOnlyOneAgent(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetAgentStatus(Research, StatusRunning)

	agent, ok := store.Agent(Research)
	if !ok || agent.Status != StatusRunning {
		t.Fatalf("research status: got %q", agent.Status)
	}
	for _, other := range []AgentType{Product, Marketing, Critic, Orchestrator} {
		a, _ := store.Agent(other)
		if a.Status != StatusIdle {
			t.Errorf("%s status should stay idle, got %q", other, a.Status)
		}
	}
	if len(store.Activities()) != 0 {
		t.Error("status change must not touch the activity log")
	}
}

func TestSetAgentStatusUnknownTypeIsNoop(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetAgentStatus(AgentType("ghost"), StatusRunning)
	if len(store.Agents()) != 5 {
		t.Fatalf("agent cardinality must stay 5, got %d", len(store.Agents()))
	}
}

func TestSetAllAgentsStatus(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetAllAgentsStatus(StatusPending)
	for _, agent := range store.Agents() {
		if agent.Status != StatusPending {
			t.Errorf("%s status: got %q", agent.Type, agent.Status)
		}
	}
}

func TestActivityLogCapAndOrder(t *testing.T) {
	t.Parallel()

	store := NewStore()
	for i := 0; i < 60; i++ {
		store.AddActivity(ActivityInput{AgentType: Research, Action: fmt.Sprintf("step %d", i)})
	}

	activities := store.Activities()
	if len(activities) != 50 {
		t.Fatalf("activity log length: got %d want 50", len(activities))
	}
	// Newest first; the 10 oldest entries (0-9) were evicted.
	if activities[0].Action != "step 59" {
		t.Errorf("newest entry: got %q", activities[0].Action)
	}
	if activities[49].Action != "step 10" {
		t.Errorf("oldest retained entry: got %q", activities[49].Action)
	}
	for _, a := range activities {
		if a.ID == "" {
			t.Fatal("activity id must be assigned")
		}
		if a.Timestamp.IsZero() {
			t.Fatal("activity timestamp must be assigned")
		}
	}
}

func TestClearActivitiesKeepsStatuses(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetAgentStatus(Orchestrator, StatusRunning)
	store.AddActivity(ActivityInput{AgentType: Orchestrator, Action: "Starting pipeline analysis"})

	store.ClearActivities()

	if len(store.Activities()) != 0 {
		t.Error("activities should be empty after clear")
	}
	agent, _ := store.Agent(Orchestrator)
	if agent.Status != StatusRunning {
		t.Errorf("orchestrator status should survive clear, got %q", agent.Status)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetAllAgentsStatus(StatusFailed)
	store.AddActivity(ActivityInput{AgentType: Critic, Action: "noted"})
	store.SetActiveAgents([]AgentType{Research, Product})

	store.Reset()

	for _, agent := range store.Agents() {
		if agent.Status != StatusIdle {
			t.Errorf("%s status after reset: got %q", agent.Type, agent.Status)
		}
		if agent.Name == "" || agent.Color == "" {
			t.Errorf("%s descriptor fields must be restored", agent.Type)
		}
	}
	if len(store.Activities()) != 0 {
		t.Error("activities should be empty after reset")
	}
	if len(store.ActiveAgents()) != 0 {
		t.Error("active agents should be cleared after reset")
	}
}

func TestAgentsReturnsDisplayOrder(t *testing.T) {
	t.Parallel()

	store := NewStore()
	got := store.Agents()
	want := []AgentType{Orchestrator, Research, Product, Marketing, Critic}
	for i, agentType := range want {
		if got[i].Type != agentType {
			t.Fatalf("display order[%d]: got %q want %q", i, got[i].Type, agentType)
		}
	}
}
