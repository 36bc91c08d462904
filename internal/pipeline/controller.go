// internal/pipeline/controller.go
// Package pipeline owns the lifecycle of a single pipeline run and drives the
// agent-status and conversation stores as the run progresses.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mwhite/nexus/internal/agents"
	"github.com/mwhite/nexus/internal/api"
	"github.com/mwhite/nexus/internal/conversation"
)

// State is the controller's run lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// defaultCooldown is how long terminal agent statuses stay visible before the
// agents return to idle.
const defaultCooldown = 3 * time.Second

// genericRunError is the fallback error text when a failure carries no message.
const genericRunError = "an error occurred while running the pipeline"

// Service is the slice of the API client the controller needs.
type Service interface {
	RunPipeline(ctx context.Context, req api.PipelineRequest) (*api.PipelineResponse, error)
}

// Snapshot is a point-in-time view of the controller state.
type Snapshot struct {
	State State
	Err   string
	Data  *api.PipelineResponse
}

// Controller tracks one user-initiated pipeline run at a time. A new Run
// supersedes any in-flight one: the superseded run's result is discarded when
// it eventually settles, and its pending cooldown is cancelled. The in-flight
// network request itself is not aborted.
type Controller struct {
	mu            sync.Mutex
	svc           Service
	agents        *agents.Store
	conv          *conversation.Store
	cooldown      time.Duration
	state         State
	errMsg        string
	data          *api.PipelineResponse
	generation    uint64
	cooldownTimer *time.Timer
}

// New constructs a controller bound to the given stores. A non-positive
// cooldown selects the default.
func New(svc Service, agentStore *agents.Store, convStore *conversation.Store, cooldown time.Duration) *Controller {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Controller{
		svc:      svc,
		agents:   agentStore,
		conv:     convStore,
		cooldown: cooldown,
		state:    StateIdle,
	}
}

// Run executes the pipeline for req. On success the response is stored and
// returned; on failure nil is returned and the error is observable only
// through Snapshot. A run superseded by a newer Run or Reset returns nil
// without touching any store.
func (c *Controller) Run(ctx context.Context, req api.PipelineRequest) *api.PipelineResponse {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.stopCooldownLocked()
	c.state = StateRunning
	c.errMsg = ""
	c.data = nil
	c.mu.Unlock()

	c.conv.SetSelectedCompany(req.CompanyName)
	c.conv.SetSelectedDomain(req.Domain)
	c.conv.AddMessage(conversation.MessageInput{
		Role:    conversation.RoleUser,
		Content: UserMessage(req),
	})

	c.agents.SetAgentStatus(agents.Orchestrator, agents.StatusRunning)
	c.agents.AddActivity(agents.ActivityInput{
		AgentType: agents.Orchestrator,
		Action:    "Starting pipeline analysis",
	})
	c.agents.SetAgentStatus(agents.Research, agents.StatusRunning)
	c.agents.AddActivity(agents.ActivityInput{
		AgentType: agents.Research,
		Action:    "Conducting market research",
	})

	resp, err := c.svc.RunPipeline(ctx, req)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = genericRunError
		}
		c.state = StateFailed
		c.errMsg = msg
		c.mu.Unlock()

		c.agents.SetAgentStatus(agents.Orchestrator, agents.StatusFailed)
		c.agents.AddActivity(agents.ActivityInput{
			AgentType: agents.Orchestrator,
			Action:    "Pipeline failed: " + msg,
		})
		c.conv.AddMessage(conversation.MessageInput{
			Role:    conversation.RoleAssistant,
			Content: FailureMessage(msg),
		})
		c.scheduleCooldown(gen)
		return nil
	}

	c.state = StateSucceeded
	c.data = resp
	c.mu.Unlock()

	c.applyOutcome(req, resp)
	c.scheduleCooldown(gen)
	return resp
}

// Reset unconditionally returns the controller to idle, discarding any tracked
// result and cancelling a pending cooldown. An in-flight run is superseded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.stopCooldownLocked()
	c.state = StateIdle
	c.errMsg = ""
	c.data = nil
}

// Snapshot returns the current lifecycle state, error text, and response.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Err: c.errMsg, Data: c.data}
}

// applyOutcome maps the response's section statuses onto the agent store and
// appends the synthesized summary to the transcript.
func (c *Controller) applyOutcome(req api.PipelineRequest, resp *api.PipelineResponse) {
	if resp.Sections.Research.Status == api.SectionCompleted {
		c.agents.SetAgentStatus(agents.Research, agents.StatusCompleted)
		c.agents.AddActivity(agents.ActivityInput{
			AgentType: agents.Research,
			Action:    "Research analysis complete",
		})
	} else {
		c.agents.SetAgentStatus(agents.Research, agents.StatusFailed)
	}

	c.agents.SetAgentStatus(agents.Product, sectionAgentStatus(resp.Sections.Product.Status))
	if resp.Sections.Product.Status == api.SectionCompleted {
		c.agents.AddActivity(agents.ActivityInput{
			AgentType: agents.Product,
			Action:    "Product strategy generated",
		})
	}

	c.agents.SetAgentStatus(agents.Marketing, sectionAgentStatus(resp.Sections.Marketing.Status))
	if resp.Sections.Marketing.Status == api.SectionCompleted {
		c.agents.AddActivity(agents.ActivityInput{
			AgentType: agents.Marketing,
			Action:    "Marketing strategy complete",
		})
	}

	if resp.Status == api.RunCompleted {
		c.agents.SetAgentStatus(agents.Orchestrator, agents.StatusCompleted)
	} else {
		c.agents.SetAgentStatus(agents.Orchestrator, agents.StatusFailed)
	}

	c.conv.AddMessage(conversation.MessageInput{
		Role:      conversation.RoleAssistant,
		Content:   RunSummary(req, resp),
		AgentType: agents.Orchestrator,
	})
	c.agents.AddActivity(agents.ActivityInput{
		AgentType: agents.Orchestrator,
		Action:    "Report generated: " + shortReportID(resp.ReportID),
	})
}

// sectionAgentStatus maps a section outcome to the owning agent's status.
// A skipped section leaves its agent idle rather than marking it failed.
func sectionAgentStatus(status api.SectionState) agents.AgentStatus {
	switch status {
	case api.SectionCompleted:
		return agents.StatusCompleted
	case api.SectionSkipped:
		return agents.StatusIdle
	default:
		return agents.StatusFailed
	}
}

// scheduleCooldown arms the deferred idle sweep for the four driven agents.
// The critic is never part of the run sequence. The sweep is skipped if a
// newer run or reset has superseded gen by the time the timer fires.
func (c *Controller) scheduleCooldown(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.cooldownTimer = time.AfterFunc(c.cooldown, func() {
		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return
		}
		c.cooldownTimer = nil
		c.mu.Unlock()

		for _, agentType := range []agents.AgentType{
			agents.Orchestrator, agents.Research, agents.Product, agents.Marketing,
		} {
			c.agents.SetAgentStatus(agentType, agents.StatusIdle)
		}
	})
}

// stopCooldownLocked cancels a pending cooldown. Callers must hold c.mu.
func (c *Controller) stopCooldownLocked() {
	if c.cooldownTimer != nil {
		c.cooldownTimer.Stop()
		c.cooldownTimer = nil
	}
}
