// internal/agents/agents.go
// Package agents tracks the visual status of the five pipeline agents and a
// bounded log of their recent activity.
package agents

import "time"

// AgentType identifies one of the five fixed agents.
type AgentType string

const (
	Research     AgentType = "research"
	Product      AgentType = "product"
	Marketing    AgentType = "marketing"
	Critic       AgentType = "critic"
	Orchestrator AgentType = "orchestrator"
)

// AgentStatus is the display status of an agent.
type AgentStatus string

const (
	StatusIdle      AgentStatus = "idle"
	StatusPending   AgentStatus = "pending"
	StatusRunning   AgentStatus = "running"
	StatusCompleted AgentStatus = "completed"
	StatusError     AgentStatus = "error"
	StatusFailed    AgentStatus = "failed"
)

// Agent is one named agent with its fixed descriptor fields and current status.
type Agent struct {
	ID          string
	Type        AgentType
	Name        string
	Description string
	Status      AgentStatus
	Color       string
	Icon        string
}

// AgentActivity is one entry in the activity log.
type AgentActivity struct {
	ID        string
	AgentType AgentType
	Action    string
	Timestamp time.Time
	Details   string
}

// DisplayOrder is the stable ordering used wherever agents are listed.
var DisplayOrder = []AgentType{Orchestrator, Research, Product, Marketing, Critic}

// defaults returns the five agent descriptors in their initial idle state.
func defaults() map[AgentType]Agent {
	return map[AgentType]Agent{
		Research: {
			ID:          "research",
			Type:        Research,
			Name:        "Research Agent",
			Description: "Market research, competitive analysis, and data gathering",
			Status:      StatusIdle,
			Color:       "#3B82F6",
			Icon:        "search",
		},
		Product: {
			ID:          "product",
			Type:        Product,
			Name:        "Product Agent",
			Description: "Product ideation, USP definition, and feature planning",
			Status:      StatusIdle,
			Color:       "#10B981",
			Icon:        "package",
		},
		Marketing: {
			ID:          "marketing",
			Type:        Marketing,
			Name:        "Marketing Agent",
			Description: "GTM strategy, regional insights, and sales positioning",
			Status:      StatusIdle,
			Color:       "#F97316",
			Icon:        "megaphone",
		},
		Critic: {
			ID:          "critic",
			Type:        Critic,
			Name:        "Critic Agent",
			Description: "Quality assurance, validation, and improvement suggestions",
			Status:      StatusIdle,
			Color:       "#A855F7",
			Icon:        "eye",
		},
		Orchestrator: {
			ID:          "orchestrator",
			Type:        Orchestrator,
			Name:        "Orchestrator",
			Description: "Coordinates all agents and manages the workflow",
			Status:      StatusIdle,
			Color:       "#00D4FF",
			Icon:        "network",
		},
	}
}
