// internal/api/types.go
package api

import "time"

// RunStatus is the overall outcome of a pipeline run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunPartial   RunStatus = "partial"
	RunFailed    RunStatus = "failed"
)

// SectionState is the outcome of a single pipeline section.
type SectionState string

const (
	SectionCompleted SectionState = "completed"
	SectionFailed    SectionState = "failed"
	SectionSkipped   SectionState = "skipped"
)

// AvailableDomains is the fixed set of industry domains the service accepts.
var AvailableDomains = []string{
	"XR",
	"AI",
	"Robotics",
	"Healthcare",
	"Finance",
	"Gaming",
	"Education",
	"Automotive",
	"Retail",
	"Manufacturing",
}

// PipelineRequest is the input to the full agent pipeline.
type PipelineRequest struct {
	CompanyName    string `json:"company_name"`
	PartnerCompany string `json:"partner_company"`
	Domain         string `json:"domain"`
}

// SectionStatus describes one section of a pipeline report. Content is
// meaningful when the section completed; Error when it failed; neither when it
// was skipped.
type SectionStatus struct {
	Status  SectionState `json:"status"`
	Content string       `json:"content"`
	Error   *string      `json:"error"`
}

// PipelineSections groups the per-agent sections of a report.
type PipelineSections struct {
	Research  SectionStatus `json:"research"`
	Product   SectionStatus `json:"product"`
	Marketing SectionStatus `json:"marketing"`
}

// PipelineMetadata carries timing and token accounting for a run.
type PipelineMetadata struct {
	CreatedAt       time.Time `json:"created_at"`
	ExecutionTimeMS float64   `json:"execution_time_ms"`
	TokensUsed      int       `json:"tokens_used"`
}

// PipelineResponse is the result of a full pipeline execution.
type PipelineResponse struct {
	ReportID string           `json:"report_id"`
	Status   RunStatus        `json:"status"`
	Content  string           `json:"content"`
	Sections PipelineSections `json:"sections"`
	Metadata PipelineMetadata `json:"metadata"`
}

// AgentResponse is the result of a single-agent execution endpoint.
type AgentResponse struct {
	Status          string  `json:"status"`
	Content         string  `json:"content"`
	AgentName       string  `json:"agent_name"`
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	ErrorMessage    *string `json:"error_message"`
}

// ResearchAgentRequest is the input to the research agent endpoint.
type ResearchAgentRequest struct {
	CompanyName    string `json:"company_name"`
	PartnerCompany string `json:"partner_company"`
	Domain         string `json:"domain"`
}

// ProductAgentRequest is the input to the product agent endpoint.
type ProductAgentRequest struct {
	ResearchReport string `json:"research_report"`
	CompanyName    string `json:"company_name"`
	Domain         string `json:"domain"`
}

// MarketingAgentRequest is the input to the marketing agent endpoint.
type MarketingAgentRequest struct {
	ProductReport  string `json:"product_report"`
	ResearchReport string `json:"research_report"`
	CompanyName    string `json:"company_name"`
	Domain         string `json:"domain"`
}

// ReportSummary is one row of the stored-report listing.
type ReportSummary struct {
	ReportID        string    `json:"report_id"`
	CompanyName     string    `json:"company_name"`
	PartnerCompany  string    `json:"partner_company"`
	Domain          string    `json:"domain"`
	Status          RunStatus `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	ExecutionTimeMS float64   `json:"execution_time_ms"`
}

// ReportDetail is a fully hydrated stored report.
type ReportDetail struct {
	ReportID        string           `json:"report_id"`
	CompanyName     string           `json:"company_name"`
	PartnerCompany  string           `json:"partner_company"`
	Domain          string           `json:"domain"`
	Status          RunStatus        `json:"status"`
	Content         string           `json:"content"`
	Sections        PipelineSections `json:"sections"`
	CreatedAt       time.Time        `json:"created_at"`
	ExecutionTimeMS float64          `json:"execution_time_ms"`
	TokensUsed      int              `json:"tokens_used"`
}

// ReportListResponse is one page of stored reports.
type ReportListResponse struct {
	Reports []ReportSummary `json:"reports"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// HealthCheck reports the state of each service dependency.
type HealthCheck struct {
	LLMAPI  string `json:"llm_api"`
	Storage string `json:"storage"`
	Memory  string `json:"memory"`
}

// HealthResponse is the detailed health endpoint payload.
type HealthResponse struct {
	Status  string      `json:"status"`
	Version string      `json:"version"`
	Uptime  float64     `json:"uptime"`
	Checks  HealthCheck `json:"checks"`
}
