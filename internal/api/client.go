// internal/api/client.go
// Package api provides the HTTP client for the collaboration-analysis pipeline service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mwhite/nexus/internal/appconfig"
	"github.com/mwhite/nexus/internal/logging"
)

const apiKeyHeader = "X-API-Key"

// Client issues requests against the pipeline service. Versioned endpoints
// (/api/v1/...) use a long timeout sized for pipeline execution; health probes
// use a short one.
type Client struct {
	baseURL        string
	apiKey         string
	pipelineClient *http.Client
	healthClient   *http.Client
}

// New constructs a Client from the application configuration. The client
// timeouts bound the whole exchange including body reads.
func New(cfg *appconfig.Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL(),
		apiKey:  cfg.APIKey,
		pipelineClient: &http.Client{
			Timeout:   cfg.PipelineRequestTimeout(),
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		healthClient: &http.Client{
			Timeout:   cfg.HealthRequestTimeout(),
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
	}
}

// RunPipeline executes the full agent pipeline. The request is validated
// client-side before anything is sent.
func (c *Client) RunPipeline(ctx context.Context, req PipelineRequest) (*PipelineResponse, error) {
	if err := ValidatePipelineRequest(req); err != nil {
		return nil, err
	}
	var resp PipelineResponse
	if err := c.postJSON(ctx, "/run-pipeline", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunResearchAgent executes the research agent in isolation.
func (c *Client) RunResearchAgent(ctx context.Context, req ResearchAgentRequest) (*AgentResponse, error) {
	var resp AgentResponse
	if err := c.postJSON(ctx, "/research-agent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunProductAgent executes the product agent against an existing research report.
func (c *Client) RunProductAgent(ctx context.Context, req ProductAgentRequest) (*AgentResponse, error) {
	var resp AgentResponse
	if err := c.postJSON(ctx, "/product-agent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunMarketingAgent executes the marketing agent against existing reports.
func (c *Client) RunMarketingAgent(ctx context.Context, req MarketingAgentRequest) (*AgentResponse, error) {
	var resp AgentResponse
	if err := c.postJSON(ctx, "/marketing-agent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListReports fetches one page of stored reports.
func (c *Client) ListReports(ctx context.Context, page, limit int, sort, order string) (*ReportListResponse, error) {
	if sort == "" {
		sort = "created_at"
	}
	if order == "" {
		order = "desc"
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("sort", sort)
	query.Set("order", order)

	var resp ReportListResponse
	if err := c.getJSON(ctx, "/reports?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReport fetches a stored report by id. An unknown id surfaces as an
// *APIError satisfying IsNotFound.
func (c *Client) GetReport(ctx context.Context, reportID string) (*ReportDetail, error) {
	var resp ReportDetail
	if err := c.getJSON(ctx, "/reports/"+url.PathEscape(reportID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadReport fetches the rendered report as raw bytes; the content type is
// opaque to the client.
func (c *Client) DownloadReport(ctx context.Context, reportID string) ([]byte, error) {
	endpoint := "/reports/" + url.PathEscape(reportID) + "/download"
	resp, err := c.doVersioned(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read download body: %w", err)
	}
	return body, nil
}

// DeleteReport removes a stored report. Deleting an already-deleted id yields
// the same not-found error as any other unknown id.
func (c *Client) DeleteReport(ctx context.Context, reportID string) error {
	resp, err := c.doVersioned(ctx, http.MethodDelete, "/reports/"+url.PathEscape(reportID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// GetHealth fetches the detailed health status from the unversioned root.
func (c *Client) GetHealth(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRoot(ctx, "/health")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.errorFromResponse(resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read health body: %w", err)
	}
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "malformed health payload: " + err.Error()}
	}
	return &health, nil
}

// CheckLive reports service liveness. Probe failures of any kind read as false.
func (c *Client) CheckLive(ctx context.Context) bool {
	return c.probe(ctx, "/health/live")
}

// CheckReady reports service readiness. Probe failures of any kind read as false.
func (c *Client) CheckReady(ctx context.Context) bool {
	return c.probe(ctx, "/health/ready")
}

func (c *Client) probe(ctx context.Context, endpoint string) bool {
	resp, err := c.doRoot(ctx, endpoint)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("api: marshal request: %w", err)
	}
	resp, err := c.doVersioned(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	return c.decodeResponse(resp, out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	resp, err := c.doVersioned(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.decodeResponse(resp, out)
}

// doVersioned issues a request against the /api/v1 base, attaching the API key
// header when one is configured.
func (c *Client) doVersioned(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	fullURL := c.baseURL + "/api/v1" + endpoint
	logging.LogRequest("NEXUS->API", c.hostIdentifier(), endpoint, body)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.pipelineClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, endpoint, err)
	}
	return resp, nil
}

// doRoot issues a GET against the unversioned base with the short health timeout.
func (c *Client) doRoot(ctx context.Context, endpoint string) (*http.Response, error) {
	logging.LogRequest("NEXUS->API", c.hostIdentifier(), endpoint, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: GET %s: %w", endpoint, err)
	}
	return resp, nil
}

// decodeResponse strictly decodes a 2xx JSON body into out; anything else is
// surfaced as an *APIError so malformed payloads fail fast at the boundary.
func (c *Client) decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response body: %w", err)
	}
	logging.LogRequest("API->NEXUS", c.hostIdentifier(), resp.Request.URL.Path, body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromBody(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "malformed response payload: " + err.Error()}
	}
	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	logging.LogRequest("API->NEXUS", c.hostIdentifier(), resp.Request.URL.Path, body)
	return errorFromBody(resp.StatusCode, body)
}

// errorFromBody maps a non-2xx body to an *APIError, preferring the server's
// structured message over the raw payload.
func errorFromBody(statusCode int, body []byte) error {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return &APIError{StatusCode: statusCode, ErrorType: parsed.Error, Message: parsed.Message}
	}
	// FastAPI-style {"detail": "..."} fallback.
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &APIError{StatusCode: statusCode, Message: detail.Detail}
	}
	msg := strings.TrimSpace(string(body))
	return &APIError{StatusCode: statusCode, Message: msg}
}

func (c *Client) hostIdentifier() string {
	if parsed, err := url.Parse(c.baseURL); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return c.baseURL
}
