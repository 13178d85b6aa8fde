// Package dsf implements the coordination client against the delivery
// coordination system's JSON API.
package dsf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"datadelivery/internal/core/ports"
	"datadelivery/internal/pkg/errs"
)

const requestTimeout = 15 * time.Second

// Client calls the coordination system over HTTP.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a coordination client for the given base URL. The token
// is sent as a bearer credential on every request.
func NewClient(baseURL, apiToken string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if apiToken == "" {
		return nil, errs.NewValueIsRequiredError("apiToken")
	}

	return &Client{
		baseURL:    baseURL,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type createTaskPayload struct {
	ProposalID         string   `json:"proposalId"`
	ProjectName        string   `json:"projectName"`
	ManagementSite     string   `json:"managementSite"`
	IntegrationCenters []string `json:"integrationCenters"`
	ResearcherEmails   []string `json:"researcherEmails"`
	RequestedDate      string   `json:"requestedDate"`
}

type taskRefPayload struct {
	TaskID      string `json:"taskId"`
	BusinessKey string `json:"businessKey"`
}

// CreateTask starts a coordination task for an automated delivery.
func (c *Client) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (ports.TaskRef, error) {
	payload := createTaskPayload{
		ProposalID:         req.ProposalID.String(),
		ProjectName:        req.ProjectName,
		ManagementSite:     req.ManagementSite,
		IntegrationCenters: req.IntegrationCenters,
		ResearcherEmails:   req.ResearcherEmails,
		RequestedDate:      req.RequestedDate.Format(time.RFC3339),
	}

	var ref taskRefPayload
	if err := c.do(ctx, http.MethodPost, "/api/tasks", payload, &ref); err != nil {
		return ports.TaskRef{}, fmt.Errorf("create coordination task: %w", err)
	}
	if ref.TaskID == "" || ref.BusinessKey == "" {
		return ports.TaskRef{}, errs.NewValueIsInvalidError("taskRef")
	}

	return ports.TaskRef{TaskID: ref.TaskID, BusinessKey: ref.BusinessKey}, nil
}

type receivedDatasetPayload struct {
	SupplyingLocation string `json:"supplyingLocation"`
}

// FetchReceivedDatasets lists the supplying-location addresses whose datasets
// arrived for the business key since the given time.
func (c *Client) FetchReceivedDatasets(ctx context.Context, businessKey string, since time.Time) ([]string, error) {
	path := fmt.Sprintf("/api/tasks/%s/datasets?since=%s",
		url.PathEscape(businessKey), url.QueryEscape(since.Format(time.RFC3339)))

	var datasets []receivedDatasetPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &datasets); err != nil {
		return nil, fmt.Errorf("fetch received datasets: %w", err)
	}

	addresses := make([]string, 0, len(datasets))
	for _, dataset := range datasets {
		addresses = append(addresses, dataset.SupplyingLocation)
	}
	return addresses, nil
}

type taskResultPayload struct {
	ResultURL string `json:"resultUrl"`
}

// FetchResultURL returns the published result URL for the task, or an empty
// string when no result is available yet.
func (c *Client) FetchResultURL(ctx context.Context, taskID string) (string, error) {
	path := fmt.Sprintf("/api/tasks/%s/result", url.PathEscape(taskID))

	var result taskResultPayload
	err := c.do(ctx, http.MethodGet, path, nil, &result)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("fetch result url: %w", err)
	}
	return result.ResultURL, nil
}

// ReleaseDataSet asks the coordination system to release and consolidate the
// dataset for the business key.
func (c *Client) ReleaseDataSet(ctx context.Context, businessKey string) error {
	path := fmt.Sprintf("/api/tasks/%s/release", url.PathEscape(businessKey))
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("release dataset: %w", err)
	}
	return nil
}

type extendWindowPayload struct {
	NewDate string `json:"newDate"`
}

// ExtendReleaseWindow moves the release window of the business key to the new
// date.
func (c *Client) ExtendReleaseWindow(ctx context.Context, businessKey string, newDate time.Time) error {
	path := fmt.Sprintf("/api/tasks/%s/window", url.PathEscape(businessKey))
	payload := extendWindowPayload{NewDate: newDate.Format(time.RFC3339)}
	if err := c.do(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("extend release window: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError("coordinationResource", path)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("coordination system responded with status %d", resp.StatusCode)
	}

	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}
