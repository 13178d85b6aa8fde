// Package proposalapi implements the proposal store against the proposal
// service's JSON API. The service enforces its own access rules; a denied
// proposal is indistinguishable from a missing one.
package proposalapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/domain/model/proposal"
	"datadelivery/internal/pkg/errs"
)

const requestTimeout = 10 * time.Second

// Client loads proposal read models over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a proposal store for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type proposalPayload struct {
	ID                string   `json:"id"`
	ProjectName       string   `json:"projectName"`
	ApplicantEmail    string   `json:"applicantEmail"`
	ParticipantEmails []string `json:"participantEmails"`
}

// GetProposal loads the proposal read model for the given id.
func (c *Client) GetProposal(ctx context.Context, proposalID kernel.UUID) (*proposal.Proposal, error) {
	url := fmt.Sprintf("%s/api/proposals/%s", c.baseURL, proposalID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		return nil, errs.NewObjectNotFoundError("proposal", proposalID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("proposal service responded with status %d", resp.StatusCode)
	}

	var payload proposalPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode proposal: %w", err)
	}

	id, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("proposalId", err)
	}

	return proposal.NewProposal(id, payload.ProjectName, payload.ApplicantEmail, payload.ParticipantEmails)
}
