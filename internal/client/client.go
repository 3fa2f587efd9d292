// Package client talks to the pipeline API over HTTP. It is the transport
// the board uses when it runs outside the service process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/justsurfingit/talentflow/internal/board"
	"github.com/justsurfingit/talentflow/internal/common"
	"github.com/justsurfingit/talentflow/internal/pipeline"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type applicationPayload struct {
	ID          string         `json:"id"`
	CandidateID string         `json:"candidate_id"`
	JobID       string         `json:"job_id"`
	Stage       pipeline.Stage `json:"stage"`
	AppliedAt   time.Time      `json:"applied_at"`
	Candidate   *struct {
		Name string `json:"name"`
	} `json:"candidate"`
}

type errorPayload struct {
	Error struct {
		Code    common.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

// RequestTransition satisfies board.Transitioner. API rejections come back
// with their original code; network failures as CodeUnavailable.
func (c *Client) RequestTransition(ctx context.Context, applicationID string, target pipeline.Stage) (*pipeline.TransitionResult, error) {
	body, err := json.Marshal(map[string]pipeline.Stage{"stage": target})
	if err != nil {
		return nil, err
	}
	path := "/api/v1/applications/" + url.PathEscape(applicationID) + "/stage"
	var result pipeline.TransitionResult
	if err := c.do(ctx, http.MethodPatch, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoadBoard fetches every application of the job as board cards.
func (c *Client) LoadBoard(ctx context.Context, jobID string) ([]board.Card, error) {
	var apps []applicationPayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/"+url.PathEscape(jobID)+"/applications", nil, &apps); err != nil {
		return nil, err
	}
	cards := make([]board.Card, 0, len(apps))
	for _, app := range apps {
		card := board.Card{
			ApplicationID: app.ID,
			CandidateID:   app.CandidateID,
			JobID:         app.JobID,
			Stage:         app.Stage,
			AppliedAt:     app.AppliedAt,
		}
		if app.Candidate != nil {
			card.CandidateName = app.Candidate.Name
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewError(common.CodeUnavailable, "pipeline api unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.NewError(common.CodeUnavailable, "failed to read pipeline api response", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var payload errorPayload
		if err := json.Unmarshal(raw, &payload); err != nil || payload.Error.Code == "" {
			return common.NewError(common.CodeInternal, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		}
		return common.NewError(payload.Error.Code, payload.Error.Message, nil)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return common.NewError(common.CodeInternal, "failed to decode pipeline api response", err)
	}
	return nil
}
