package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stayforge/hotelops/pkg/opsapi"
	"github.com/stayforge/hotelops/pkg/queue"
)

// apiClient talks to a running opsapi instance, unwrapping the response
// envelope and turning API error details into plain errors.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var env struct {
		Data  json.RawMessage     `json:"data"`
		Error *opsapi.ErrorDetail `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response from %s (status %d): %w", c.baseURL, resp.StatusCode, err)
	}
	if env.Error != nil {
		return fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
	}
	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *apiClient) listQueues(ctx context.Context) ([]opsapi.QueueStatus, error) {
	var statuses []opsapi.QueueStatus
	err := c.do(ctx, http.MethodGet, "/v1/queues", nil, &statuses)
	return statuses, err
}

func (c *apiClient) getQueue(ctx context.Context, name string) (opsapi.QueueStatus, error) {
	var status opsapi.QueueStatus
	err := c.do(ctx, http.MethodGet, "/v1/queues/"+name, nil, &status)
	return status, err
}

func (c *apiClient) submitJob(ctx context.Context, name string, req opsapi.SubmitJobRequest) (opsapi.SubmitJobResponse, error) {
	var resp opsapi.SubmitJobResponse
	err := c.do(ctx, http.MethodPost, "/v1/queues/"+name+"/jobs", req, &resp)
	return resp, err
}

func (c *apiClient) pauseQueue(ctx context.Context, name string) (opsapi.QueueStatus, error) {
	var status opsapi.QueueStatus
	err := c.do(ctx, http.MethodPost, "/v1/queues/"+name+"/pause", nil, &status)
	return status, err
}

func (c *apiClient) resumeQueue(ctx context.Context, name string) (opsapi.QueueStatus, error) {
	var status opsapi.QueueStatus
	err := c.do(ctx, http.MethodPost, "/v1/queues/"+name+"/resume", nil, &status)
	return status, err
}

func (c *apiClient) clearQueue(ctx context.Context, name string) (opsapi.ClearQueueResponse, error) {
	var resp opsapi.ClearQueueResponse
	err := c.do(ctx, http.MethodDelete, "/v1/queues/"+name+"/jobs", nil, &resp)
	return resp, err
}

func (c *apiClient) deadLetters(ctx context.Context, name string, limit int) ([]queue.DeadLetter, error) {
	path := "/v1/dead-letters"
	params := make([]string, 0, 2)
	if name != "" {
		params = append(params, "queue="+name)
	}
	if limit > 0 {
		params = append(params, "limit="+strconv.Itoa(limit))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	var entries []queue.DeadLetter
	err := c.do(ctx, http.MethodGet, path, nil, &entries)
	return entries, err
}

// watchEvents streams lifecycle events, invoking fn per event until the
// context is canceled or the server closes the stream.
func (c *apiClient) watchEvents(ctx context.Context, fn func(queue.Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/events", nil)
	if err != nil {
		return err
	}

	// The stream is long-lived, so the regular client timeout does not apply.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from event stream", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var event queue.Event
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue
		}
		fn(event)
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
