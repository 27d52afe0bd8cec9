// Package solver talks to the external VRPTW solver service. The solver is
// an opaque collaborator: this client ships it an already-built travel-time
// matrix and hands back stop sequences without interpreting them.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"loadboard-route-service/internal/platform/obs"
	"loadboard-route-service/internal/ports"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// HTTPClient implements the Solver port against a remote solve endpoint.
type HTTPClient struct {
	session *http.Client
	baseURL string
}

func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("solver base URL is empty")
	}

	return &HTTPClient{
		// Cold solves on large matrices are slow; the timeout covers the
		// solver's own internal time limit.
		session: &http.Client{Timeout: 240 * time.Second},
		baseURL: baseURL,
	}, nil
}

// Solve posts the request to the external solver and decodes its solution.
// "No feasible solution" comes back as a normal Solution, not an error.
func (c *HTTPClient) Solve(ctx context.Context, req ports.SolveRequest) (_ ports.Solution, err error) {
	defer obs.Time(ctx, "solver.Solve")(&err)

	payload, err := json.Marshal(req)
	if err != nil {
		return ports.Solution{}, fmt.Errorf("solve: encode request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/solve_routes", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		return httpReq, nil
	})
	if err != nil {
		return ports.Solution{}, fmt.Errorf("solve: execute request: %w", err)
	}
	defer resp.Body.Close()

	var solution ports.Solution
	if err := json.NewDecoder(resp.Body).Decode(&solution); err != nil {
		return ports.Solution{}, fmt.Errorf("solve: decode response: %w", err)
	}

	return solution, nil
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *HTTPClient) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 500 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
