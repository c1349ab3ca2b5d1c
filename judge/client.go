// Package judge is a thin client of the external code execution service.
// It runs one (source, language, stdin) unit and returns raw stdout/stderr.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Lang identifies a runtime in the judge's own vocabulary.
type Lang struct {
	Name    string
	Version string
}

type Result struct {
	Stdout string
	Stderr string
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// maxResponseBytes caps how much of a judge response is read.
const maxResponseBytes = 8 << 20

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 32,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type execFile struct {
	Content string `json:"content"`
}

type execRequest struct {
	Language string     `json:"language"`
	Version  string     `json:"version"`
	Files    []execFile `json:"files"`
	Stdin    string     `json:"stdin"`
}

type execStage struct {
	Stdout string  `json:"stdout"`
	Stderr string  `json:"stderr"`
	Code   *int    `json:"code"`
	Signal *string `json:"signal"`
}

type execResponse struct {
	Run     *execStage `json:"run"`
	Compile *execStage `json:"compile"`
	Message string     `json:"message"`
}

// Execute runs sourceCode with stdin. Every failure to obtain a well-formed
// answer, including the per-call timeout, is returned as *TransportError.
func (c *Client) Execute(ctx context.Context, lang Lang, sourceCode string, stdin string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(execRequest{
		Language: lang.Name,
		Version:  lang.Version,
		Files:    []execFile{{Content: sourceCode}},
		Stdin:    stdin,
	})
	if err != nil {
		return Result{}, transportErr("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return Result{}, transportErr("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, transportErr(fmt.Sprintf("timed out after %s", c.timeout), err)
		}
		return Result{}, transportErr("request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, transportErr("failed to read response", err)
	}

	var decoded execResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cause := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if decodeErr == nil && decoded.Message != "" {
			cause += ": " + decoded.Message
		}
		return Result{}, transportErr(cause, nil)
	}
	if decodeErr != nil {
		return Result{}, transportErr("malformed response", decodeErr)
	}

	// a failed compilation is the program's fault, report it as stderr
	if decoded.Compile != nil && decoded.Compile.Code != nil && *decoded.Compile.Code != 0 {
		stderr := decoded.Compile.Stderr
		if strings.TrimSpace(stderr) == "" {
			stderr = fmt.Sprintf("compilation failed with exit code %d", *decoded.Compile.Code)
		}
		return Result{Stdout: decoded.Compile.Stdout, Stderr: stderr}, nil
	}
	if decoded.Run == nil {
		return Result{}, transportErr("malformed response: missing run stage", nil)
	}
	return Result{Stdout: decoded.Run.Stdout, Stderr: decoded.Run.Stderr}, nil
}
