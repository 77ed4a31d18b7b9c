package compile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error carries the compiler log for a failed compilation.
type Error struct {
	Log string
}

func (e *Error) Error() string {
	return "compilation failed"
}

// AuxFile is a supporting file shipped alongside the main source.
type AuxFile struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}

// Client handles communication with the external PDF compiler.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new compiler client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type compileRequest struct {
	MainSource string    `json:"main_source"`
	AuxFiles   []AuxFile `json:"aux_files,omitempty"`
}

type compileFailure struct {
	Error string `json:"error"`
	Log   string `json:"log"`
}

// Compile sends the document source to the compiler and returns the PDF
// bytes. A compiler-side failure is returned as *Error carrying the log.
func (c *Client) Compile(ctx context.Context, mainSource string, auxFiles []AuxFile) ([]byte, error) {
	jsonData, err := json.Marshal(compileRequest{MainSource: mainSource, AuxFiles: auxFiles})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/compile", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call compiler: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read compiler response: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var failure compileFailure
		if jsonErr := json.Unmarshal(body, &failure); jsonErr == nil && failure.Log != "" {
			return nil, &Error{Log: failure.Log}
		}
		return nil, &Error{Log: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("compiler returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
