// Package client provides a typed API client for the comment board and a
// headless view state container mirroring the board UI's behavior.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"commentboard/internal/models"
)

// Client calls the comment board HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8375").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// NewWithHTTPClient creates a Client using the given http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	c.httpClient = httpClient
	return c
}

// ListComments fetches all comments, newest first.
func (c *Client) ListComments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, http.MethodGet, "/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment posts a new comment with the given text.
func (c *Client) CreateComment(ctx context.Context, text string) (*models.Comment, error) {
	var created models.Comment
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/comments", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateComment rewrites the text of the comment with the given id.
func (c *Client) UpdateComment(ctx context.Context, id uint, text string) (*models.Comment, error) {
	var updated models.Comment
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteComment removes the comment with the given id.
func (c *Client) DeleteComment(ctx context.Context, id uint) (*models.DeleteCommentResponse, error) {
	var deleted models.DeleteCommentResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, &deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// decodeError surfaces the server's error message when the body carries one,
// otherwise a generic message with the status code.
func decodeError(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("%s", errResp.Error)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
