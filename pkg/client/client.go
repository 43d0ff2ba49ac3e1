package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Client is an HTTP client for the aiforge API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("path", path))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return goerr.Wrap(err, "failed to decode response", goerr.V("path", path))
		}
	}

	return nil
}

// apiError translates an error response back into the tagged taxonomy
func apiError(resp *http.Response, path string) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	opts := []goerr.Option{
		goerr.V("path", path),
		goerr.V("status", resp.StatusCode),
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		opts = append(opts, goerr.T(model.ErrTagUnauthorized))
	case http.StatusBadRequest:
		opts = append(opts, goerr.T(model.ErrTagInvalidInput))
	case http.StatusNotFound:
		opts = append(opts, goerr.T(model.ErrTagNotFound))
	default:
		opts = append(opts, goerr.T(model.ErrTagUpstream))
	}

	return goerr.New(msg, opts...)
}

type ChatOutput struct {
	Text   string         `json:"text"`
	ChatID model.RecordID `json:"chatId"`
}

// Chat submits a prompt, continuing the thread identified by chatID
// when it is non-empty.
func (c *Client) Chat(ctx context.Context, prompt string, chatID model.RecordID) (*ChatOutput, error) {
	req := map[string]string{"prompt": prompt}
	if chatID != "" {
		req["chatId"] = string(chatID)
	}

	var out ChatOutput
	if err := c.do(ctx, http.MethodPost, "/chat", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CodeOutput struct {
	Code   string         `json:"code"`
	ChatID model.RecordID `json:"chatId"`
}

func (c *Client) GenerateCode(ctx context.Context, prompt string) (*CodeOutput, error) {
	var out CodeOutput
	if err := c.do(ctx, http.MethodPost, "/code", nil, map[string]string{"prompt": prompt}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ImageOutput struct {
	Text   string         `json:"text"`
	ChatID model.RecordID `json:"chatId"`
}

func (c *Client) AnalyzeImage(ctx context.Context, prompt, image string) (*ImageOutput, error) {
	var out ImageOutput
	req := map[string]string{"prompt": prompt, "image": image}
	if err := c.do(ctx, http.MethodPost, "/image", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OptimizePrompt(ctx context.Context, prompt, modelType string) (string, error) {
	var out struct {
		Text string `json:"text"`
	}
	req := map[string]string{"prompt": prompt, "modelType": modelType}
	if err := c.do(ctx, http.MethodPost, "/optimize-prompt", nil, req, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func (c *Client) GetRecord(ctx context.Context, kind model.Kind, id model.RecordID) (*model.Record, error) {
	query := url.Values{"type": {string(kind)}}
	var record model.Record
	if err := c.do(ctx, http.MethodGet, "/history/"+url.PathEscape(string(id)), query, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) ListRecords(ctx context.Context, kind model.Kind, limit int) ([]*model.Record, error) {
	query := url.Values{"type": {string(kind)}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out struct {
		Records []*model.Record `json:"records"`
	}
	if err := c.do(ctx, http.MethodGet, "/history", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

func (c *Client) RenameRecord(ctx context.Context, kind model.Kind, id model.RecordID, title string) error {
	req := map[string]string{"id": string(id), "type": string(kind), "title": title}
	return c.do(ctx, http.MethodPost, "/history/rename", nil, req, nil)
}

func (c *Client) DeleteRecord(ctx context.Context, kind model.Kind, id model.RecordID) error {
	req := map[string]string{"id": string(id), "type": string(kind)}
	return c.do(ctx, http.MethodPost, "/history/delete", nil, req, nil)
}

func (c *Client) UserStats(ctx context.Context) (*model.UsageStats, error) {
	var stats model.UsageStats
	if err := c.do(ctx, http.MethodGet, "/user-stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
