package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/medgram/medgram/internal/config"
	"github.com/shopspring/decimal"
)

// NetworkErrorMessage is shown whenever no response reached the client.
// Raw transport detail is never surfaced to users.
const NetworkErrorMessage = "Network error occurred"

// Error is the single failure shape the gateway produces. Message is always
// safe to show to the user: either the server-provided error text, a
// method-specific fallback, or the generic network message.
type Error struct {
	Message   string
	Transport bool
}

func (e *Error) Error() string { return e.Message }

func netError() *Error {
	return &Error{Message: NetworkErrorMessage, Transport: true}
}

func appError(serverMsg, fallback string) *Error {
	if serverMsg == "" {
		serverMsg = fallback
	}
	return &Error{Message: serverMsg}
}

// Client talks to the medical backend. It holds no session state; every
// method is an independent request that resolves to a typed payload or an
// *Error, never a panic.
type Client struct {
	baseURL       string
	uploadBaseURL string
	httpClient    *http.Client
}

func New(baseURL, uploadBaseURL string) *Client {
	// Backend money fields are plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		uploadBaseURL: strings.TrimRight(uploadBaseURL, "/"),
		httpClient:    &http.Client{Timeout: config.RequestTimeout},
	}
}

// envelope is the backend response wrapper. Login and user-update endpoints
// put the payload under "user" instead of "data".
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	User    json.RawMessage `json:"user"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// do performs a request against the versioned API and returns the raw
// response body. Transport failures and error statuses come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body any, fallback string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appError("", fallback)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, appError("", fallback)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, netError()
	}

	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return nil, appError(env.Error, fallback)
	}
	return raw, nil
}

// getRaw decodes endpoints that return the payload directly, without the
// success wrapper (doctors, chats lists and similar).
func (c *Client) getRaw(ctx context.Context, method, path string, body, out any, fallback string) error {
	raw, err := c.do(ctx, method, path, body, fallback)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return appError("", fallback)
	}
	return nil
}

// getEnvelope decodes endpoints that wrap the payload in {success,data,error}.
func (c *Client) getEnvelope(ctx context.Context, method, path string, body, out any, fallback string) error {
	raw, err := c.do(ctx, method, path, body, fallback)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return appError("", fallback)
	}
	if !env.Success {
		return appError(env.Error, fallback)
	}
	if out == nil {
		return nil
	}

	payload := env.Data
	if len(payload) == 0 {
		payload = env.User
	}
	if len(payload) == 0 {
		return appError("", fallback)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return appError("", fallback)
	}
	return nil
}

// doMultipart posts a multipart form to an absolute URL (file endpoints live
// both inside and outside the versioned prefix).
func (c *Client) doMultipart(ctx context.Context, url string, fields map[string]string, fileField, filename string, file io.Reader, fallback string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, appError("", fallback)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, appError("", fallback)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, appError("", fallback)
		}
	}
	if err := w.Close(); err != nil {
		return nil, appError("", fallback)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, appError("", fallback)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, netError()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, netError()
	}
	if resp.StatusCode >= 400 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return nil, appError(env.Error, fallback)
	}
	return raw, nil
}
