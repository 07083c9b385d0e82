package api

import (
	"context"
	"encoding/json"
	"io"
	"strings"
)

// UploadedFile describes a file stored through the generic upload endpoint.
type UploadedFile struct {
	Path string
	URL  string
}

// UploadFile posts a file to the non-versioned /upload endpoint and returns
// its storage path together with a public URL.
func (c *Client) UploadFile(ctx context.Context, filename string, file io.Reader) (*UploadedFile, error) {
	const fallback = "Failed to upload avatar"

	raw, err := c.doMultipart(ctx, c.uploadBaseURL+"/upload", nil, "file", filename, file, fallback)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string `json:"message"`
		Path    string `json:"path"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Path == "" {
		return nil, appError("", "Failed to upload file")
	}

	name := strings.TrimPrefix(resp.Path, "uploads/")
	return &UploadedFile{
		Path: resp.Path,
		URL:  c.uploadBaseURL + "/uploads/" + name,
	}, nil
}
