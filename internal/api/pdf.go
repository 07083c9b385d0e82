package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/medgram/medgram/internal/domain"
)

func (c *Client) GeneratePDF(ctx context.Context, req GeneratePDFRequest) (*domain.PDFDocument, error) {
	var doc domain.PDFDocument
	if err := c.getEnvelope(ctx, http.MethodPost, "/pdf/generate", req, &doc, "Failed to generate PDF"); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) UploadPDF(ctx context.Context, req UploadPDFRequest) (*domain.PDFDocument, error) {
	const fallback = "Failed to upload PDF"

	fields := map[string]string{
		"documentType": string(req.DocumentType),
	}
	if req.UserID != nil {
		fields["userId"] = strconv.FormatInt(*req.UserID, 10)
	}
	if req.ChatID != nil {
		fields["chatId"] = strconv.FormatInt(*req.ChatID, 10)
	}

	raw, err := c.doMultipart(ctx, c.baseURL+"/pdf/upload", fields, "file", req.Filename, req.File, fallback)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, appError("", fallback)
	}
	if !env.Success || len(env.Data) == 0 {
		return nil, appError(env.Error, fallback)
	}

	var doc domain.PDFDocument
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		return nil, appError("", fallback)
	}
	return &doc, nil
}

func (c *Client) GetPDF(ctx context.Context, id int64) (*domain.PDFDocument, error) {
	var doc domain.PDFDocument
	if err := c.getEnvelope(ctx, http.MethodGet, fmt.Sprintf("/pdf/%d", id), nil, &doc, "Failed to get PDF document"); err != nil {
		return nil, err
	}
	return &doc, nil
}

// PDFFileURL returns the direct download URL for a stored document.
func (c *Client) PDFFileURL(id int64) string {
	return fmt.Sprintf("%s/pdf/%d/file", c.baseURL, id)
}

func (c *Client) ListPDFByUser(ctx context.Context, userID int64) ([]domain.PDFDocument, error) {
	var docs []domain.PDFDocument
	if err := c.getEnvelope(ctx, http.MethodGet, fmt.Sprintf("/pdf/user/%d", userID), nil, &docs, "Failed to get PDF documents"); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Client) ListPDFByChat(ctx context.Context, chatID int64) ([]domain.PDFDocument, error) {
	var docs []domain.PDFDocument
	if err := c.getEnvelope(ctx, http.MethodGet, fmt.Sprintf("/pdf/chat/%d", chatID), nil, &docs, "Failed to get PDF documents"); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Client) DeletePDF(ctx context.Context, id int64) error {
	return c.getEnvelope(ctx, http.MethodDelete, fmt.Sprintf("/pdf/%d", id), nil, nil, "Failed to delete PDF document")
}
