package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// RemoteClient offloads recognition to a configured OCR endpoint.
// The endpoint accepts a multipart file body and responds with either
// {"text": "..."} or {"data": {"text": "..."}}. Any failure is
// reported to the caller, who falls back to the local engine.
type RemoteClient struct {
	url    string
	hc     *http.Client
	logger *slog.Logger
}

func NewRemoteClient(url string, wait time.Duration, logger *slog.Logger) *RemoteClient {
	if logger == nil {
		logger = slog.Default()
	}
	if wait <= 0 {
		wait = 30 * time.Second
	}
	return &RemoteClient{
		url:    url,
		hc:     &http.Client{Timeout: wait},
		logger: logger,
	}
}

// Configured reports whether an endpoint URL was provided.
func (c *RemoteClient) Configured() bool {
	return c != nil && c.url != ""
}

type remoteResponse struct {
	Text string `json:"text"`
	Data struct {
		Text string `json:"text"`
	} `json:"data"`
}

// Recognize posts the file content and returns the recognized text.
func (c *RemoteClient) Recognize(ctx context.Context, fileName string, content []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote ocr: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("remote ocr: unexpected status %d", resp.StatusCode)
	}

	var parsed remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("remote ocr: decode response: %w", err)
	}
	text := parsed.Text
	if text == "" {
		text = parsed.Data.Text
	}
	if text == "" {
		return "", fmt.Errorf("remote ocr: empty text in response")
	}
	c.logger.Debug("remote ocr ok", "file", fileName, "chars", len(text))
	return text, nil
}
