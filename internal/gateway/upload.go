package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Uploader pushes receipt and product images to the remote upload
// endpoint. When the endpoint is unreachable it writes the bytes under a
// local directory instead and returns that path; that fallback exists for
// development against a partial backend and must not be relied on in
// production.
type Uploader struct {
	client   *Client
	localDir string
	logger   *zap.Logger
}

func NewUploader(client *Client, localDir string, logger *zap.Logger) *Uploader {
	return &Uploader{client: client, localDir: localDir, logger: logger}
}

func (u *Uploader) UploadImage(ctx context.Context, filename string, content []byte) (string, error) {
	url, err := u.uploadRemote(ctx, filename, content)
	if err == nil {
		return url, nil
	}

	u.logger.Warn("remote image upload failed, storing locally",
		zap.String("filename", filename),
		zap.Error(err),
	)

	return u.storeLocal(filename, content)
}

func (u *Uploader) uploadRemote(ctx context.Context, filename string, content []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("images", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.client.baseURL+"/upload/images", &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := u.client.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := u.client.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	if resp.StatusCode == http.StatusUnauthorized {
		u.client.tokens.Invalidate()
		return "", ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServerError{Status: resp.StatusCode, Message: apiMessage(raw)}
	}

	var payload struct {
		Data struct {
			URLs []string `json:"urls"`
		} `json:"data"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if len(payload.Data.URLs) > 0 {
		return payload.Data.URLs[0], nil
	}
	if payload.URL != "" {
		return payload.URL, nil
	}
	return "", fmt.Errorf("upload response carried no url")
}

func (u *Uploader) storeLocal(filename string, content []byte) (string, error) {
	if err := os.MkdirAll(u.localDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(filename)
	path := filepath.Join(u.localDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write local upload: %w", err)
	}
	return path, nil
}
