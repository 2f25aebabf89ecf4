// internal/infra/storage/client.go
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lesson_planning_bot/internal/domain/planning"

	"github.com/sirupsen/logrus"
)

// Custom errors for the upload flow
var ErrNegotiationFailed = fmt.Errorf("upload negotiation failed")
var ErrUploadFailed = fmt.Errorf("upload failed")
var ErrNoFileSource = fmt.Errorf("attachment has no data source")

// UploadError is the message shown to the user for a failed upload. Kind is
// ErrNegotiationFailed or ErrUploadFailed.
type UploadError struct {
	Kind    error
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Kind
}

func failed(kind error, reason string) error {
	return &UploadError{Kind: kind, Message: "Falhou: " + reason}
}

// Config points the client at the negotiation endpoint and the public bucket.
type Config struct {
	UploadEndpoint string // POST {filename} -> {uploadUrl}
	Host           string // e.g. storage.googleapis.com
	Bucket         string
	Namespace      string // first path segment of every object
}

type negotiationRequest struct {
	Filename string `json:"filename"`
}

type negotiationResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// Client uploads attachments through a signed-URL negotiation: it asks the
// upload endpoint for a write URL, then PUTs the raw bytes there.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewClient(cfg Config, httpClient *http.Client, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// ObjectName builds <namespace>/<name>/<period>/<week>_<millis>_<file>.
func (c *Client) ObjectName(respondent string, period planning.PeriodKey, week planning.WeekKey, at time.Time, original string) string {
	parts := make([]string, 0, 4)
	if ns := strings.Trim(c.cfg.Namespace, "/"); ns != "" {
		parts = append(parts, ns)
	}
	parts = append(parts,
		NormalizeName(respondent),
		string(period),
		fmt.Sprintf("%s_%d_%s", week, at.UnixMilli(), sanitizeFilename(original)),
	)
	return strings.Join(parts, "/")
}

// PublicURL is where an uploaded object can be downloaded.
func (c *Client) PublicURL(objectName string) string {
	return fmt.Sprintf("https://%s/%s/%s", c.cfg.Host, c.cfg.Bucket, objectName)
}

// Upload stores file under objectName and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectName string, file planning.FileRef) (string, error) {
	if file.Source == nil {
		return "", fmt.Errorf("%w: %s", ErrNoFileSource, file.Name)
	}
	logCtx := c.logger.WithFields(logrus.Fields{"object": objectName, "size": file.Size})

	uploadURL, err := c.negotiate(ctx, objectName)
	if err != nil {
		logCtx.WithError(err).Error("Upload negotiation failed")
		return "", err
	}

	body, err := file.Source.Open(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Could not read attachment")
		return "", failed(ErrUploadFailed, "arquivo indisponível")
	}
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if file.Size > 0 {
		req.ContentLength = file.Size
	}
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", failed(ErrUploadFailed, err.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logCtx.WithField("status", resp.StatusCode).Error("Raw upload rejected")
		return "", failed(ErrUploadFailed, http.StatusText(resp.StatusCode))
	}

	logCtx.Debug("Attachment uploaded")
	return c.PublicURL(objectName), nil
}

func (c *Client) negotiate(ctx context.Context, objectName string) (string, error) {
	payload, err := json.Marshal(negotiationRequest{Filename: objectName})
	if err != nil {
		return "", fmt.Errorf("failed to encode negotiation request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build negotiation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", failed(ErrNegotiationFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", failed(ErrNegotiationFailed, http.StatusText(resp.StatusCode))
	}

	var out negotiationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", failed(ErrNegotiationFailed, "resposta inválida")
	}
	if out.UploadURL == "" {
		return "", failed(ErrNegotiationFailed, "resposta sem uploadUrl")
	}
	return out.UploadURL, nil
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "" {
		return "arquivo"
	}
	return name
}
