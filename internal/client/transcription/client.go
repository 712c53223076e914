package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/distincto/internal/logging"
)

// NoTranscript replaces an empty transcript.
const NoTranscript = "No transcription available"

const (
	statusCompleted = "completed"
	statusError     = "error"
)

// Result of a transcription. FileName is the blob path of the recording.
type Result struct {
	Text     string
	FileName string
}

type Transcriber interface {
	TranscribeAudio(ctx context.Context, audio []byte, field string) (*Result, error)
}

type Options struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration // per HTTP request
	PollInterval time.Duration
	MaxAttempts  int
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	pollInterval time.Duration
	maxAttempts  int

	blobs blobs.Repository
	log   logging.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(o Options, blobRepo blobs.Repository, log logging.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: o.Timeout},
		baseURL:      strings.TrimRight(strings.TrimSpace(o.BaseURL), "/"),
		apiKey:       strings.TrimSpace(o.APIKey),
		pollInterval: o.PollInterval,
		maxAttempts:  o.MaxAttempts,
		blobs:        blobRepo,
		log:          log.With("component", "transcription"),
		now:          time.Now,
		sleep:        sleepCtx,
	}
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type submitRequest struct {
	AudioURL     string `json:"audio_url"`
	LanguageCode string `json:"language_code"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type transcriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

type errorBody struct {
	Error string `json:"error"`
}

// TranscribeAudio saves audio as the recording of field and transcribes it.
// The recording stays in the blob store whatever happens afterwards.
func (c *Client) TranscribeAudio(ctx context.Context, audio []byte, field string) (*Result, error) {
	path := models.RecordingPath(field, c.now())
	if err := c.blobs.Put(ctx, path, audio, "audio/webm"); err != nil {
		return nil, fmt.Errorf("failed to save recording: %w", err)
	}
	c.log.Info(ctx, "recording saved", "path", path, "bytes", len(audio))

	uploadURL, err := c.upload(ctx, audio)
	if err != nil {
		return nil, err
	}

	id, err := c.submit(ctx, uploadURL)
	if err != nil {
		return nil, err
	}

	text, err := c.poll(ctx, id)
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = NoTranscript
	}
	return &Result{Text: text, FileName: path}, nil
}

func (c *Client) upload(ctx context.Context, audio []byte) (string, error) {
	var out uploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload", "application/octet-stream", bytes.NewReader(audio), &out, ErrUploadFailed); err != nil {
		return "", err
	}
	if out.UploadURL == "" {
		return "", &ServiceError{Phase: ErrUploadFailed, Detail: "no upload url"}
	}
	return out.UploadURL, nil
}

func (c *Client) submit(ctx context.Context, uploadURL string) (string, error) {
	body, err := json.Marshal(submitRequest{AudioURL: uploadURL, LanguageCode: "en_us"})
	if err != nil {
		return "", err
	}

	var out submitResponse
	if err := c.do(ctx, http.MethodPost, "/transcript", "application/json", bytes.NewReader(body), &out, ErrSubmitFailed); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", &ServiceError{Phase: ErrSubmitFailed, Detail: "no job id"}
	}
	c.log.Info(ctx, "transcript requested", "id", out.ID)
	return out.ID, nil
}

// poll waits one interval before every status check.
func (c *Client) poll(ctx context.Context, id string) (string, error) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return "", err
		}

		var out transcriptResponse
		if err := c.do(ctx, http.MethodGet, "/transcript/"+url.PathEscape(id), "", nil, &out, ErrJobFailed); err != nil {
			return "", err
		}

		switch out.Status {
		case statusCompleted:
			return out.Text, nil
		case statusError:
			return "", &ServiceError{Phase: ErrJobFailed, Detail: out.Error}
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrTimedOut, c.maxAttempts)
}

// do sends one request and decodes a 2xx JSON body into out. Any other
// status becomes a ServiceError for phase.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any, phase error) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", phase, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: bad response: %w", phase, err)
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	return &ServiceError{Phase: phase, Status: resp.StatusCode, Detail: strings.TrimSpace(eb.Error)}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
