package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
	"github.com/jonathan/hiretrack/internal/types"
)

// DefaultTimeout is the default request timeout of the live client.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error body is read for its message.
const maxErrorBody = 64 << 10

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper // wrapped by callers with an Interceptor
	Tokens    TokenSource
	Log       logrus.FieldLogger
}

// Client is the live HTTP implementation of Remote.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logrus.FieldLogger
}

var _ Remote = (*Client)(nil)

// NewClient returns a client for the backend at opts.BaseURL.
func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		tokens:  opts.Tokens,
		log:     logging.OrDiscard(opts.Log),
	}
}

// do issues one request and returns the body of a 2xx response. Non-2xx
// responses become *APIError.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) ([]byte, error) {
	u := c.baseURL + "/api" + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &RequestError{Op: op, URL: u, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.WithError(err).Warn("could not read auth token, sending request without it")
		} else if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, URL: u, Cause: err}
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"op":          op,
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"latency_ms":  time.Since(start).Milliseconds(),
	}).Debug("backend call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{Op: op, Status: resp.StatusCode, Message: errorMessage(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, URL: u, Cause: fmt.Errorf("read body: %w", err)}
	}
	return data, nil
}

// errorMessage extracts the message or error field of an error body.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	if payload == nil {
		return c.do(ctx, op, method, path, nil, "")
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	return c.do(ctx, op, method, path, bytes.NewReader(buf), "application/json")
}

func list[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	body, err := c.do(ctx, op, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[T](op, body)
}

func item[T any](ctx context.Context, c *Client, op, method, path string, payload any) (*T, error) {
	body, err := c.doJSON(ctx, op, method, path, payload)
	if err != nil {
		return nil, err
	}
	return decodeItem[T](op, shapeItem, body)
}

func (c *Client) remove(ctx context.Context, op, path string) error {
	_, err := c.do(ctx, op, http.MethodDelete, path, nil, "")
	return err
}

func escape(id string) string { return url.PathEscape(id) }

// ListJobs returns every job posting.
func (c *Client) ListJobs(ctx context.Context) ([]types.Job, error) {
	return list[types.Job](ctx, c, "list jobs", "/jobs")
}

// GetJob returns one job posting.
func (c *Client) GetJob(ctx context.Context, id string) (*types.Job, error) {
	return item[types.Job](ctx, c, "get job", http.MethodGet, "/jobs/"+escape(id), nil)
}

// CreateJob creates a job posting.
func (c *Client) CreateJob(ctx context.Context, job types.Job) (*types.Job, error) {
	return item[types.Job](ctx, c, "create job", http.MethodPost, "/jobs", job)
}

// UpdateJobStatus changes a posting's status.
func (c *Client) UpdateJobStatus(ctx context.Context, id string, status types.JobStatus) (*types.Job, error) {
	return item[types.Job](ctx, c, "update job status", http.MethodPatch, "/jobs/"+escape(id)+"/status",
		map[string]string{"status": string(status)})
}

// DeleteJob deletes a posting.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.remove(ctx, "delete job", "/jobs/"+escape(id))
}

// ListApplicants returns every application.
func (c *Client) ListApplicants(ctx context.Context) ([]types.Applicant, error) {
	return list[types.Applicant](ctx, c, "list applicants", "/applications")
}

// FilterApplicants returns the applications matching q, filtered server side.
func (c *Client) FilterApplicants(ctx context.Context, q ApplicantQuery) ([]types.Applicant, error) {
	v := url.Values{}
	for k, val := range map[string]string{"status": q.Status, "jobId": q.JobID, "source": q.Source, "search": q.Search} {
		if val != "" {
			v.Set(k, val)
		}
	}
	path := "/applications/filter"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	return list[types.Applicant](ctx, c, "filter applicants", path)
}

// GetApplicant returns one application.
func (c *Client) GetApplicant(ctx context.Context, id string) (*types.Applicant, error) {
	return item[types.Applicant](ctx, c, "get applicant", http.MethodGet, "/applications/"+escape(id), nil)
}

// CreateApplicant submits an application as JSON.
func (c *Client) CreateApplicant(ctx context.Context, a types.Applicant) (*types.Applicant, error) {
	return item[types.Applicant](ctx, c, "create applicant", http.MethodPost, "/applications", a)
}

// UploadApplicant submits an application as multipart form data: a JSON
// "application" part and a "resume" file part.
func (c *Client) UploadApplicant(ctx context.Context, a types.Applicant, resume types.Attachment) (*types.Applicant, error) {
	const op = "upload applicant"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	meta, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("%s: encode application: %w", op, err)
	}
	if err := mw.WriteField(FormFieldApplication, string(meta)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FormFieldResume, resume.Filename))
	ct := resume.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := part.Write(resume.Data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	body, err := c.do(ctx, op, http.MethodPost, "/applications", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return decodeItem[types.Applicant](op, shapeItem, body)
}

// Multipart field names of an application upload.
const (
	FormFieldApplication = "application"
	FormFieldResume      = "resume"
)

// UpdateApplicantStatus changes an application's status.
func (c *Client) UpdateApplicantStatus(ctx context.Context, id string, status types.ApplicantStatus) (*types.Applicant, error) {
	return item[types.Applicant](ctx, c, "update applicant status", http.MethodPatch, "/applications/"+escape(id)+"/status",
		map[string]string{"status": string(status)})
}

// AddApplicantNote appends a note to an application.
func (c *Client) AddApplicantNote(ctx context.Context, id, note string) (*types.Applicant, error) {
	return item[types.Applicant](ctx, c, "add applicant note", http.MethodPatch, "/applications/"+escape(id)+"/notes",
		map[string]string{"notes": note})
}

// DeleteApplicant deletes an application.
func (c *Client) DeleteApplicant(ctx context.Context, id string) error {
	return c.remove(ctx, "delete applicant", "/applications/"+escape(id))
}

// ListInterviews returns every interview.
func (c *Client) ListInterviews(ctx context.Context) ([]types.Interview, error) {
	return list[types.Interview](ctx, c, "list interviews", "/interviews")
}

// CreateInterview schedules an interview.
func (c *Client) CreateInterview(ctx context.Context, iv types.Interview) (*types.Interview, error) {
	return item[types.Interview](ctx, c, "create interview", http.MethodPost, "/interviews", iv)
}

// UpdateInterviewStatus changes an interview's status.
func (c *Client) UpdateInterviewStatus(ctx context.Context, id string, status types.InterviewStatus) (*types.Interview, error) {
	return item[types.Interview](ctx, c, "update interview status", http.MethodPatch, "/interviews/"+escape(id)+"/status",
		map[string]string{"status": string(status)})
}

// SubmitFeedback records interviewer feedback.
func (c *Client) SubmitFeedback(ctx context.Context, id string, fb types.Feedback) (*types.Interview, error) {
	return item[types.Interview](ctx, c, "submit feedback", http.MethodPost, "/interviews/"+escape(id)+"/feedback", fb)
}

// DeleteInterview deletes an interview.
func (c *Client) DeleteInterview(ctx context.Context, id string) error {
	return c.remove(ctx, "delete interview", "/interviews/"+escape(id))
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResult, error) {
	body, err := c.doJSON(ctx, "register", http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return decodeItem[types.AuthResult]("register", shapeAuth, body)
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResult, error) {
	body, err := c.doJSON(ctx, "login", http.MethodPost, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	return decodeItem[types.AuthResult]("login", shapeAuth, body)
}

// GetProfile returns the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (*types.User, error) {
	return item[types.User](ctx, c, "get profile", http.MethodGet, "/profile", nil)
}

// UpdateProfile edits the signed-in user's profile.
func (c *Client) UpdateProfile(ctx context.Context, p types.ProfileUpdate) (*types.User, error) {
	return item[types.User](ctx, c, "update profile", http.MethodPut, "/profile", p)
}
