package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiretrack/internal/types"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{BaseURL: srv.URL + "/", Tokens: staticToken("jwt-123")})
}

func TestClient_ListJobs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer jwt-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":"j1","title":"Go Engineer","status":"open"}]}`)
	})

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Engineer", jobs[0].Title)
	assert.True(t, jobs[0].IsActive())
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		notFound    bool
	}{
		{"not found with message", http.StatusNotFound, `{"message":"application not found"}`, "application not found", true},
		{"server error with error field", http.StatusInternalServerError, `{"error":"boom"}`, "boom", false},
		{"plain text body", http.StatusBadGateway, "upstream down", "upstream down", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetApplicant(context.Background(), "a1")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.notFound, IsNotFound(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestClient_UnexpectedShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object where list expected", `{"data":{"id":"j1"}}`},
		{"missing envelope", `[{"id":"j1"}]`},
		{"record without id", `{"data":[{"title":"x"}]}`},
		{"not json", `<html>oops</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.ListJobs(context.Background())
			var shapeErr *ErrUnexpectedShape
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, "list jobs", shapeErr.Op)
		})
	}
}

func TestClient_FilterApplicantsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/applications/filter", r.URL.Path)
		assert.Equal(t, "general", r.URL.Query().Get("jobId"))
		assert.Equal(t, "ada", r.URL.Query().Get("search"))
		assert.False(t, r.URL.Query().Has("status"))
		_, _ = io.WriteString(w, `{"data":[]}`)
	})

	got, err := c.FilterApplicants(context.Background(), ApplicantQuery{JobID: "general", Search: "ada"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_UploadApplicant(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var a types.Applicant
		require.NoError(t, json.Unmarshal([]byte(r.FormValue(FormFieldApplication)), &a))
		assert.Equal(t, "Sam", a.Name)

		f, hdr, err := r.FormFile(FormFieldResume)
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cv.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.4", string(data))

		a.ID = "srv-1"
		a.Resume = "/uploads/cv.pdf"
		_ = json.NewEncoder(w).Encode(map[string]any{"data": a})
	})

	got, err := c.UploadApplicant(context.Background(),
		types.Applicant{Name: "Sam", Email: "sam@example.com"},
		types.Attachment{Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", got.ID)
	assert.Equal(t, "/uploads/cv.pdf", got.Resume)
}

func TestClient_StatusAndNotes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, http.MethodPatch, r.Method)

		switch r.URL.Path {
		case "/api/applications/a1/status":
			_, _ = io.WriteString(w, `{"data":{"id":"a1","status":"`+body["status"]+`"}}`)
		case "/api/applications/a1/notes":
			_, _ = io.WriteString(w, `{"data":{"id":"a1","notes":"`+body["notes"]+`"}}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	a, err := c.UpdateApplicantStatus(ctx, "a1", types.ApplicantHired)
	require.NoError(t, err)
	assert.Equal(t, types.ApplicantHired, a.Status)

	a, err = c.AddApplicantNote(ctx, "a1", "called back")
	require.NoError(t, err)
	assert.Equal(t, "called back", a.Notes)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":{"user":{"id":"u1","email":"ada@example.com"},"token":"jwt-xyz"}}`)
	})

	res, err := c.Login(context.Background(), types.LoginRequest{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-xyz", res.Token)
	assert.Equal(t, "u1", res.User.ID)
}

func TestClient_Delete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/api/interviews/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	assert.NoError(t, c.DeleteInterview(ctx, "i1"))
	assert.True(t, IsNotFound(c.DeleteInterview(ctx, "gone")))
}
