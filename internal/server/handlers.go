package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/hiretrack/internal/gateway"
	"github.com/jonathan/hiretrack/internal/types"
)

// maxUploadBytes caps a multipart application submission.
const maxUploadBytes = 10 << 20

type statusBody struct {
	Status string `json:"status"`
}

type notesBody struct {
	Notes string `json:"notes"`
}

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errorResponse(w, s.log, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) decodeStatus(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body statusBody
	if !s.decode(w, r, &body) {
		return "", false
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		errorResponse(w, s.log, http.StatusBadRequest, "status is required")
		return "", false
	}
	return status, true
}

// reply writes data or the error.
func (s *Server) reply(w http.ResponseWriter, status int, data any, err error) {
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	dataResponse(w, s.log, status, data)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.backend.ListJobs(r.Context())
	s.reply(w, http.StatusOK, jobs, err)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.backend.GetJob(r.Context(), r.PathValue("id"))
	s.reply(w, http.StatusOK, job, err)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var job types.Job
	if !s.decode(w, r, &job) {
		return
	}
	created, err := s.backend.CreateJob(r.Context(), job)
	s.reply(w, http.StatusCreated, created, err)
}

func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := s.decodeStatus(w, r)
	if !ok {
		return
	}
	job, err := s.backend.UpdateJobStatus(r.Context(), r.PathValue("id"), types.JobStatus(status))
	s.reply(w, http.StatusOK, job, err)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	err := s.backend.DeleteJob(r.Context(), r.PathValue("id"))
	s.reply(w, http.StatusOK, nil, err)
}

func (s *Server) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	list, err := s.backend.ListApplicants(r.Context())
	s.reply(w, http.StatusOK, list, err)
}

func (s *Server) handleFilterApplicants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.backend.FilterApplicants(r.Context(), gateway.ApplicantQuery{
		Status: q.Get("status"),
		JobID:  q.Get("jobId"),
		Source: q.Get("source"),
		Search: q.Get("search"),
	})
	s.reply(w, http.StatusOK, list, err)
}

func (s *Server) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	a, err := s.backend.GetApplicant(r.Context(), r.PathValue("id"))
	s.reply(w, http.StatusOK, a, err)
}

// handleCreateApplicant accepts JSON or a multipart form with an
// "application" JSON field and a "resume" file.
func (s *Server) handleCreateApplicant(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var a types.Applicant
		if !s.decode(w, r, &a) {
			return
		}
		created, err := s.backend.CreateApplicant(r.Context(), a)
		s.reply(w, http.StatusCreated, created, err)
		return
	}

	a, resume, err := readUpload(w, r)
	if err != nil {
		errorResponse(w, s.log, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.backend.UploadApplicant(r.Context(), a, resume)
	s.reply(w, http.StatusCreated, created, err)
}

func readUpload(w http.ResponseWriter, r *http.Request) (types.Applicant, types.Attachment, error) {
	var (
		a      types.Applicant
		resume types.Attachment
	)
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return a, resume, fmt.Errorf("invalid multipart body: %w", err)
	}
	if err := json.Unmarshal([]byte(r.FormValue(gateway.FormFieldApplication)), &a); err != nil {
		return a, resume, fmt.Errorf("invalid %s field", gateway.FormFieldApplication)
	}
	file, header, err := r.FormFile(gateway.FormFieldResume)
	if err != nil {
		return a, resume, fmt.Errorf("%s file is required", gateway.FormFieldResume)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return a, resume, fmt.Errorf("read %s: %w", gateway.FormFieldResume, err)
	}
	resume = types.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return a, resume, nil
}

func (s *Server) handleUpdateApplicantStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := s.decodeStatus(w, r)
	if !ok {
		return
	}
	a, err := s.backend.UpdateApplicantStatus(r.Context(), r.PathValue("id"), types.ApplicantStatus(status))
	s.reply(w, http.StatusOK, a, err)
}

func (s *Server) handleAddApplicantNote(w http.ResponseWriter, r *http.Request) {
	var body notesBody
	if !s.decode(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Notes) == "" {
		errorResponse(w, s.log, http.StatusBadRequest, "notes is required")
		return
	}
	a, err := s.backend.AddApplicantNote(r.Context(), r.PathValue("id"), body.Notes)
	s.reply(w, http.StatusOK, a, err)
}

func (s *Server) handleDeleteApplicant(w http.ResponseWriter, r *http.Request) {
	err := s.backend.DeleteApplicant(r.Context(), r.PathValue("id"))
	s.reply(w, http.StatusOK, nil, err)
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	list, err := s.backend.ListInterviews(r.Context())
	s.reply(w, http.StatusOK, list, err)
}

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var iv types.Interview
	if !s.decode(w, r, &iv) {
		return
	}
	created, err := s.backend.CreateInterview(r.Context(), iv)
	s.reply(w, http.StatusCreated, created, err)
}

func (s *Server) handleUpdateInterviewStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := s.decodeStatus(w, r)
	if !ok {
		return
	}
	iv, err := s.backend.UpdateInterviewStatus(r.Context(), r.PathValue("id"), types.InterviewStatus(status))
	s.reply(w, http.StatusOK, iv, err)
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var fb types.Feedback
	if !s.decode(w, r, &fb) {
		return
	}
	if fb.Rating < 0 || fb.Rating > 5 {
		errorResponse(w, s.log, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	iv, err := s.backend.SubmitFeedback(r.Context(), r.PathValue("id"), fb)
	s.reply(w, http.StatusOK, iv, err)
}

func (s *Server) handleDeleteInterview(w http.ResponseWriter, r *http.Request) {
	err := s.backend.DeleteInterview(r.Context(), r.PathValue("id"))
	s.reply(w, http.StatusOK, nil, err)
}
