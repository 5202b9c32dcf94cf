package gateway

import (
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/hiretrack/internal/logging"
)

// DemoEnvelope is the body synthesised for a transport failure in demo mode.
const DemoEnvelope = `{"data":null,"success":true,"demo":true}`

// Interceptor wraps a transport. When a request fails before producing a
// response and the session is in demo mode, it answers with DemoEnvelope
// instead of the error.
type Interceptor struct {
	next http.RoundTripper
	demo DemoChecker
	log  logrus.FieldLogger
}

// NewInterceptor wraps next (http.DefaultTransport when nil).
func NewInterceptor(next http.RoundTripper, demo DemoChecker, log logrus.FieldLogger) *Interceptor {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Interceptor{next: next, demo: demo, log: logging.OrDiscard(log)}
}

// RoundTrip implements http.RoundTripper.
func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := i.next.RoundTrip(req)
	if err == nil {
		return resp, nil
	}
	// a cancelled caller gets its error back
	if req.Context().Err() != nil {
		return nil, err
	}
	if !i.demo.Enabled(req.Context()) {
		return nil, err
	}

	i.log.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"error":  err,
	}).Warn("backend unreachable in demo mode, returning demo envelope")

	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(strings.NewReader(DemoEnvelope)),
		ContentLength: int64(len(DemoEnvelope)),
		Request:       req,
	}, nil
}
