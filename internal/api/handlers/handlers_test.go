package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/api/middleware"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

// stubAuditor implements service.Auditor for handler tests.
type stubAuditor struct {
	chunks     int
	proposed   int
	err        error
	clientName string
	detectErr  error
}

func (a *stubAuditor) BuildIndex(_ context.Context, sess *domain.Session) (int, error) {
	if a.err != nil {
		return 0, a.err
	}
	sess.Index = &domain.Index{}
	return a.chunks, nil
}

func (a *stubAuditor) Prefill(_ context.Context, sess *domain.Session) (int, error) {
	if a.err != nil {
		return 0, a.err
	}
	return a.proposed, nil
}

func (a *stubAuditor) DetectClient(context.Context, []domain.ExtractedDocument) (string, error) {
	if a.detectErr != nil {
		return "", a.detectErr
	}
	if a.clientName == "" {
		return service.UnknownClient, nil
	}
	return a.clientName, nil
}

func newSession() *domain.Session {
	return domain.NewSession("s-1", "ACME", domain.AuditModeInternal, time.Now())
}

// withSession injects a session the way the session middleware does.
func withSession(req *http.Request, sess *domain.Session) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.SessionKey, sess)
	return req.WithContext(ctx)
}

// withURLParam injects a chi route parameter.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// multipartBody builds a multipart request body with the given files
// under the "files" field.
func multipartBody(files map[string][]byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		part, _ := mw.CreateFormFile("files", name)
		part.Write(data)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func doRequest(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}
