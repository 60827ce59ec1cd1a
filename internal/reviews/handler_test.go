package reviews

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-feedback-backend/internal/llm"
	"resume-feedback-backend/internal/shared/tempfiles"
)

func newTestRouter(t *testing.T, svc *Service, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	RegisterRoutes(api, svc)
	return r
}

func multipartUpload(t *testing.T, fileName string, content []byte, jobRole string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if jobRole != "" {
		if err := writer.WriteField("jobRole", jobRole); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func decodeErrorCode(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error.Code
}

func TestUploadEndpointReturnsAnalysis(t *testing.T) {
	score := 9.0
	ai := &stubClient{result: llm.Result{
		FeedbackText: "Strong resume.\nATS Score: 9/10",
		ATSScore:     &score,
	}}
	repo := NewMemoryRepo()
	tempBase := t.TempDir()
	svc := NewService(repo, ai, tempfiles.New(tempBase))
	router := newTestRouter(t, svc, "user-1")

	body, contentType := multipartUpload(t, "resume.pdf", samplePDF(t), "Backend Engineer")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Success    bool     `json:"success"`
		JobRole    string   `json:"jobRole"`
		Analysis   string   `json:"analysis"`
		ATSScore   *float64 `json:"atsScore"`
		AnalysisID string   `json:"analysisId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Success {
		t.Fatal("expected success true")
	}
	if payload.JobRole != "Backend Engineer" {
		t.Fatalf("unexpected jobRole %q", payload.JobRole)
	}
	if payload.ATSScore == nil || *payload.ATSScore != 9 {
		t.Fatalf("expected atsScore 9, got %v", payload.ATSScore)
	}
	if payload.AnalysisID == "" {
		t.Fatal("expected analysisId")
	}

	if _, err := repo.GetOwned(context.Background(), "user-1", payload.AnalysisID); err != nil {
		t.Fatalf("review not persisted: %v", err)
	}
	if n := dirEntryCount(t, tempBase); n != 0 {
		t.Fatalf("expected temp dir empty, found %d entries", n)
	}
}

func TestUploadEndpointRejectsUnsupportedType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, &stubClient{result: llm.Degraded()}, tempfiles.New(t.TempDir()))
	router := newTestRouter(t, svc, "user-1")

	body, contentType := multipartUpload(t, "resume.txt", []byte("plain text"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body); code != "unsupported_file_type" {
		t.Fatalf("expected unsupported_file_type, got %q", code)
	}

	list, _ := repo.ListByUser(context.Background(), "user-1")
	if len(list) != 0 {
		t.Fatal("rejected upload must not be persisted")
	}
}

func TestUploadEndpointRequiresFile(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &stubClient{result: llm.Degraded()}, tempfiles.New(t.TempDir()))
	router := newTestRouter(t, svc, "user-1")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("jobRole", "Backend Engineer"); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body); code != "no_file_provided" {
		t.Fatalf("expected no_file_provided, got %q", code)
	}
}

func TestUploadEndpointRequiresIdentity(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &stubClient{result: llm.Degraded()}, tempfiles.New(t.TempDir()))
	router := newTestRouter(t, svc, "")

	body, contentType := multipartUpload(t, "resume.pdf", samplePDF(t), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHistoryEndpointReturnsCallerReviews(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, &stubClient{result: llm.Degraded()}, tempfiles.New(t.TempDir()))
	router := newTestRouter(t, svc, "user-1")

	score := 8.0
	seed := []*Review{
		{ID: "rev-1", UserID: "user-1", FileName: "a.pdf", JobRole: "X", AIFeedback: "f1", ATSScore: &score},
		{ID: "rev-2", UserID: "someone-else", FileName: "b.pdf", JobRole: "Y", AIFeedback: "f2"},
	}
	for _, review := range seed {
		if err := repo.Create(context.Background(), review); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/history", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Success bool          `json:"success"`
		History []HistoryItem `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Success {
		t.Fatal("expected success true")
	}
	if len(payload.History) != 1 {
		t.Fatalf("expected only the caller's review, got %d", len(payload.History))
	}
	if payload.History[0].FileName != "a.pdf" {
		t.Fatalf("unexpected file name %q", payload.History[0].FileName)
	}
	if payload.History[0].ATSScore == nil || *payload.History[0].ATSScore != 8 {
		t.Fatalf("unexpected score %v", payload.History[0].ATSScore)
	}
}

func TestReportEndpointHidesUnknownAndForeignReviews(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, &stubClient{result: llm.Degraded()}, tempfiles.New(t.TempDir()))
	router := newTestRouter(t, svc, "user-1")

	foreign := &Review{ID: "rev-9", UserID: "someone-else", FileName: "x.pdf", JobRole: "Z", AIFeedback: "f"}
	if err := repo.Create(context.Background(), foreign); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"does-not-exist", "rev-9"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+id+"/report", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("id %s: expected 404, got %d", id, rec.Code)
		}
		if code := decodeErrorCode(t, rec.Body); code != "not_found" {
			t.Fatalf("id %s: expected not_found, got %q", id, code)
		}
	}
}
