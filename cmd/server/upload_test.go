package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/resumelift/resume-enhancer/internal/config"
	"github.com/resumelift/resume-enhancer/internal/extract"
	officeextractor "github.com/resumelift/resume-enhancer/internal/extractors/office"
	pdfextractor "github.com/resumelift/resume-enhancer/internal/extractors/pdf"
	"github.com/resumelift/resume-enhancer/internal/pipeline"
	"github.com/resumelift/resume-enhancer/internal/render"
)

type stubAnalyzer struct {
	keywords []string
	err      error
}

func (s *stubAnalyzer) AnalyzeEntities(ctx context.Context, text string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.keywords, nil
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memStore) Upload(ctx context.Context, bucket, object string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[bucket+"/"+object] = data
	return nil
}

func (m *memStore) PublicURL(bucket, object string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + object
}

func setupServer(t *testing.T, analyzer pipeline.EntityAnalyzer) *memStore {
	t.Helper()

	cfg = config.Load()
	store := &memStore{}

	registry := extract.NewRegistry()
	registry.Register(pdfextractor.New())
	registry.Register(officeextractor.NewDOCX())

	pipe = pipeline.New(registry, analyzer, store, render.New(),
		cfg.UploadBucket, cfg.OutputBucket, cfg.MaxUploadBytes)
	return store
}

func TestUploadMissingResumeField(t *testing.T) {
	setupServer(t, &stubAnalyzer{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("name", "jane"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	rec := doUpload(t, mw.FormDataContentType(), &body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "No file uploaded" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestUploadUnsupportedExtension(t *testing.T) {
	setupServer(t, &stubAnalyzer{})

	ct, body := multipartFile(t, "resume.txt", []byte("plain text resume"))
	rec := doUpload(t, ct, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "PDF or DOCX") {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestUploadUnsupportedRawContentType(t *testing.T) {
	setupServer(t, &stubAnalyzer{})

	rec := doUpload(t, "text/plain", strings.NewReader("plain text resume"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Unsupported file format or content type" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestUploadMultipartPDFEndToEnd(t *testing.T) {
	store := setupServer(t, &stubAnalyzer{keywords: []string{"engineer"}})

	ct, body := multipartFile(t, "john_doe.pdf", pdfFixture(t, "Experienced engineer."))
	rec := doUpload(t, ct, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message     string `json:"message"`
		DownloadURL string `json:"download_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Resume uploaded and processed" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if !strings.HasSuffix(resp.DownloadURL, "john_doe_enhanced.pdf") {
		t.Fatalf("unexpected download url %q", resp.DownloadURL)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.objects[cfg.UploadBucket+"/john_doe.pdf"]; !ok {
		t.Fatalf("original artifact missing")
	}
	if _, ok := store.objects[cfg.OutputBucket+"/john_doe_enhanced.pdf"]; !ok {
		t.Fatalf("enhanced artifact missing")
	}
}

func TestUploadAnalyzerOutageReturnsBadGateway(t *testing.T) {
	setupServer(t, &stubAnalyzer{err: fmt.Errorf("connection refused")})

	ct, body := multipartFile(t, "resume.pdf", pdfFixture(t, "Experienced engineer."))
	rec := doUpload(t, ct, body)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func doUpload(t *testing.T, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handleUpload(rec, req)
	return rec
}

func multipartFile(t *testing.T, fileName string, data []byte) (string, io.Reader) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("resume", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return mw.FormDataContentType(), &body
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp.Error
}

func pdfFixture(t *testing.T, text string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(72, 720, text)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf fixture: %v", err)
	}
	return buf.Bytes()
}
