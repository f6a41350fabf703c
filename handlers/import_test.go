package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/MatheusPalmieri/finance/statement"
)

func setupImportApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/import/preview", PreviewImport)
	app.Post("/api/v1/import/error-report", ExportErrorReport)
	return app
}

func multipartFile(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "extrato.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()
	return &body, w.FormDataContentType()
}

func TestPreviewImportRequiresUser(t *testing.T) {
	app := setupImportApp()

	body, contentType := multipartFile(t, "Data,Valor,Descrição\n01/09/2025,-1.00,Pix\n")
	req := httptest.NewRequest("POST", "/api/v1/import/preview", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401 without X-User-ID, got %d", resp.StatusCode)
	}
}

func TestPreviewImportParsesFile(t *testing.T) {
	app := setupImportApp()

	content := "Data,Valor,Identificador,Descrição\n" +
		"01/09/2025,-45.90,abc-1,Compra no débito - PADARIA\n" +
		"linha-inválida\n"
	body, contentType := multipartFile(t, content)

	req := httptest.NewRequest("POST", "/api/v1/import/preview", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", uuid.NewString())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Transactions []statement.Candidate `json:"transactions"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}
	if !result.Transactions[0].IsValid {
		t.Errorf("first row must be valid, errors: %v", result.Transactions[0].Errors)
	}
	if result.Transactions[1].IsValid {
		t.Error("malformed row must be returned invalid, not dropped")
	}
}

func TestPreviewImportStructuralError(t *testing.T) {
	app := setupImportApp()

	body, contentType := multipartFile(t, "ColunaA,ColunaB\n1,2\n")
	req := httptest.NewRequest("POST", "/api/v1/import/preview", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", uuid.NewString())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for missing columns, got %d", resp.StatusCode)
	}
}

func TestExportErrorReport(t *testing.T) {
	app := setupImportApp()

	payload, _ := json.Marshal(ErrorReportRequest{
		Failed: []statement.Candidate{{
			OriginalRow: 2,
			Date:        "2025-09-01",
			Description: "Algo",
			Amount:      10,
			Errors:      []string{"backend rejected insert"},
		}},
	})

	req := httptest.NewRequest("POST", "/api/v1/import/error-report", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", uuid.NewString())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("content type: got %q, want text/csv", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content disposition: got %q", cd)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(raw), "Row,Error,Date,Description,Amount") {
		t.Errorf("unexpected report body: %q", string(raw))
	}
}
