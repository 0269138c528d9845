package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/s50889/ordesite2-sub001/pkg/config"
)

func TestStaticAssetsServesFilesNotShell(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('portal');"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	handler := StaticAssets(dir)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an existing asset, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "portal") {
		t.Fatalf("unexpected asset body %q", body)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.js", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing asset, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); strings.Contains(ct, "text/html") && strings.Contains(rec.Body.String(), "<!doctype") {
		t.Fatalf("missing asset must not fall through to the page shell")
	}
}

func TestPortalShellRendersBootstrap(t *testing.T) {
	handler := PortalShell(config.AppConfig{BaseURL: "https://portal.example.com"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-api-base="https://portal.example.com"`) {
		t.Fatalf("shell missing api base, body: %s", body)
	}
	if !strings.Contains(body, "/static/app.js") {
		t.Fatalf("shell missing bundle reference, body: %s", body)
	}
}
