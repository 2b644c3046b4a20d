package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/decker502/antigravity/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	r := NewRouter(Options{})

	w := serve(t, r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"<title>Anti-Gravity</title>", "wasm_exec.js", "antigravity.wasm", "#0a0a0a"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestIndex_CustomTitle(t *testing.T) {
	r := NewRouter(Options{Title: "Portfolio"})

	if body := serve(t, r, "/").Body.String(); !strings.Contains(body, "<title>Portfolio</title>") {
		t.Errorf("custom title not rendered: %s", body)
	}
}

func TestFieldAPI(t *testing.T) {
	cfg := config.DefaultFieldConfig()
	cfg.ParticleCount = 42
	r := NewRouter(Options{Field: cfg})

	w := serve(t, r, "/api/field")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/field status = %d, want 200", w.Code)
	}

	var got struct {
		ParticleCount int `json:"particleCount"`
		Links         struct {
			Distance float64 `json:"distance"`
		} `json:"links"`
		Colors struct {
			Accent string `json:"accent"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ParticleCount != 42 {
		t.Errorf("particleCount = %d, want 42", got.ParticleCount)
	}
	if got.Links.Distance != cfg.Links.Distance {
		t.Errorf("links.distance = %v, want %v", got.Links.Distance, cfg.Links.Distance)
	}
	if got.Colors.Accent != cfg.Colors.Accent {
		t.Errorf("colors.accent = %q, want %q", got.Colors.Accent, cfg.Colors.Accent)
	}
}

func TestHealthz(t *testing.T) {
	w := serve(t, NewRouter(Options{}), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wasm_exec.js"), []byte("// loader"), 0644); err != nil {
		t.Fatalf("write static file: %v", err)
	}

	r := NewRouter(Options{StaticDir: dir})
	w := serve(t, r, "/static/wasm_exec.js")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /static/wasm_exec.js status = %d, want 200", w.Code)
	}
	if w.Body.String() != "// loader" {
		t.Errorf("body = %q", w.Body.String())
	}

	if w := serve(t, r, "/static/missing.wasm"); w.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d, want 404", w.Code)
	}

	if w := serve(t, NewRouter(Options{}), "/static/wasm_exec.js"); w.Code != http.StatusNotFound {
		t.Errorf("no static dir status = %d, want 404", w.Code)
	}
}
