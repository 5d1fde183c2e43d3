package api

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SaeeDawod/gen-nft-app/internal/config"
	"github.com/SaeeDawod/gen-nft-app/internal/mint"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 0x22, G: 0x99, B: 0x55, A: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	base := t.TempDir()

	layerDir := filepath.Join(base, "background")
	if err := os.MkdirAll(layerDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeTestPNG(t, filepath.Join(layerDir, "blue.png"))

	s := config.DefaultSettings()
	s.CollectionName = "Punkz"
	s.ImageWidth = 32
	s.ImageHeight = 32
	s.OutputPath = filepath.Join(base, "output")
	s.Layers = []config.LayerSettings{
		{Name: "Background", Dir: layerDir, Required: true},
	}
	s.RequestMaxRetries = 2
	s.RequestRetryCooldown = 0.001
	s.RequestRetryExponent = 1.0
	return s
}

func newTestRouter(t *testing.T, settings *config.Settings) (*gin.Engine, *mint.Manager) {
	t.Helper()
	manager, err := mint.NewManager(settings, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	r := gin.New()
	RegisterRoutes(r, NewServer(settings, manager))
	return r, manager
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, testSettings(t))

	w := doJSON(r, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp := decodeBody(t, w); resp["status"] != "ok" {
		t.Errorf("body = %v, want status ok", resp)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	settings := testSettings(t)
	r, manager := newTestRouter(t, settings)

	w := doJSON(r, http.MethodPost, "/api/generate", `{"count":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["first_id"] != float64(1) {
		t.Errorf("first_id = %v, want 1", resp["first_id"])
	}
	if resp["generated"] != float64(2) {
		t.Errorf("generated = %v, want 2", resp["generated"])
	}

	ids, err := manager.ExistingTokenIDs()
	if err != nil || len(ids) != 2 {
		t.Errorf("ExistingTokenIDs() = %v, %v; want two tokens on disk", ids, err)
	}
}

func TestGenerateEndpoint_DefaultsToOne(t *testing.T) {
	r, _ := newTestRouter(t, testSettings(t))

	w := doJSON(r, http.MethodPost, "/api/generate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if resp := decodeBody(t, w); resp["generated"] != float64(1) {
		t.Errorf("generated = %v, want 1", resp["generated"])
	}
}

func TestGenerateEndpoint_CountTooLarge(t *testing.T) {
	r, _ := newTestRouter(t, testSettings(t))

	w := doJSON(r, http.MethodPost, "/api/generate", `{"count":100000}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGenerateEndpoint_ConcurrentRequestsGetDistinctIDs(t *testing.T) {
	settings := testSettings(t)
	r, manager := newTestRouter(t, settings)

	recorders := make([]*httptest.ResponseRecorder, 2)
	var wg sync.WaitGroup
	for i := range recorders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recorders[i] = doJSON(r, http.MethodPost, "/api/generate", `{"count":2}`)
		}(i)
	}
	wg.Wait()

	firstIDs := make(map[float64]bool, len(recorders))
	for _, w := range recorders {
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		id, ok := decodeBody(t, w)["first_id"].(float64)
		if !ok {
			t.Fatalf("first_id missing in %s", w.Body.String())
		}
		firstIDs[id] = true
	}
	if len(firstIDs) != 2 {
		t.Errorf("first ids = %v, want a distinct batch start per request", firstIDs)
	}

	ids, err := manager.ExistingTokenIDs()
	if err != nil {
		t.Fatalf("ExistingTokenIDs() error = %v", err)
	}
	if len(ids) != 4 {
		t.Errorf("ExistingTokenIDs() = %v, want four distinct tokens", ids)
	}
}

func TestMintEndpoint_NotConfigured(t *testing.T) {
	r, _ := newTestRouter(t, testSettings(t))

	w := doJSON(r, http.MethodPost, "/api/mint", `{"to":"0x1234567890abcdef1234567890abcdef12345678"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

// contractStub fakes the contract service for handler tests.
func contractStub(t *testing.T, settings *config.Settings) {
	t.Helper()
	var supply uint64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/mint"):
			supply++
			fmt.Fprint(w, `{"transactionHash":"0xabc"}`)
		case strings.HasSuffix(r.URL.Path, "/total-supply"):
			fmt.Fprint(w, supply)
		default:
			fmt.Fprint(w, `{"transactionHash":"0xadmin"}`)
		}
	}))
	t.Cleanup(server.Close)
	settings.ContractServiceURL = server.URL
	settings.ContractAddress = "0x1234567890abcdef1234567890abcdef12345678"
}

func TestMintEndpoint(t *testing.T) {
	settings := testSettings(t)
	contractStub(t, settings)
	r, _ := newTestRouter(t, settings)

	w := doJSON(r, http.MethodPost, "/api/mint", `{"to":"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["token_id"] != float64(1) {
		t.Errorf("token_id = %v, want 1", resp["token_id"])
	}
	if resp["tx_hash"] != "0xabc" {
		t.Errorf("tx_hash = %v, want 0xabc", resp["tx_hash"])
	}
}

func TestMintEndpoint_InvalidAddress(t *testing.T) {
	settings := testSettings(t)
	contractStub(t, settings)
	r, _ := newTestRouter(t, settings)

	w := doJSON(r, http.MethodPost, "/api/mint", `{"to":"0x123"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestTokenFileEndpoints(t *testing.T) {
	settings := testSettings(t)
	r, manager := newTestRouter(t, settings)

	if _, err := manager.GenerateBatch(context.Background(), 1, 1); err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}

	w := doJSON(r, http.MethodGet, "/api/tokens/1/image", "")
	if w.Code != http.StatusOK {
		t.Fatalf("image status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "image/png") {
		t.Errorf("image Content-Type = %q, want image/png", ct)
	}

	w = doJSON(r, http.MethodGet, "/api/tokens/1/metadata", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metadata status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Punkz #1") {
		t.Errorf("metadata body %q does not name the token", w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/tokens/99/image", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing token status = %d, want 404", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/tokens/abc/image", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}

func TestTokenCardEndpoint(t *testing.T) {
	settings := testSettings(t)
	r, manager := newTestRouter(t, settings)

	if _, err := manager.GenerateBatch(context.Background(), 1, 1); err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}

	w := doJSON(r, http.MethodGet, "/api/tokens/1/card", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Punkz-1.png") {
		t.Errorf("Content-Disposition = %q, want filename Punkz-1.png", cd)
	}

	w = doJSON(r, http.MethodGet, "/api/tokens/42/card", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing token card status = %d, want 404", w.Code)
	}
}

func TestTransfersEndpoint_NotConfigured(t *testing.T) {
	r, _ := newTestRouter(t, testSettings(t))

	w := doJSON(r, http.MethodGet, "/api/transfers", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestTransfersEndpoint(t *testing.T) {
	settings := testSettings(t)
	indexerStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"transfers":[
			{"id":"0xaaa-0","from":{"id":"0x0000000000000000000000000000000000000000"},"to":{"id":"0x1234567890abcdef1234567890abcdef12345678"},"tokenId":"1","timestamp":"1684147800"}
		]}}`)
	}))
	t.Cleanup(indexerStub.Close)
	settings.IndexerURL = indexerStub.URL

	r, _ := newTestRouter(t, settings)

	w := doJSON(r, http.MethodGet, "/api/transfers?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["count"] != float64(1) {
		t.Errorf("count = %v, want 1", resp["count"])
	}
}

func TestAdminEndpoints_BearerToken(t *testing.T) {
	settings := testSettings(t)
	contractStub(t, settings)
	settings.ServerAdminToken = "secret"
	r, _ := newTestRouter(t, settings)

	w := doJSON(r, http.MethodPost, "/api/admin/collect-reserves", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/collect-reserves", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status with wrong token = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/collect-reserves", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status with token = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["tx_hash"] != "0xadmin" {
		t.Errorf("tx_hash = %v, want 0xadmin", resp["tx_hash"])
	}
}

func TestAdminEndpoints_OpenWithoutConfiguredToken(t *testing.T) {
	settings := testSettings(t)
	contractStub(t, settings)
	r, _ := newTestRouter(t, settings)

	w := doJSON(r, http.MethodPost, "/api/admin/pause", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with no admin token configured", w.Code)
	}
}

func TestSetBaseURIEndpoint(t *testing.T) {
	settings := testSettings(t)
	contractStub(t, settings)
	r, _ := newTestRouter(t, settings)

	w := doJSON(r, http.MethodPost, "/api/admin/base-uri", `{"base_uri":"https://meta.example.com/punkz/"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/admin/base-uri", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status without base_uri = %d, want 400", w.Code)
	}
}

func TestAdminEndpoints_NoContract(t *testing.T) {
	r, _ := newTestRouter(t, testSettings(t))

	w := doJSON(r, http.MethodPost, "/api/admin/start-sale", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
