package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobfiller/internal/server/ratelimit"
	"github.com/jonathan/jobfiller/internal/service"
	"github.com/jonathan/jobfiller/internal/storage"
)

const form = `<html><body><form>
<input id="fname" type="text">
<input name="email" type="email">
<input id="q-17" type="text">
</form></body></html>`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(storage.NewStore(storage.NewMemoryBackend()), nil)
	return New(Config{RateLimit: &ratelimit.Config{Enabled: false}}, svc).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func uploadResume(t *testing.T, h http.Handler, name string) {
	t.Helper()
	w, resp := do(t, h, http.MethodPost, "/resumes", map[string]any{
		"name": name,
		"data": map[string]any{"personal": map[string]any{"name": "Jane Doe", "email": "jane@x.com"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, resp)
}

func TestHealthEndpoint(t *testing.T) {
	w, resp := do(t, newTestServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	w, _ := do(t, newTestServer(t), http.MethodOptions, "/pages/fill", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzePage(t *testing.T) {
	w, resp := do(t, newTestServer(t), http.MethodPost, "/pages/analyze", PageRequest{HTML: form, Domain: "example.com"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	fields := resp["fields"].([]any)
	require.Len(t, fields, 3)
	first := fields[0].(map[string]any)
	assert.Equal(t, "id:fname", first["id"])
	assert.Equal(t, "personal.firstName", first["mapped"])
}

func TestAnalyzePage_MissingPage(t *testing.T) {
	w, resp := do(t, newTestServer(t), http.MethodPost, "/pages/analyze", PageRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestFillPage_NoResume(t *testing.T) {
	w, resp := do(t, newTestServer(t), http.MethodPost, "/pages/fill", PageRequest{HTML: form})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, service.NoResumeMessage, resp["message"])
}

func TestFillPage(t *testing.T) {
	h := newTestServer(t)
	uploadResume(t, h, "main")

	w, resp := do(t, h, http.MethodPost, "/pages/fill", PageRequest{HTML: form, Domain: "example.com"})

	require.Equal(t, http.StatusOK, w.Code, resp)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Filled 2 of 3 fields", resp["message"])
	assert.NotEmpty(t, resp["fill_id"])
	counts := resp["counts"].(map[string]any)
	assert.Equal(t, float64(2), counts["filled"])
	assert.Contains(t, resp["html"], `value="Jane"`)
	assert.Contains(t, resp["html"], `value="jane@x.com"`)
}

func TestFillPage_FromURL(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(form))
	}))
	defer site.Close()

	h := newTestServer(t)
	uploadResume(t, h, "main")

	w, resp := do(t, h, http.MethodPost, "/pages/fill", PageRequest{URL: site.URL + "/apply"})
	require.Equal(t, http.StatusOK, w.Code, resp)
	assert.Equal(t, "Filled 2 of 3 fields", resp["message"])
}

func TestFillPage_RedirectedURLUsesFinalHostMappings(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(form))
	}))
	defer site.Close()
	siteURL, err := url.Parse(site.URL)
	require.NoError(t, err)
	shortener := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://localhost:"+siteURL.Port()+"/apply", http.StatusFound)
	}))
	defer shortener.Close()

	h := newTestServer(t)
	uploadResume(t, h, "main")
	w, resp := do(t, h, http.MethodPut, "/mappings/localhost", map[string]any{"personal.email": "id:q-17"})
	require.Equal(t, http.StatusOK, w.Code, resp)

	w, resp = do(t, h, http.MethodPost, "/pages/fill", PageRequest{URL: shortener.URL + "/j/1"})
	require.Equal(t, http.StatusOK, w.Code, resp)
	assert.Equal(t, "Filled 3 of 3 fields", resp["message"])
}

func TestResumeEndpoints(t *testing.T) {
	h := newTestServer(t)
	uploadResume(t, h, "main")

	w, resp := do(t, h, http.MethodPost, "/resumes", ImportResumeRequest{
		Name: "text",
		Text: "John Smith\njohn@x.com\nSKILLS\nGo, SQL",
	})
	require.Equal(t, http.StatusCreated, w.Code, resp)
	assert.Equal(t, "heuristic", resp["metadata"].(map[string]any)["parser"])

	w, resp = do(t, h, http.MethodGet, "/resumes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["resumes"], 2)

	w, resp = do(t, h, http.MethodGet, "/resumes/text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["resume"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "John Smith", data["personal"].(map[string]any)["name"])

	w, _ = do(t, h, http.MethodPut, "/resumes/active", ActiveResumeRequest{Name: "text"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, h, http.MethodPut, "/resumes/active", ActiveResumeRequest{Name: "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/resumes/text", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, h, http.MethodDelete, "/resumes/text", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, h, http.MethodGet, "/resumes/text", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportResume_BadUploads(t *testing.T) {
	h := newTestServer(t)

	w, _ := do(t, h, http.MethodPost, "/resumes", map[string]any{"name": "x", "data": []int{1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodPost, "/resumes", map[string]any{"name": "x", "data": map[string]any{"personal": "nope"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodPost, "/resumes", map[string]any{"name": "", "text": "Jane"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/resumes", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMappingEndpoints(t *testing.T) {
	h := newTestServer(t)

	w, resp := do(t, h, http.MethodGet, "/mappings/example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, map[string]any{}, resp["mappings"])

	w, resp = do(t, h, http.MethodPut, "/mappings/example.com", map[string]any{
		"personal.phone": []string{"contact-number", "re:^tel"},
		"summary":        "cover",
	})
	require.Equal(t, http.StatusOK, w.Code, resp)
	assert.Equal(t, "Field mappings saved successfully", resp["message"])

	w, resp = do(t, h, http.MethodGet, "/mappings/example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mappings := resp["mappings"].(map[string]any)
	assert.Equal(t, []any{"contact-number", "re:^tel"}, mappings["personal.phone"])

	w, resp = do(t, h, http.MethodGet, "/mappings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"example.com"}, resp["domains"])

	w, _ = do(t, h, http.MethodPut, "/mappings/example.com", map[string]any{"personal.phone": "re:("})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodDelete, "/mappings/example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, h, http.MethodDelete, "/mappings/example.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	h := newTestServer(t)

	w, resp := do(t, h, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2000), resp["settings"].(map[string]any)["autofillDelay"])

	w, _ = do(t, h, http.MethodPut, "/settings", map[string]any{
		"settings":    map[string]any{"autofillDelay": 500, "darkMode": true},
		"apiSettings": map[string]any{"provider": "openai", "apiKey": "sk-abcdef"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = do(t, h, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(500), resp["settings"].(map[string]any)["autofillDelay"])
	assert.Equal(t, "****cdef", resp["apiSettings"].(map[string]any)["apiKey"])

	w, _ = do(t, h, http.MethodPut, "/settings", map[string]any{"settings": map[string]any{"autofillDelay": -5}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h, http.MethodPut, "/settings", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = do(t, h, http.MethodPost, "/settings/test", nil)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestRateLimit(t *testing.T) {
	svc := service.New(storage.NewStore(storage.NewMemoryBackend()), nil)
	h := New(Config{RateLimit: &ratelimit.Config{
		Enabled: true,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/pages/analyze", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	}}, svc).Handler()

	w, _ := do(t, h, http.MethodPost, "/pages/analyze", PageRequest{HTML: form})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := do(t, h, http.MethodPost, "/pages/analyze", PageRequest{HTML: form})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
