package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DBN92/our-journey-together/services"
	"github.com/DBN92/our-journey-together/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coachRouter(t *testing.T, gatewayURL string) *gin.Engine {
	t.Helper()
	t.Setenv("AI_GATEWAY_URL", gatewayURL)
	t.Setenv("AI_GATEWAY_KEY", "test-key")

	log, err := utils.NewLogger("")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ai/generate", NewCoachController(services.NewCoachService(log)).Generate)
	return r
}

func sseChunk(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n"
}

func TestCoachGenerateStreamsSSE(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(sseChunk("Vamos ") + sseChunk("treinar!") + "data: [DONE]\n"))
	}))
	defer gateway.Close()

	r := coachRouter(t, gateway.URL)

	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"type":"workout"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `data: {"content":"Vamos "}`)
	assert.Contains(t, body, `data: {"content":"treinar!"}`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestCoachGenerateAcceptsBooleanPreference(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(sseChunk("juntos!") + "data: [DONE]\n"))
	}))
	defer gateway.Close()

	r := coachRouter(t, gateway.URL)

	body := `{"type":"workout","preferences":{"goal":"Perder peso","together":true,"duration":45}}`
	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data: {"content":"juntos!"}`)
}

func TestCoachGenerateRateLimited(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer gateway.Close()

	r := coachRouter(t, gateway.URL)

	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"type":"meal"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Muitas requisições. Tente novamente em alguns segundos."}`, w.Body.String())
}

func TestCoachGenerateCreditsExhausted(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer gateway.Close()

	r := coachRouter(t, gateway.URL)

	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"type":"tip"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.JSONEq(t, `{"error":"Créditos de IA esgotados. Adicione mais créditos em Configurações."}`, w.Body.String())
}

func TestCoachGenerateBadBody(t *testing.T) {
	r := coachRouter(t, "http://unused")

	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
