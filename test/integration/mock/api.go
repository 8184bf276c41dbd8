package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// GeminiApiMock stands in for the Gemini generateContent REST endpoint. Every
// call is recorded and answered with the configured response.
type GeminiApiMock struct {
	mu               sync.Mutex
	server           *httptest.Server
	requestsReceived []GeminiRequest
	response         mockResponse
}

// GeminiRequest is one recorded call.
type GeminiRequest struct {
	Path    string
	Headers map[string]string
	Body    map[string]any
}

type mockResponse struct {
	status int
	body   any
}

func NewGeminiApiServer() *GeminiApiMock {
	return &GeminiApiMock{
		response: mockResponse{status: http.StatusOK, body: textResponse("")},
	}
}

func (a *GeminiApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *GeminiApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *GeminiApiMock) GetUrl() string {
	return a.server.URL
}

func (a *GeminiApiMock) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	headers := map[string]string{}
	for key, value := range r.Header {
		headers[key] = value[0]
	}

	a.mu.Lock()
	a.requestsReceived = append(a.requestsReceived, GeminiRequest{
		Path:    r.URL.Path,
		Headers: headers,
		Body:    request,
	})
	response := a.response
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	payload, _ := json.Marshal(response.body)
	_, _ = w.Write(payload)
}

// RespondWithText makes the model answer text from now on.
func (a *GeminiApiMock) RespondWithText(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.response = mockResponse{status: http.StatusOK, body: textResponse(text)}
}

// FailWithStatus makes every call fail with the given HTTP status.
func (a *GeminiApiMock) FailWithStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.response = mockResponse{
		status: status,
		body: map[string]any{
			"error": map[string]any{
				"code":    status,
				"message": http.StatusText(status),
				"status":  strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_")),
			},
		},
	}
}

// Requests returns the calls received so far.
func (a *GeminiApiMock) Requests() []GeminiRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]GeminiRequest(nil), a.requestsReceived...)
}

// PromptText concatenates the text parts sent in a recorded request.
func (r GeminiRequest) PromptText() string {
	var b strings.Builder
	contents, _ := r.Body["contents"].([]any)
	for _, c := range contents {
		content, _ := c.(map[string]any)
		parts, _ := content["parts"].([]any)
		for _, p := range parts {
			part, _ := p.(map[string]any)
			if text, ok := part["text"].(string); ok {
				b.WriteString(text)
			}
		}
	}
	return b.String()
}

// Reset clears recorded calls and restores the empty default answer.
func (a *GeminiApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestsReceived = nil
	a.response = mockResponse{status: http.StatusOK, body: textResponse("")}
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}
