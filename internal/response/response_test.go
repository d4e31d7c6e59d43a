package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return body
}

func TestSuccessUsesRequestID(t *testing.T) {
	c, w := newContext()
	c.Set(ContextKeyRequestID, "req-123")

	Success(c, http.StatusOK, gin.H{"department": gin.H{"id": 1}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if _, hasErr := body["error"]; hasErr {
		t.Error("success response should omit error")
	}
	meta := body["metadata"].(map[string]any)
	if meta["request_id"] != "req-123" {
		t.Errorf("request_id = %v", meta["request_id"])
	}
}

func TestFailWithFields(t *testing.T) {
	c, w := newContext()

	FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"name": "name is a required field"})

	body := decode(t, w)
	if body["data"] != nil {
		t.Errorf("data should be null, got %v", body["data"])
	}
	errBody := body["error"].(map[string]any)
	if errBody["code"] != string(ErrValidation) {
		t.Errorf("code = %v", errBody["code"])
	}
	fields := errBody["fields"].(map[string]any)
	if fields["name"] != "name is a required field" {
		t.Errorf("fields = %v", fields)
	}
	meta := body["metadata"].(map[string]any)
	if meta["request_id"] == "" {
		t.Error("fallback request id should be generated")
	}
}

func TestFailWithMessage(t *testing.T) {
	c, w := newContext()

	FailWithMessage(c, http.StatusNotFound, ErrNotFound, "department with id 9 not found")

	errBody := decode(t, w)["error"].(map[string]any)
	if errBody["message"] != "department with id 9 not found" {
		t.Errorf("message = %v", errBody["message"])
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { Success(c, http.StatusOK, nil) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "from-client")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "from-client" {
		t.Errorf("X-Request-ID = %q, want from-client", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("a request id should be generated")
	}
}

func TestRequestIDMiddlewareRejectsUnsafeIDs(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { Success(c, http.StatusOK, nil) })

	for _, incoming := range []string{
		"line\nbreak",
		"<script>",
		strings.Repeat("a", maxRequestIDLength+1),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", incoming)
		r.ServeHTTP(w, req)

		got := w.Header().Get("X-Request-ID")
		if got == incoming || got == "" {
			t.Errorf("incoming %q should be replaced, got %q", incoming, got)
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("replacement %q is not a uuid", got)
		}
	}
}

func TestGetMessageDefault(t *testing.T) {
	if GetMessage("SOMETHING_ELSE") != "An unexpected error occurred." {
		t.Error("unknown codes should map to the default message")
	}
}
