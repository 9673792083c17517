package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"poco-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"duplicate email", service.ErrDuplicateEmail, http.StatusBadRequest, MsgDuplicateEmail},
		{"duplicate request", service.ErrDuplicateRequest, http.StatusBadRequest, MsgDuplicateRequest},
		{"wrapped invalid input", fmt.Errorf("%w: self", service.ErrInvalidInput), http.StatusBadRequest, MsgInvalidInput},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
		{"not found", service.ErrNotFound, http.StatusNotFound, MsgNotFound},
		{"storage", fmt.Errorf("%w: create user", service.ErrStorageFailure), http.StatusInternalServerError, MsgInternalError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, MsgInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Status(tt.err)
			if status != tt.wantStatus || msg != tt.wantMsg {
				t.Errorf("Status() = %d %q, want %d %q", status, msg, tt.wantStatus, tt.wantMsg)
			}
		})
	}
}

func TestFromError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FromError(c, fmt.Errorf("%w: dial tcp 10.0.0.1:3306: refused", service.ErrStorageFailure))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != MsgInternalError {
		t.Errorf("error = %q, want %q", body.Error, MsgInternalError)
	}
	if !c.IsAborted() || len(c.Errors) != 1 {
		t.Errorf("aborted = %v, errors = %v", c.IsAborted(), c.Errors)
	}
}

func TestMissingFields(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	MissingFields(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := w.Body.String(); got != `{"error":"Missing required fields"}` {
		t.Errorf("body = %s", got)
	}
}
