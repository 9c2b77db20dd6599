package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewAndWithErrors(t *testing.T) {
	fieldErrors := []FieldError{{Field: "name", Message: "required"}}
	p := New(http.StatusBadRequest, "bad-request", "Bad Request", "details").WithErrors(fieldErrors)

	if got, want := p.Type, BaseURI+"/bad-request"; got != want {
		t.Fatalf("unexpected type: got %q want %q", got, want)
	}
	if p.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", p.Status)
	}
	if len(p.Errors) != 1 || p.Errors[0] != fieldErrors[0] {
		t.Fatalf("errors not set: %+v", p.Errors)
	}
}

func TestProblemWrite(t *testing.T) {
	resp := httptest.NewRecorder()
	p := BadRequest("invalid")
	p.Write(resp)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != ContentType {
		t.Fatalf("missing content type: %s", got)
	}

	var decoded Problem
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.Title != "Bad Request" || decoded.Detail != "invalid" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestWithWindow(t *testing.T) {
	resp := httptest.NewRecorder()
	WindowExpired("slot 5 closed").WithWindow(5, 7*time.Minute+time.Second, 3*time.Minute, 7*time.Minute).Write(resp)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	var decoded Problem
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.Slot == nil || *decoded.Slot != 5 {
		t.Fatalf("slot missing: %+v", decoded)
	}
	if *decoded.ElapsedSeconds != 421 || *decoded.EarliestSeconds != 180 || *decoded.DeadlineSeconds != 420 {
		t.Fatalf("unexpected bounds: %v %v %v", *decoded.ElapsedSeconds, *decoded.EarliestSeconds, *decoded.DeadlineSeconds)
	}
}

func TestWindowFieldsOmittedByDefault(t *testing.T) {
	resp := httptest.NewRecorder()
	Conflict("busy").Write(resp)

	if body := resp.Body.String(); strings.Contains(body, "slot") || strings.Contains(body, "elapsed_seconds") {
		t.Fatalf("window fields leaked: %s", body)
	}
}
