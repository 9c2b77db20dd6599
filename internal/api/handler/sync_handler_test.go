package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blaisecz/meal-cycle/internal/domain"
)

func TestSyncHandler_Status(t *testing.T) {
	queue := &MockSyncController{status: domain.SyncStatus{State: domain.SyncStatePending, Pending: 2}}
	h := NewSyncHandler(queue)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/v1/sync", nil))

	var got domain.SyncStatus
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if got.State != domain.SyncStatePending || got.Pending != 2 {
		t.Errorf("Status() = %+v", got)
	}
}

func TestSyncHandler_Flush(t *testing.T) {
	tests := []struct {
		name           string
		flushErr       error
		wantStatusCode int
	}{
		{name: "flushed", wantStatusCode: http.StatusOK},
		{name: "remote rejected batch", flushErr: errors.New("commit: connection reset"), wantStatusCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockSyncController{flushErr: tt.flushErr}
			h := NewSyncHandler(queue)

			rec := httptest.NewRecorder()
			h.Flush(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/flush", nil))

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Flush() status = %v, want %v", rec.Code, tt.wantStatusCode)
			}
			if queue.flushed != 1 {
				t.Errorf("Flush called %d times, want 1", queue.flushed)
			}
		})
	}
}

func TestSyncHandler_SetConnectivity(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantOnlineSet  []bool
	}{
		{name: "online", body: `{"online": true}`, wantStatusCode: http.StatusOK, wantOnlineSet: []bool{true}},
		{name: "offline", body: `{"online": false}`, wantStatusCode: http.StatusOK, wantOnlineSet: []bool{false}},
		{name: "missing field", body: `{}`, wantStatusCode: http.StatusUnprocessableEntity},
		{name: "invalid JSON", body: `{online}`, wantStatusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockSyncController{}
			h := NewSyncHandler(queue)

			req := httptest.NewRequest(http.MethodPut, "/v1/sync/connectivity", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.SetConnectivity(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("SetConnectivity() status = %v, want %v, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if len(queue.onlineSet) != len(tt.wantOnlineSet) {
				t.Fatalf("SetOnline calls = %v, want %v", queue.onlineSet, tt.wantOnlineSet)
			}
			for i := range tt.wantOnlineSet {
				if queue.onlineSet[i] != tt.wantOnlineSet[i] {
					t.Errorf("SetOnline calls = %v, want %v", queue.onlineSet, tt.wantOnlineSet)
				}
			}
		})
	}
}
