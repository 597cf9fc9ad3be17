package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"aacstudy-go/internal/testutil"
)

func TestCreateParticipant(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/participants/", map[string]interface{}{
		"name":           "이영희",
		"phone_last4":    "9876",
		"age":            41,
		"gender":         "female",
		"vision":         "normal",
		"consent_agreed": true,
		"block_order":    1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["participant_id"] != "P0001" {
		t.Errorf("participant_id = %v, want P0001", body["participant_id"])
	}
	if body["name"] != "이영희" {
		t.Errorf("name = %v", body["name"])
	}
}

func TestGetParticipantNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/participants/P9999/", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Participant not found" {
		t.Errorf("error = %v, want Participant not found", body["error"])
	}
}

func TestGetParticipant(t *testing.T) {
	r, db := newTestRouter(t)
	testutil.SeedParticipant(t, db, "P0001")

	w := doJSON(t, r, http.MethodGet, "/api/participants/P0001/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["participant_id"] != "P0001" {
		t.Errorf("participant_id = %v", body["participant_id"])
	}
}

func TestListParticipants(t *testing.T) {
	r, db := newTestRouter(t)
	testutil.SeedParticipant(t, db, "P0001")
	testutil.SeedParticipant(t, db, "P0002")

	w := doJSON(t, r, http.MethodGet, "/api/participants/list/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len = %d, want 2", len(list))
	}
}
