package handlers

import (
	"net/http"
	"testing"

	"aacstudy-go/internal/models"
	"aacstudy-go/internal/testutil"
)

func preferencePayload(participantID string, count int) map[string]interface{} {
	words := models.DefaultVocabulary().Words
	prefs := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		prefs = append(prefs, map[string]interface{}{
			"target_word": words[i%len(words)],
			"ai_position": "left",
			"chosen":      "left",
			"chosen_type": "ai",
		})
	}
	return map[string]interface{}{
		"participant_id": participantID,
		"preferences":    prefs,
	}
}

func TestSubmitSymbolPreferences(t *testing.T) {
	r, db := newTestRouter(t)
	p := testutil.SeedParticipant(t, db, "P0001")

	w := doJSON(t, r, http.MethodPost, "/api/submit-symbol-preferences/", preferencePayload("P0001", 7))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["count"].(float64) != 7 {
		t.Errorf("count = %v, want 7", body["count"])
	}

	var rows int64
	db.Model(&models.SymbolPreference{}).Where("participant_id = ?", p.ID).Count(&rows)
	if rows != 7 {
		t.Errorf("rows = %d, want 7", rows)
	}
}

func TestSubmitSymbolPreferencesWrongCount(t *testing.T) {
	r, db := newTestRouter(t)
	testutil.SeedParticipant(t, db, "P0001")

	for _, count := range []int{0, 6, 8} {
		w := doJSON(t, r, http.MethodPost, "/api/submit-symbol-preferences/", preferencePayload("P0001", count))
		if w.Code != http.StatusBadRequest {
			t.Errorf("count %d: status = %d, want 400", count, w.Code)
		}
	}

	var rows int64
	db.Model(&models.SymbolPreference{}).Count(&rows)
	if rows != 0 {
		t.Errorf("rows after rejected submissions = %d, want 0", rows)
	}
}

func TestSubmitSymbolPreferencesMissingParticipantID(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit-symbol-preferences/", preferencePayload("", 7))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSubmitSymbolPreferencesUnknownParticipant(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/submit-symbol-preferences/", preferencePayload("P9999", 7))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestResubmitSymbolPreferencesReplaces(t *testing.T) {
	r, db := newTestRouter(t)
	p := testutil.SeedParticipant(t, db, "P0001")

	first := doJSON(t, r, http.MethodPost, "/api/submit-symbol-preferences/", preferencePayload("P0001", 7))
	if first.Code != http.StatusCreated {
		t.Fatalf("first submit: %d", first.Code)
	}

	resubmit := preferencePayload("P0001", 7)
	for _, pref := range resubmit["preferences"].([]map[string]interface{}) {
		pref["chosen_type"] = "kaac"
	}
	second := doJSON(t, r, http.MethodPost, "/api/submit-symbol-preferences/", resubmit)
	if second.Code != http.StatusCreated {
		t.Fatalf("resubmit: %d, body = %s", second.Code, second.Body.String())
	}

	var rows []models.SymbolPreference
	db.Where("participant_id = ?", p.ID).Find(&rows)
	if len(rows) != 7 {
		t.Fatalf("rows after resubmit = %d, want 7", len(rows))
	}
	for _, row := range rows {
		if row.ChosenType != models.ChoiceKAAC {
			t.Errorf("word %q kept stale chosen_type %q", row.TargetWord, row.ChosenType)
		}
	}
}

func TestGetSymbolPreferences(t *testing.T) {
	r, db := newTestRouter(t)
	p := testutil.SeedParticipant(t, db, "P0001")
	testutil.SeedSymbolPreference(t, db, p.ID, "좋아요", models.ChoiceAI)

	w := doJSON(t, r, http.MethodGet, "/api/symbol-preferences/P0001/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["count"].(float64) != 1 {
		t.Errorf("count = %v", body["count"])
	}
}

func TestPreferenceSummaryEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	p1 := testutil.SeedParticipant(t, db, "P0001")
	p2 := testutil.SeedParticipant(t, db, "P0002")
	testutil.SeedSymbolPreference(t, db, p1.ID, "좋아요", models.ChoiceAI)
	testutil.SeedSymbolPreference(t, db, p2.ID, "좋아요", models.ChoiceSimilar)

	w := doJSON(t, r, http.MethodGet, "/api/preference-summary/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total_responses"].(float64) != 2 {
		t.Errorf("total_responses = %v", body["total_responses"])
	}
	if body["total_participants"].(float64) != 2 {
		t.Errorf("total_participants = %v", body["total_participants"])
	}

	wordStats := body["word_stats"].(map[string]interface{})
	var totalSum float64
	for _, raw := range wordStats {
		stats := raw.(map[string]interface{})
		totalSum += stats["total"].(float64)
	}
	if totalSum != body["total_responses"].(float64) {
		t.Errorf("sum of word totals = %v, want %v", totalSum, body["total_responses"])
	}
}

func TestLegacyPreferenceEndpoints(t *testing.T) {
	r, db := newTestRouter(t)
	p := testutil.SeedParticipant(t, db, "P0001")

	w := doJSON(t, r, http.MethodPost, "/api/preference/", map[string]interface{}{
		"participant_id":       p.ID,
		"easier_to_understand": "ai",
		"preference":           "kaac",
		"reason":               "더 익숙해서",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/preference/P0001/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["preference"] != "kaac" {
		t.Errorf("preference = %v", body["preference"])
	}
}

func TestLegacyPreferenceNotFound(t *testing.T) {
	r, db := newTestRouter(t)
	testutil.SeedParticipant(t, db, "P0001")

	// Participant exists but has no preference row.
	w := doJSON(t, r, http.MethodGet, "/api/preference/P0001/", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Data not found" {
		t.Errorf("error = %v", body["error"])
	}

	// Unknown participant gets the same body.
	w = doJSON(t, r, http.MethodGet, "/api/preference/P9999/", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
