package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"aacstudy-go/internal/models"
	"aacstudy-go/internal/testutil"
)

func TestBuildWorkbookEmptyDatabase(t *testing.T) {
	db := testutil.DB(t)

	f, err := BuildWorkbook(db, models.DefaultVocabulary())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{
		sheetParticipants, sheetTrials, sheetPreferences,
		sheetSymbolPrefs, sheetWordStats, sheetSummary,
	} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("GetRows(%s): %v", sheet, err)
		}
		if len(rows) != 1 {
			t.Errorf("sheet %s has %d rows, want header only", sheet, len(rows))
		}
	}

	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default sheet was not removed")
	}
}

func TestBuildWorkbookSheets(t *testing.T) {
	db := testutil.DB(t)

	p := testutil.SeedParticipant(t, db, "P0001")
	completed := p.StartedAt.Add(15 * time.Minute)
	if err := db.Model(p).Update("completed_at", &completed).Error; err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	// One practice trial (excluded from the trial sheet) and two main trials.
	practice := testutil.SeedTrial(t, db, p.ID, 1, models.SymbolTypeAI, true, 300)
	if err := db.Model(practice).Update("is_practice", true).Error; err != nil {
		t.Fatalf("mark practice: %v", err)
	}
	testutil.SeedTrial(t, db, p.ID, 1, models.SymbolTypeAI, true, 400)
	testutil.SeedTrial(t, db, p.ID, 2, models.SymbolTypeKAAC, false, 800)

	testutil.SeedSymbolPreference(t, db, p.ID, "좋아요", models.ChoiceAI)
	testutil.SeedSymbolPreference(t, db, p.ID, "싫어요", models.ChoiceSimilar)

	f, err := BuildWorkbook(db, models.DefaultVocabulary())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetParticipants)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("participant sheet has %d rows, want 2", len(rows))
	}
	if rows[1][0] != "P0001" {
		t.Errorf("participant id cell = %q, want P0001", rows[1][0])
	}
	if rows[1][4] != "남성" {
		t.Errorf("gender cell = %q, want 남성", rows[1][4])
	}

	rows, err = f.GetRows(sheetTrials)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("trial sheet has %d rows, want header plus 2 main trials", len(rows))
	}

	rows, err = f.GetRows(sheetWordStats)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Only the two answered words get rows.
	if len(rows) != 3 {
		t.Fatalf("word stat sheet has %d rows, want 3", len(rows))
	}

	rows, err = f.GetRows(sheetSummary)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("summary sheet has %d rows, want 2", len(rows))
	}
	if rows[1][6] != "50" {
		t.Errorf("overall accuracy cell = %q, want 50", rows[1][6])
	}
}

func TestRunWritesWorkbook(t *testing.T) {
	db := testutil.DB(t)
	dir := t.TempDir()

	path, err := Run(db, testutil.Logger(t), models.DefaultVocabulary(), dir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasSuffix(path, ".xlsx") {
		t.Errorf("path = %q, want .xlsx file", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("workbook not written: %v", err)
	}
}

func TestRunWritesChart(t *testing.T) {
	db := testutil.DB(t)
	dir := t.TempDir()

	p := testutil.SeedParticipant(t, db, "P0001")
	testutil.SeedSymbolPreference(t, db, p.ID, "좋아요", models.ChoiceAI)

	if _, err := Run(db, testutil.Logger(t), models.DefaultVocabulary(), dir, true); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var foundChart bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".html") {
			foundChart = true
		}
	}
	if !foundChart {
		t.Error("chart HTML was not written")
	}
}
