package export

import (
	"fmt"

	"aacstudy-go/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Sheet names match the spreadsheet the analysis scripts already consume.
const (
	sheetParticipants = "참가자정보"
	sheetTrials       = "시행데이터_본실험만"
	sheetPreferences  = "전체선호도"
	sheetSymbolPrefs  = "단어별선호도"
	sheetWordStats    = "단어별통계"
	sheetSummary      = "요약통계"
)

func boolMark(b bool) string {
	if b {
		return "O"
	}
	return "X"
}

// BuildWorkbook reads the full data set and renders the categorized sheets.
// Empty categories produce sheets with only a header row.
func BuildWorkbook(db *gorm.DB, vocab *models.Vocabulary) (*excelize.File, error) {
	var participants []models.Participant
	if err := db.Order("id ASC").Find(&participants).Error; err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}

	var mainTrials []models.TrialResponse
	if err := db.Preload("Participant").
		Where("is_practice = ?", false).
		Order("participant_id ASC, trial_number ASC").
		Find(&mainTrials).Error; err != nil {
		return nil, fmt.Errorf("load trials: %w", err)
	}

	var legacyPrefs []models.Preference
	if err := db.Preload("Participant").Order("participant_id ASC").Find(&legacyPrefs).Error; err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	var symbolPrefs []models.SymbolPreference
	if err := db.Preload("Participant").
		Order("participant_id ASC, target_word ASC").
		Find(&symbolPrefs).Error; err != nil {
		return nil, fmt.Errorf("load symbol preferences: %w", err)
	}

	f := excelize.NewFile()

	writeParticipantSheet(f, participants)
	writeTrialSheet(f, mainTrials)
	writePreferenceSheet(f, legacyPrefs)
	writeSymbolPrefSheet(f, symbolPrefs)
	writeWordStatSheet(f, vocab, symbolPrefs)
	writeSummarySheet(f, participants, mainTrials, legacyPrefs, symbolPrefs)

	// Drop the default sheet created by NewFile.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetParticipants); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) {
	cell := fmt.Sprintf("A%d", rowNum)
	// SetSheetRow only fails on malformed coordinates.
	_ = f.SetSheetRow(sheet, cell, &values)
}

func writeParticipantSheet(f *excelize.File, participants []models.Participant) {
	f.NewSheet(sheetParticipants)
	writeRow(f, sheetParticipants, 1, []interface{}{
		"참가자ID", "이름", "연락처뒷자리", "나이", "성별", "교육수준", "시력",
		"AAC경험", "AAC교육", "블록순서", "총소요시간(분)",
	})
	for i, p := range participants {
		var duration interface{} = ""
		if d := DurationMinutes(p.StartedAt, p.CompletedAt); d != nil {
			duration = *d
		}
		writeRow(f, sheetParticipants, i+2, []interface{}{
			p.ParticipantID, p.Name, p.PhoneLast4, p.Age, p.GenderDisplay(),
			p.Education, p.VisionDisplay(), boolMark(p.HasAACExperience),
			boolMark(p.HasAACEducation), p.BlockOrderDisplay(), duration,
		})
	}
}

func writeTrialSheet(f *excelize.File, trials []models.TrialResponse) {
	f.NewSheet(sheetTrials)
	writeRow(f, sheetTrials, 1, []interface{}{
		"참가자ID", "참가자명", "시행번호", "목표단어", "상징유형", "블록유형",
		"선택상징", "정답여부", "반응시간ms", "오답횟수",
	})
	for i, t := range trials {
		correctness := "오답"
		if t.IsCorrect {
			correctness = "정답"
		}
		writeRow(f, sheetTrials, i+2, []interface{}{
			t.Participant.ParticipantID, t.Participant.Name, t.TrialNumber,
			t.TargetWord, t.SymbolType.Display(), t.BlockType,
			t.SelectedSymbol, correctness, t.ReactionTime, t.ErrorCount,
		})
	}
}

func writePreferenceSheet(f *excelize.File, prefs []models.Preference) {
	f.NewSheet(sheetPreferences)
	writeRow(f, sheetPreferences, 1, []interface{}{
		"참가자ID", "참가자명", "이해하기쉬운것", "선호", "이유",
	})
	for i, p := range prefs {
		writeRow(f, sheetPreferences, i+2, []interface{}{
			p.Participant.ParticipantID, p.Participant.Name,
			p.EasierToUnderstand.Display(), p.Preference.Display(), p.Reason,
		})
	}
}

func writeSymbolPrefSheet(f *excelize.File, prefs []models.SymbolPreference) {
	f.NewSheet(sheetSymbolPrefs)
	writeRow(f, sheetSymbolPrefs, 1, []interface{}{
		"참가자ID", "참가자명", "대상단어", "AI위치", "선택", "선택유형",
	})
	for i, p := range prefs {
		position := "오른쪽"
		if p.AIPosition == models.SideLeft {
			position = "왼쪽"
		}
		writeRow(f, sheetSymbolPrefs, i+2, []interface{}{
			p.Participant.ParticipantID, p.Participant.Name, p.TargetWord,
			position, string(p.Chosen), p.ChosenType.Display(),
		})
	}
}

func writeWordStatSheet(f *excelize.File, vocab *models.Vocabulary, prefs []models.SymbolPreference) {
	f.NewSheet(sheetWordStats)
	writeRow(f, sheetWordStats, 1, []interface{}{
		"단어", "AI선택", "KAAC선택", "비슷함", "총응답",
		"AI비율%", "KAAC비율%", "비슷함비율%",
	})
	row := 2
	for _, word := range vocab.Words {
		stat, ok := SummarizeWord(word, prefs)
		if !ok {
			continue
		}
		writeRow(f, sheetWordStats, row, []interface{}{
			stat.Word, stat.AI, stat.KAAC, stat.Similar, stat.Total,
			stat.AIPct, stat.KAACPct, stat.SimilarPct,
		})
		row++
	}
}

func writeSummarySheet(f *excelize.File, participants []models.Participant,
	mainTrials []models.TrialResponse, legacyPrefs []models.Preference,
	symbolPrefs []models.SymbolPreference) {

	f.NewSheet(sheetSummary)
	writeRow(f, sheetSummary, 1, []interface{}{
		"참가자ID", "참가자명", "나이", "성별", "블록순서", "총소요시간(분)",
		"전체정확도%", "평균반응시간ms", "AI정확도%", "AI평균RT",
		"KAAC정확도%", "KAAC평균RT", "전체_이해쉬운것", "전체_선호",
		"단어별_AI선호수", "단어별_KAAC선호수", "단어별_비슷함수",
	})

	trialsByParticipant := make(map[uint][]models.TrialResponse)
	for _, t := range mainTrials {
		trialsByParticipant[t.ParticipantID] = append(trialsByParticipant[t.ParticipantID], t)
	}
	legacyByParticipant := make(map[uint]*models.Preference)
	for i := range legacyPrefs {
		legacyByParticipant[legacyPrefs[i].ParticipantID] = &legacyPrefs[i]
	}
	prefsByParticipant := make(map[uint][]models.SymbolPreference)
	for _, p := range symbolPrefs {
		prefsByParticipant[p.ParticipantID] = append(prefsByParticipant[p.ParticipantID], p)
	}

	row := 2
	for i := range participants {
		p := &participants[i]
		summary, ok := SummarizeParticipant(p, trialsByParticipant[p.ID],
			legacyByParticipant[p.ID], prefsByParticipant[p.ID])
		if !ok {
			continue
		}
		var duration interface{} = ""
		if d := DurationMinutes(p.StartedAt, p.CompletedAt); d != nil {
			duration = *d
		}
		writeRow(f, sheetSummary, row, []interface{}{
			p.ParticipantID, p.Name, p.Age, p.GenderDisplay(),
			p.BlockOrderDisplay(), duration,
			summary.Accuracy, summary.AvgRT,
			summary.AIAccuracy, summary.AIAvgRT,
			summary.KAACAccuracy, summary.KAACAvgRT,
			summary.EasierDisplay, summary.PreferenceDisplay,
			summary.AIPrefCount, summary.KAACPrefCount, summary.SimilarPrefCount,
		})
		row++
	}
}
