package export

import (
	"fmt"
	"path/filepath"
	"time"

	"aacstudy-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run reads the full data set and writes the workbook into outputDir,
// named with the generation timestamp. When withChart is set, an HTML bar
// chart of the per-word preference split is written next to it. Returns
// the workbook path.
func Run(db *gorm.DB, log *zap.Logger, vocab *models.Vocabulary, outputDir string, withChart bool) (string, error) {
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(outputDir, fmt.Sprintf("실험데이터_%s.xlsx", stamp))

	f, err := BuildWorkbook(db, vocab)
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	log.Info("Workbook written", zap.String("path", path))

	if withChart {
		var symbolPrefs []models.SymbolPreference
		if err := db.Find(&symbolPrefs).Error; err != nil {
			return "", fmt.Errorf("load symbol preferences for chart: %w", err)
		}
		chartPath := filepath.Join(outputDir, fmt.Sprintf("선호도차트_%s.html", stamp))
		if err := WriteWordChart(vocab, symbolPrefs, chartPath); err != nil {
			return "", fmt.Errorf("render chart: %w", err)
		}
		log.Info("Preference chart written", zap.String("path", chartPath))
	}

	return path, nil
}
