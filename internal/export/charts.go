package export

import (
	"os"

	"aacstudy-go/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteWordChart renders a bar chart of per-word preference counts to an
// HTML file next to the workbook, for a quick look before the full
// statistical analysis. Words without responses are left out, like in the
// word-statistics sheet.
func WriteWordChart(vocab *models.Vocabulary, prefs []models.SymbolPreference, path string) error {
	var words []string
	var aiBars, kaacBars, similarBars []opts.BarData
	for _, word := range vocab.Words {
		stat, ok := SummarizeWord(word, prefs)
		if !ok {
			continue
		}
		words = append(words, word)
		aiBars = append(aiBars, opts.BarData{Value: stat.AI})
		kaacBars = append(kaacBars, opts.BarData{Value: stat.KAAC})
		similarBars = append(similarBars, opts.BarData{Value: stat.Similar})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "단어별 상징 선호도",
			Subtitle: "AI vs KAAC vs 비슷함",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(words).
		AddSeries("AI", aiBars).
		AddSeries("KAAC", kaacBars).
		AddSeries("비슷함", similarBars)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return bar.Render(file)
}
