package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"scamshield/internal/app/model"
)

// ToExcel writes analysis history entries to an xlsx workbook.
func ToExcel(entries []model.HistoryEntry, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Analyses")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Analyzed At"
	headerRow.AddCell().Value = "Risk Level"
	headerRow.AddCell().Value = "Score"
	headerRow.AddCell().Value = "Scam Type"
	headerRow.AddCell().Value = "Engine"
	headerRow.AddCell().Value = "Preview"
	headerRow.AddCell().Value = "Flags"
	headerRow.AddCell().Value = "Recommendations"

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = e.ID
		row.AddCell().Value = e.Timestamp.Format(time.RFC3339)
		row.AddCell().Value = string(e.Verdict.RiskLevel)
		row.AddCell().Value = fmt.Sprint(e.Verdict.AggregateScore)
		row.AddCell().Value = e.Verdict.ScamType
		row.AddCell().Value = e.Verdict.EngineUsed
		row.AddCell().Value = e.Preview
		row.AddCell().Value = strings.Join(e.Verdict.Flags, "; ")
		row.AddCell().Value = strings.Join(e.Verdict.Recommendations, "; ")
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
