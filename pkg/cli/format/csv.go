package format

import (
	"strconv"
	"strings"

	"reels-dash-go/pkg/models"
)

// NoReelsCSV is what ToCSV returns for a result without reels.
const NoReelsCSV = "No reels data available"

var csvHeader = []string{
	"Index",
	"Reel ID",
	"Date",
	"View Count",
	"Has Date",
	"Has Views",
	"Complete",
	"Source",
	"Extraction Method",
	"URL",
}

// ToCSV renders one row per reel under a fixed ten-column header. Fields
// are joined with commas and never quoted: a value containing a comma or
// newline produces a malformed row.
func ToCSV(data *models.ResultData) string {
	if data == nil || len(data.Reels) == 0 {
		return NoReelsCSV
	}

	lines := make([]string, 0, len(data.Reels)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, reel := range data.Reels {
		index := ""
		if reel.Index != 0 {
			index = strconv.Itoa(reel.Index)
		}
		lines = append(lines, strings.Join([]string{
			index,
			reel.ReelID,
			reel.DateText,
			reel.ViewCount,
			yesNo(reel.HasDate),
			yesNo(reel.HasViews),
			yesNo(reel.Complete),
			string(reel.Source),
			reel.ExtractionMethod,
			reel.URL,
		}, ","))
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
