package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders a report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Volume Recommendations\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Creators: %d | Fallbacks: %d | Elasticity-capped: %d\n\n",
		r.CreatorCount, r.FallbackCount, r.CappedCount))

	// Recommendations
	sb.WriteString("## Recommendations\n\n")
	if len(r.Rows) > 0 {
		sb.WriteString("| Creator | Tier | Rev/d | Eng/d | Ret/d | Weekly | Confidence | Capped | Source | Prediction |\n")
		sb.WriteString("|---------|------|-------|-------|-------|--------|------------|--------|--------|------------|\n")
		for _, row := range r.Rows {
			capped := "no"
			if row.ElasticityCapped {
				capped = "yes"
			}
			predictionID := row.PredictionID
			if predictionID == "" {
				predictionID = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d | %d | %.2f | %s | %s | %s |\n",
				row.CreatorID, row.Tier,
				row.RevenuePerDay, row.EngagementPerDay, row.RetentionPerDay,
				row.TotalWeekly, row.ConfidenceScore, capped, row.Source, predictionID))
		}
	} else {
		sb.WriteString("No recommendations produced.\n")
	}
	sb.WriteString("\n")

	// Adjustments
	sb.WriteString("## Adjustments\n\n")
	any := false
	for _, row := range r.Rows {
		if len(row.Adjustments) == 0 {
			continue
		}
		any = true
		sb.WriteString(fmt.Sprintf("- %s: %s\n", row.CreatorID, strings.Join(row.Adjustments, ", ")))
	}
	if !any {
		sb.WriteString("No adjustments applied.\n")
	}
	sb.WriteString("\n")

	// Caption warnings: must be reviewed before any schedule is committed.
	sb.WriteString("## Caption Warnings\n\n")
	if len(r.CaptionWarnings) > 0 {
		for _, w := range r.CaptionWarnings {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", w.CreatorID, w.Warning))
		}
	} else {
		sb.WriteString("No caption warnings.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
