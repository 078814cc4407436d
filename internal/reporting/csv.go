package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders recommendation rows as CSV string.
func RenderCSV(rows []RecommendationRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("creator_id,tier,revenue_per_day,engagement_per_day,retention_per_day,")
	sb.WriteString("total_weekly,confidence_score,elasticity_capped,source,prediction_id\n")

	// Rows
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%d,%d,%.4f,%t,%s,%s\n",
			r.CreatorID,
			r.Tier,
			r.RevenuePerDay,
			r.EngagementPerDay,
			r.RetentionPerDay,
			r.TotalWeekly,
			r.ConfidenceScore,
			r.ElasticityCapped,
			r.Source,
			r.PredictionID,
		))
	}

	return sb.String()
}
