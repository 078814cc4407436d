package domain

// WeekdayPerformance is the stored average performance of one weekday for a
// creator. Weekday follows time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
type WeekdayPerformance struct {
	CreatorID   string
	Weekday     int
	AvgRevenue  float64
	SampleCount int
}
