package mood

// DaySummary aggregates the entries recorded on one UTC calendar day.
type DaySummary struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	Count            int     `json:"count"`
	AverageIntensity float64 `json:"averageIntensity"`
}

// Summary is the trend view rendered by the client.
type Summary struct {
	Count            int          `json:"count"`
	AverageIntensity float64      `json:"averageIntensity"`
	Latest           *Entry       `json:"latest"`
	Days             []DaySummary `json:"days"`
}
