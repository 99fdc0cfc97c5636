package schedule

type SaveHoursRequest struct {
	// Hours may legitimately be empty: an empty override closes the day.
	Hours []string `json:"hours"`
}

type GridResponse struct {
	Date    string   `json:"date"`
	Hours   []string `json:"hours"`
	StepMin int      `json:"step_min"`
}
