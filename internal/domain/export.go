package domain

// ReferenceEntry is one location every session is converted into.
// The reference table is static and supplied by the reference package.
type ReferenceEntry struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Timezone string `json:"timezone"`
}

// InputRow echoes a Session for the first export sheet.
// StartDate and EndDate use the "02-01-2006" display layout; every other
// field is passed through unchanged.
type InputRow struct {
	ID             int    `json:"id"`
	ModeOfTraining string `json:"mode_of_training"`
	CourseName     string `json:"course_name"`
	ScheduleName   string `json:"schedule_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Dates          string `json:"dates"`
	BaseTimezone   string `json:"base_timezone"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// ConversionRow is one session's start and end re-expressed in one
// reference entry's timezone. Dates are "2006-01-02", times "15:04".
type ConversionRow struct {
	ID        int    `json:"id"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Region    string `json:"region"`
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

// Export is the pair of flat tables written to the workbook.
// Conversions holds exactly len(Inputs) * len(reference entries) rows,
// session-major.
type Export struct {
	Inputs      []InputRow      `json:"inputs"`
	Conversions []ConversionRow `json:"conversions"`
}
