package models

// ScheduleEntry is one scheduled run between a pair of stations
type ScheduleEntry struct {
	Departure   TimeOfDay `json:"departure"`
	Arrival     TimeOfDay `json:"arrival"`
	Duration    Minutes   `json:"durationMinutes"`
	Platform    int       `json:"platform"`
	TrainNumber string    `json:"trainNumber"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
}

// Timetable holds the explicit runs for one station pair on a line, split
// by category.
type Timetable struct {
	Line    Line
	From    string
	To      string
	Entries map[Category][]ScheduleEntry
}
