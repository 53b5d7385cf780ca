package api

// Request payloads for the write half of the contract. Field names match
// the service's JSON exactly.

// MissionUpsert creates or replaces the mission of the given date.
type MissionUpsert struct {
	Date string `json:"date"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// MissionDone flips the done flag of the date's mission.
type MissionDone struct {
	Date string `json:"date"`
	Done bool   `json:"done"`
}

// MoodUpsert records the mood for a date. Rating must stay within 1-5.
type MoodUpsert struct {
	Date   string `json:"date"`
	Rating int    `json:"rating"`
}

type HabitCreate struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// HabitCheck sets a habit's completion state for a date.
type HabitCheck struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type TaskCreate struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// TaskUpdate is a full update; the service does not support partial
// patches.
type TaskUpdate struct {
	Title  string     `json:"title"`
	Date   string     `json:"date"`
	Status TaskStatus `json:"status"`
}

type NoteCreate struct {
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Category *string `json:"category"`
}

type NoteUpdate struct {
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Category *string `json:"category"`
}

type DayComplete struct {
	Date string `json:"date"`
}

// WeeklyBonusClaim targets the report's week; the service rejects a
// second claim for the same week.
type WeeklyBonusClaim struct {
	WeekStart string `json:"week_start"`
}
