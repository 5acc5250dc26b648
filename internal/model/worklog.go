package model

// WorkLog is a daily log entry. Date is a calendar day in YYYY-MM-DD
// form; there is at most one entry per day.
type WorkLog struct {
	ID        string `json:"id" db:"id"`
	Date      string `json:"date" db:"date"`
	Content   string `json:"content" db:"content"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
