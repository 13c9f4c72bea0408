package models

import "time"

// Record is one expense entry. Amount keeps its sign: negative values
// are valid and participate in aggregates. Date is normalized to noon
// UTC of the entry's calendar day.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
