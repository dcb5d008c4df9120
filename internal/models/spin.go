package models

import "time"

// SpinRecord represents one successful spin. At most one exists per (email, date).
type SpinRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" bson:"seq" dynamodbav:"ID,omitempty" json:"id,omitempty"`
	Name      string    `gorm:"type:text" bson:"name" dynamodbav:"Name" json:"name"`
	Email     string    `gorm:"type:text;uniqueIndex:idx_spins_email_date" bson:"email" dynamodbav:"Email" json:"email"`
	Phone     string    `gorm:"type:text" bson:"phone" dynamodbav:"Phone" json:"phone"`
	Prize     string    `gorm:"type:text" bson:"prize" dynamodbav:"Prize" json:"prize"`
	Date      string    `gorm:"type:text;uniqueIndex:idx_spins_email_date" bson:"date" dynamodbav:"Date" json:"date"` // YYYY-MM-DD, UTC
	CreatedAt time.Time `bson:"createdAt" dynamodbav:"CreatedAt" json:"createdAt"`
}

// TableName pins the gorm table to the historical "spins" name.
func (SpinRecord) TableName() string {
	return "spins"
}

// SpinResult is the outcome of a spin attempt. Prize is nil when AlreadySpun is true.
type SpinResult struct {
	Prize       *string
	AlreadySpun bool
}

// SpinResponse is returned by POST /api/spin
type SpinResponse struct {
	Message string  `json:"message,omitempty"`
	Prize   *string `json:"prize"`
}

// ErrorResponse is the common error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// DailyStats summarises the spins of one day
type DailyStats struct {
	Date   string       `json:"date"`
	Total  int          `json:"total"`
	Prizes []PrizeCount `json:"prizes"`
}

// PrizeCount is the number of times a prize was awarded
type PrizeCount struct {
	Prize string `json:"prize"`
	Count int    `json:"count"`
}
