package domain

import "time"

// Message kinds.
const (
	MessageKindEmotion = "emotion"
	MessageKindImage   = "image"
)

// Message is one append-only history entry. SenderEndpoint may be empty for
// anonymous/legacy senders. Rows are immutable once written.
type Message struct {
	ID             int64     `json:"id,string" gorm:"primaryKey"`
	PairId         int64     `json:"pair_id,string" gorm:"index"`
	SenderEndpoint string    `json:"sender_endpoint" gorm:"size:512"`
	Kind           string    `json:"kind" gorm:"index"` // emotion | image
	Emotion        string    `json:"emotion"`
	ImageUrl       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

func (Message) TableName() string {
	return "message"
}
