package chat

import "time"

// Thread is a two-party message box. Attachment access is limited to the
// two participants.
type Thread struct {
	ID            string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserOneID     string `gorm:"index;not null"`
	UserTwoID     string `gorm:"index;not null"`
	LastMessageID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Messages []Message `gorm:"foreignKey:ThreadID"`
}

func (Thread) TableName() string {
	return "chat.threads"
}

// HasParticipant reports whether the user is one of the two parties.
func (t *Thread) HasParticipant(userID string) bool {
	return t.UserOneID == userID || t.UserTwoID == userID
}
