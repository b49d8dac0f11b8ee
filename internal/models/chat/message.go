package chat

import "time"

type Message struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ThreadID  string `gorm:"index;not null"`
	SenderID  string `gorm:"index;not null"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time

	Attachments []MessageAttachment `gorm:"foreignKey:MessageID"`
}

func (Message) TableName() string {
	return "chat.messages"
}
