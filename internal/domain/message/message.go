package message

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one in-ride chat message. Sender and receiver are always the
// two parties of the ride; the receiver is derived on send, never supplied
// by the caller. Messages are immutable once created.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RideID     uuid.UUID `gorm:"type:uuid;not null;index" json:"ride_id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null" json:"receiver_id"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate assigns an ID when none was set by the caller
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
