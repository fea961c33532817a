package domain

import "time"

// Conversation is the two-party chat an offer is negotiated in. The chat
// transport itself is external; the core only needs participants and the
// ability to append messages.
type Conversation struct {
	ID            int32      `json:"id"`
	UserOneID     int32      `json:"user_one_id"`
	UserTwoID     int32      `json:"user_two_id"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
}

func (c *Conversation) HasParticipant(userID int32) bool {
	return c.UserOneID == userID || c.UserTwoID == userID
}

// OtherParticipant returns the counterparty of userID. Callers must have
// checked HasParticipant first.
func (c *Conversation) OtherParticipant(userID int32) int32 {
	if c.UserOneID == userID {
		return c.UserTwoID
	}
	return c.UserOneID
}

type Message struct {
	ID             int32     `json:"id"`
	ConversationID int32     `json:"conversation_id"`
	SenderID       int32     `json:"sender_id"`
	Content        string    `json:"content"`
	OfferID        *int32    `json:"offer_id,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
}
