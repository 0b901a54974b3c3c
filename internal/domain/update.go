package domain

// Update is the inbound webhook payload shape shared with the Telegram Bot
// API. Only the fields the bot reads are declared.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is one chat message inside an Update.
type Message struct {
	Chat Chat   `json:"chat"`
	Text string `json:"text"`
}

// Chat identifies the conversation a reply should go back to.
type Chat struct {
	ID int64 `json:"id"`
}
