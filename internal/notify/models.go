package notify

// SendRequest is the callable direct-send request body.
type SendRequest struct {
	UserID string            `json:"userId"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// SendResponse is returned to the caller after a successful direct send.
type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// UserCreatedEvent is the payload delivered when a user document is created.
type UserCreatedEvent struct {
	UserID string `json:"userId"`
}
