package models

// SubmitRequest is the inbound message payload, accepted both as a
// WebSocket frame and as the POST /api/messages body. The sender identity
// is never taken from the payload; it comes from the authenticated session.
type SubmitRequest struct {
	Body        string `json:"body"`
	IsBroadcast bool   `json:"isBroadcast"`
	ToUserID    string `json:"toUserId"`
}

// ErrorFrame is pushed back on a WebSocket connection when an inbound
// submit is rejected. Stored messages carry no "error" key, so clients
// can tell the two frame shapes apart.
type ErrorFrame struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// PushEvent is the envelope published on the Redis bridge so that other
// nodes can fan a stored message out to their own live connections.
// Origin identifies the publishing node; a node ignores its own events.
type PushEvent struct {
	Origin  string  `json:"origin"`
	Message Message `json:"message"`
}
