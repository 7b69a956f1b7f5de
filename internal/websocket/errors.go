package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client event queue is full")
	ErrInvalidEvent    = errors.New("invalid event payload")
	ErrSenderMismatch  = errors.New("event sender does not match session user")
	ErrRoomRequired    = errors.New("room id is required")
	ErrNotSubscribed   = errors.New("not subscribed to room")
)
