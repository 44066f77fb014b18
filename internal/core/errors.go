package core

// Error codes for domain errors.
const (
	ErrCodeInvalidName    = "invalid_name"
	ErrCodeAlreadyJoined  = "already_joined"
	ErrCodeNotJoined      = "not_joined"
	ErrCodeEmptyMessage   = "empty_message"
	ErrCodeMessageTooLong = "message_too_long"
	ErrCodeRoomMismatch   = "room_code_mismatch"
	ErrCodeRoomNotFound   = "room_not_found"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeBadRequest     = "bad_request"
	ErrCodeSessionClosed  = "session_closed"
)

var (
	ErrInvalidName    = coreError(ErrCodeInvalidName, "display name is invalid")
	ErrAlreadyJoined  = coreError(ErrCodeAlreadyJoined, "session already joined a room")
	ErrNotJoined      = coreError(ErrCodeNotJoined, "session has not joined a room")
	ErrEmptyMessage   = coreError(ErrCodeEmptyMessage, "message is empty")
	ErrMessageTooLong = coreError(ErrCodeMessageTooLong, "message exceeds maximum length")
	ErrRoomMismatch   = coreError(ErrCodeRoomMismatch, "room code does not match joined room")
	ErrRoomNotFound   = coreError(ErrCodeRoomNotFound, "room not found")
	ErrSessionClosed  = coreError(ErrCodeSessionClosed, "session transport has disconnected")

	// errRoomRemoved signals that a room lost the race with empty-room
	// cleanup; joins retry against a fresh room. Never surfaced.
	errRoomRemoved = coreError(ErrCodeRoomNotFound, "room was removed")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// AsCoreError extracts the domain error from err, mapping anything
// unknown to a bad_request so transports always have a code to emit.
func AsCoreError(err error) *CoreError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CoreError); ok {
		return ce
	}
	return coreError(ErrCodeBadRequest, err.Error())
}
