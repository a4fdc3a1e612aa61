package errors

var (
	// Domain errors — used by the gateway and message store
	ErrEmptyBody          = InvalidArg("message body cannot be empty")
	ErrAmbiguousRecipient = InvalidArg("message cannot be both a broadcast and addressed to a single recipient")
	ErrMissingRecipient   = InvalidArg("private message requires a recipient")
	ErrBroadcastForbidden = Forbidden("broadcast messages are restricted to admins")
	ErrMessageNotFound    = NotFound("message not found")
	ErrUserNotFound       = NotFound("user not found")
	ErrNoAdminRegistered  = NotFound("no admin account registered")
	ErrAuthRequired       = Unauthorized("authentication required")
)

func ErrStoreUnavailable(cause error) error {
	return Unavailable("message store unavailable", cause)
}
