package response

const (
	// MessageSuccess is the message for successful responses.
	MessageSuccess = "Success"

	// DefaultErrorMessage hides internal details from clients.
	DefaultErrorMessage = "Something went wrong"

	// InternalServerErrorCode is the error_code for unexpected failures.
	InternalServerErrorCode = 500
)

const (
	// DateFormat is the wire format for Date values.
	DateFormat = "2006-01-02"

	// DateTimeFormat is the wire format for DateTime values.
	DateTimeFormat = "2006-01-02 15:04:05"
)
