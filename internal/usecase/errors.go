package usecase

// DomainError is a business-rule failure the caller can act on
// (bad input, unknown id). Handlers map the Code to an HTTP status.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure (store unavailable,
// statement failed). Surfaced to callers as a generic server error.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeDatabase   = "DATABASE_ERROR"
)

func newValidationError(fields []ValidationError) *DomainError {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0].Field + " " + fields[0].Message
	}
	return &DomainError{Code: CodeValidation, Message: msg, Fields: fields}
}

func newFieldError(field, message string) *DomainError {
	return newValidationError([]ValidationError{{Field: field, Message: message}})
}

func newNotFoundError(what string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: what + " not found"}
}

func newDatabaseError(err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: err.Error()}
}
