package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	// ErrDataUnavailable indicates a required source table or file could not
	// be read. Surfaced to the caller; never retried automatically.
	ErrDataUnavailable = NewDomainError("DATA_UNAVAILABLE", "Required data source could not be read")

	// ErrInvalidFilter indicates a structurally invalid filter combination.
	// Callers recover by falling back to the unrestricted view.
	ErrInvalidFilter = NewDomainError("INVALID_FILTER", "Invalid filter criteria")

	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
)
