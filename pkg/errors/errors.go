package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents fetch failures: timeout, non-2xx, transport
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit represents upstream rate limiting (429)
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeExtractionEmpty represents pages where no selector matched
	ErrorTypeExtractionEmpty ErrorType = "extraction_empty"
	// ErrorTypeParse represents unparseable extracted text
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeMissingParameter represents missing/blank request input
	ErrorTypeMissingParameter ErrorType = "missing_parameter"
	// ErrorTypePublisher represents event publishing errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraping pipeline error
type ScrapeError struct {
	Type      ErrorType
	Operation string
	Message   string
	Err       error
	Time      time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Operation, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// New creates a new ScrapeError
func New(errType ErrorType, operation, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Err:       err,
		Time:      time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(operation, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, operation, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(operation string, retryAfter string) *ScrapeError {
	message := "rate limited"
	if retryAfter != "" {
		message = fmt.Sprintf("rate limited; retry after %s", retryAfter)
	}
	return New(ErrorTypeRateLimit, operation, message, nil)
}

// NewExtractionEmpty creates a new empty-extraction error
func NewExtractionEmpty(operation, message string) *ScrapeError {
	return New(ErrorTypeExtractionEmpty, operation, message, nil)
}

// NewParse creates a new parse error
func NewParse(operation, message string) *ScrapeError {
	return New(ErrorTypeParse, operation, message, nil)
}

// NewMissingParameter creates a new missing-parameter error
func NewMissingParameter(operation, message string) *ScrapeError {
	return New(ErrorTypeMissingParameter, operation, message, nil)
}

// NewPublisher creates a new publisher error
func NewPublisher(operation, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, operation, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// IsType reports whether err is a ScrapeError of the given type
func IsType(err error, errType ErrorType) bool {
	var serr *ScrapeError
	if errors.As(err, &serr) {
		return serr.Type == errType
	}
	return false
}
