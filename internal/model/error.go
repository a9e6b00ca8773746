package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidCartValue   = "INVALID_CART_VALUE"
	ErrCodeInvalidOfferType   = "INVALID_OFFER_TYPE"
	ErrCodeInvalidOfferValue  = "INVALID_OFFER_VALUE"
	ErrCodeInvalidIdentifier  = "INVALID_IDENTIFIER"
	ErrCodeEmptySegments      = "EMPTY_SEGMENTS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeRestaurantNotFound = "RESTAURANT_NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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

// MissingField returns a MISSING_FIELD error naming the absent field.
func MissingField(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, field+" is required")
}

// AsDomainError unwraps err to a *DomainError if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrInvalidCartValue   = NewDomainError(ErrCodeInvalidCartValue, "Cart value must not be negative")
	ErrInvalidOfferType   = NewDomainError(ErrCodeInvalidOfferType, "Offer type must be FLATX or PERCENTAGE")
	ErrInvalidOfferValue  = NewDomainError(ErrCodeInvalidOfferValue, "Offer value must not be negative")
	ErrInvalidIdentifier  = NewDomainError(ErrCodeInvalidIdentifier, "Identifiers must be positive integers")
	ErrEmptySegments      = NewDomainError(ErrCodeEmptySegments, "Offer must target at least one customer segment")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrRestaurantNotFound = NewDomainError(ErrCodeRestaurantNotFound, "Restaurant not found")
)
