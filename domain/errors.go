package domain

import (
	"errors"
	"net/http"
)

// Kind identifies a class of domain failure. Every failure the service
// surfaces carries exactly one kind; the HTTP layer maps kinds to status
// codes through HTTPStatus.
type Kind string

const (
	KindBadRequest            Kind = "BAD_REQUEST"
	KindAPIValidationError    Kind = "API_VALIDATION_ERROR"
	KindWrongEmailAndPassword Kind = "WRONG_EMAIL_AND_PASSWORD"
	KindEmailExisted          Kind = "EMAIL_EXISTED"
	KindInvalidToken          Kind = "INVALID_TOKEN"
	KindTokenNotFound         Kind = "TOKEN_NOT_FOUND"
	KindAccessDenied          Kind = "ACCESS_DENIED"
	KindBusinessNameExisted   Kind = "BUSINESS_NAME_EXISTED"
	KindCreatedAccountFails   Kind = "CREATED_ACCOUNT_FAILS"
	KindNotFound              Kind = "NOT_FOUND"
	KindBusinessNotFound      Kind = "BUSINESS_NOT_FOUND"
	KindOTPExpired            Kind = "OTP_EXPIRED"
	KindOTPCodeNotMatch       Kind = "OTP_CODE_NOT_MATCH"
	KindEmailNotVerified      Kind = "EMAIL_NOT_VERIFIED"
	KindEmailAlreadyVerified  Kind = "EMAIL_ALREADY_VERIFIED"
	KindTooManyRequests       Kind = "TOO_MANY_REQUESTS"
	KindServerError           Kind = "SERVER_ERROR"
	KindSendEmailError        Kind = "SEND_EMAIL_ERROR"
)

// FieldError describes a single request-payload validation failure.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the tagged error variant used for every domain failure. A flat
// kind plus message for business failures; Fields is populated only for
// payload validation errors.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Is makes two domain errors of the same kind match under errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// E builds a domain error of the given kind.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ValidationError builds an API_VALIDATION_ERROR carrying per-field detail.
func ValidationError(fields []FieldError) *Error {
	return &Error{
		Kind:    KindAPIValidationError,
		Message: "request payload validation failed",
		Fields:  fields,
	}
}

// KindOf extracts the kind from err, or SERVER_ERROR when err is not a
// domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServerError
}

var kindStatus = map[Kind]int{
	KindBadRequest:            http.StatusBadRequest,
	KindAPIValidationError:    http.StatusBadRequest,
	KindWrongEmailAndPassword: http.StatusBadRequest,
	KindTokenNotFound:         http.StatusUnauthorized,
	KindInvalidToken:          http.StatusUnauthorized,
	KindAccessDenied:          http.StatusForbidden,
	KindNotFound:              http.StatusNotFound,
	KindBusinessNotFound:      http.StatusNotFound,
	KindEmailExisted:          http.StatusConflict,
	KindBusinessNameExisted:   http.StatusConflict,
	KindEmailAlreadyVerified:  http.StatusConflict,
	KindOTPExpired:            http.StatusGone,
	KindOTPCodeNotMatch:       http.StatusBadRequest,
	KindEmailNotVerified:      http.StatusForbidden,
	KindCreatedAccountFails:   http.StatusFailedDependency,
	KindTooManyRequests:       http.StatusTooManyRequests,
	KindServerError:           http.StatusInternalServerError,
	KindSendEmailError:        http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code for a kind. Unmapped kinds
// translate to 500.
func HTTPStatus(kind Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
