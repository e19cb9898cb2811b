package errors

import "net/http"

// Code identifies the class of an arena error.
type Code string

const (
	CodeInputValidation    Code = "INPUT_VALIDATION"
	CodeMissingCredential  Code = "MISSING_CREDENTIAL"
	CodeExternalService    Code = "EXTERNAL_SERVICE"
	CodeResponseFormat     Code = "RESPONSE_FORMAT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
)

// Kinds refine INPUT_VALIDATION and RESPONSE_FORMAT errors. They are stored
// under the "kind" meta key.
const (
	KindParse = "parse"
	KindType  = "type"
	KindEmpty = "empty"
	KindRange = "range"
)

func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the status code the API answers with for c.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInputValidation:
		return http.StatusBadRequest
	case CodeMissingCredential:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFailedPrecondition:
		return http.StatusConflict
	case CodeResponseFormat, CodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
