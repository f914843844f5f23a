package httperr

import "errors"

const (
	MsgInternal           = "Internal server error"
	MsgRecordNotFound     = "Record Not Found"
	MsgEmailRegistered    = "Email has already been registered"
	MsgCityNotFound       = "City not found"
	MsgInvalidCredentials = "email or password are not valid"
	MsgStillReferenced    = "Record is still referenced by other records"
)

func ErrRecordNotFound() error {
	return BadRequest(MsgRecordNotFound)
}

func ErrEmailRegistered() error {
	return BadRequest(MsgEmailRegistered)
}

func ErrInvalidCredentials() error {
	return Unauthorized(MsgInvalidCredentials)
}

func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
