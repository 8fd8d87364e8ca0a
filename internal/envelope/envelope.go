// Package envelope builds the uniform result every operation returns.
package envelope

import (
	apperrors "teamspace/internal/errors"
)

// SuccessMessage is the message of every successful envelope.
const SuccessMessage = "Success"

// Envelope is the {status, message, code, data} result of an operation.
// Status is application-level: 201, 202, 401 or 402.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data"`
}

// Created is a success carrying data.
func Created(data any) Envelope {
	return Envelope{Status: apperrors.StatusCreated, Message: SuccessMessage, Data: data}
}

// Accepted is a success with no payload.
func Accepted() Envelope {
	return Envelope{Status: apperrors.StatusAccepted, Message: SuccessMessage}
}

// Failed converts err into a failure envelope with null data.
func Failed(err error) Envelope {
	appErr := apperrors.As(err)
	return Envelope{Status: appErr.Status, Message: appErr.Message, Code: appErr.Code}
}

// From picks Failed, Accepted or Created depending on err and data.
func From(data any, err error) Envelope {
	switch {
	case err != nil:
		return Failed(err)
	case data == nil:
		return Accepted()
	default:
		return Created(data)
	}
}

// OK reports whether e is a success envelope.
func (e Envelope) OK() bool {
	return e.Status == apperrors.StatusCreated || e.Status == apperrors.StatusAccepted
}
