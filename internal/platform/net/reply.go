package net

import (
	"net/http"

	perr "ballotbox/internal/platform/errors"
)

// Wire is the JSON envelope every transport writes
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply wraps data in an envelope for a success status
func Reply(status int, data any, reqID string) Wire {
	return Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Failure maps err onto its status and envelope; a nil err is a plain 200
func Failure(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Reply(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	wr := perr.WireFrom(err)
	w := Reply(status, nil, reqID)
	w.Code, w.Error = wr.Code, wr.Message
	return status, w
}
