package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/utils"
)

// errorStatusMap lists the errors answered with a status other than 500.
// Protocol and client state errors are answered with 200 and a reset body
// by writeSyncError.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{service.ErrMalformedRequest, http.StatusBadRequest},
	{utils.ErrEmptyBody, http.StatusBadRequest},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrProfileMismatch, http.StatusForbidden},
}

func statusFromError(err error) int {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text sent to the client. Internal errors are
// not described.
func messageFromError(err error, status int) string {
	if status == http.StatusInternalServerError {
		var handlerErr *service.HandlerError
		if errors.As(err, &handlerErr) {
			return "handler " + handlerErr.Name + " failed"
		}
		return http.StatusText(status)
	}
	return err.Error()
}
