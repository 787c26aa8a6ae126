package rest

import (
	"fmt"
	"net/http"

	"github.com/telesocial/telesocial-sdk-go/envelope"
)

// APIError is a failure reported by the service itself: a non-success
// status plus whatever machine-readable body came with it. It travels
// as the cause inside an sdkerr.SDKError of kind ErrAPIError.
type APIError struct {
	Status  int
	Message string
	Body    *envelope.Envelope
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telesocial: status %d: %s", e.Status, e.Message)
}

// statusMessages covers the statuses the service documents across its
// resources, used when the error body carries no message of its own.
var statusMessages = map[int]string{
	400: "missing or invalid parameter",
	401: "networkid not related to this application",
	403: "appkey rejected or upload grant expired",
	404: "no such resource",
	409: "networkid already registered to another application",
	500: "internal service error",
	502: "media operation failed",
}

func statusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
