// Package rest maps each Telesocial REST operation onto a service value:
// fluent setters shape the call, Validate checks it, Do sends it and
// wraps the response in a generic envelope.
package rest

import (
	"errors"
	"sort"
	"strings"
)

const (
	subsys = "rest"

	defaultBaseURL = "https://api4.bitmouth.com"
	apiPrefix      = "/api/rest"
)

// AuthPlacement selects where the appkey credential travels on each
// request. The service's documented convention is a plain parameter;
// header placement exists for deployments whose gateways rewrite or
// strip query strings.
type AuthPlacement int

const (
	// AuthInParams sends the appkey as a query parameter on reads and a
	// form field on writes.
	AuthInParams AuthPlacement = iota
	// AuthInHeader sends the appkey as an X-Api-Key header.
	AuthInHeader
)

const (
	headerAPIKey    = "X-Api-Key"
	headerRequestID = "X-Request-Id"
	appKeyParam     = "appkey"
)

// requireIDs reports every blank identifier in one message, keeping
// multi-field validation errors stable for the caller.
func requireIDs(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if v == "" {
			missing = append(missing, name+" is required")
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.New(strings.Join(missing, "; "))
}
