package services

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-console/gateway"
)

// ValidationError lists required input that was missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// check collects failed field names and returns nil when none failed.
type check struct {
	fields []string
}

func (c *check) require(ok bool, field string) {
	if !ok {
		c.fields = append(c.fields, field)
	}
}

func (c *check) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

// ErrNotFound is the gateway's not-found error, re-exported for callers that
// only import services.
var ErrNotFound = gateway.ErrNotFound
