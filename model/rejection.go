package model

import (
	"errors"
	"fmt"
)

// Code is a machine-readable reason for a rejected command.
type Code string

const (
	CodeUnknown               Code = "UNKNOWN"
	CodeGameOver              Code = "GAME_OVER"
	CodeInvalidFaction        Code = "INVALID_FACTION"
	CodeUnknownPlanet         Code = "UNKNOWN_PLANET"
	CodeSamePlanet            Code = "SAME_PLANET"
	CodeNotOwner              Code = "NOT_OWNER"
	CodeInvalidShipCount      Code = "INVALID_SHIP_COUNT"
	CodeInsufficientShips     Code = "INSUFFICIENT_SHIPS"
	CodeInsufficientResources Code = "INSUFFICIENT_RESOURCES"
	CodeUnknownBuilding       Code = "UNKNOWN_BUILDING"
	CodeDuplicateBuilding     Code = "DUPLICATE_BUILDING"
	CodeNoFreeSlot            Code = "NO_FREE_SLOT"
	CodeNotConstructing       Code = "NOT_CONSTRUCTING"
	CodeRateLimited           Code = "RATE_LIMITED"
	CodeMalformed             Code = "MALFORMED"
)

// Rejection is returned when a command's preconditions are not met.
// A rejected command never mutates state.
type Rejection struct {
	Code   Code
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return string(r.Code)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Detail)
}

// Reject builds a Rejection with a formatted detail message.
func Reject(code Code, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// RejectionCode extracts the code from err. Errors that are not rejections
// report CodeUnknown.
func RejectionCode(err error) Code {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Code
	}
	return CodeUnknown
}

// IsRejection reports whether err carries the given code.
func IsRejection(err error, code Code) bool {
	return err != nil && RejectionCode(err) == code
}

// AsRejection unwraps err to a Rejection when it is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	ok := errors.As(err, &r)
	return r, ok
}
