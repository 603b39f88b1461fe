package core

import (
	"github.com/pkg/errors"
)

var (
	// ErrUserNotFound is returned when the profile page answers with the "Not Found" sentinel.
	ErrUserNotFound = errors.New("user not found")
	// ErrStructuralParse is returned when the calendar markup is missing or malformed.
	ErrStructuralParse = errors.New("contribution calendar not found in the page")
	// ErrNoContributions is returned when every calendar day has zero contributions.
	ErrNoContributions = errors.New("no contributions found")
	// ErrNetwork is returned when the HTTP request fails or the status is not 2xx.
	ErrNetwork = errors.New("network failure")
	// ErrInvalidUsername is returned before any request is made for a malformed user name.
	ErrInvalidUsername = errors.New("invalid username")
)
