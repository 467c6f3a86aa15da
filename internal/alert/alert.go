// Package alert translates errors into user-facing title/message pairs.
// Every error recovered at a store boundary maps to exactly one Alert; no
// error propagates past this point.
package alert

import (
	"github.com/go-faster/errors"

	"github.com/xenking/appetizers/internal/profile"
	"github.com/xenking/appetizers/internal/transport"
)

// Alert is an acknowledgeable dialog presented to the user.
type Alert struct {
	Title   string
	Message string
}

var (
	InvalidURL = Alert{
		Title:   "Server Error",
		Message: "There was an issue connecting to the server. If this persists, please contact support.",
	}
	InvalidResponse = Alert{
		Title:   "Server Error",
		Message: "Invalid response from the server. Please try again later or contact support.",
	}
	InvalidData = Alert{
		Title:   "Server Error",
		Message: "The data received from the server was invalid. Please contact support.",
	}
	Unreachable = Alert{
		Title:   "Server Error",
		Message: "Unable to complete your request at this time. Please check your internet connection.",
	}
	InvalidForm = Alert{
		Title:   "Invalid Form",
		Message: "Please ensure all fields in the form have been filled out.",
	}
	InvalidEmail = Alert{
		Title:   "Invalid Email",
		Message: "Please ensure your email is correct.",
	}
	InvalidUserData = Alert{
		Title:   "Profile Error",
		Message: "There was an error saving or retrieving your profile.",
	}
	SaveSuccess = Alert{
		Title:   "Profile Saved",
		Message: "Your profile information was successfully saved.",
	}
	Generic = Alert{
		Title:   "Something Went Wrong",
		Message: "An unexpected error occurred. Please try again.",
	}
)

// FromError maps an error from any store or the transport client to its
// Alert. Unknown errors map to Generic.
func FromError(err error) Alert {
	switch {
	case errors.Is(err, transport.ErrInvalidURL):
		return InvalidURL
	case errors.Is(err, transport.ErrInvalidResponse):
		return InvalidResponse
	case errors.Is(err, transport.ErrInvalidData):
		return InvalidData
	case errors.Is(err, transport.ErrUnreachable):
		return Unreachable
	case errors.Is(err, profile.ErrInvalidForm):
		return InvalidForm
	case errors.Is(err, profile.ErrInvalidEmail):
		return InvalidEmail
	case errors.Is(err, profile.ErrCorruptData),
		errors.Is(err, profile.ErrEncodeFailure):
		return InvalidUserData
	}
	return Generic
}
