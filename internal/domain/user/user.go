// Package user defines the persisted profile record.
package user

import "time"

// User is the profile record persisted by the profile store. Field names are
// fixed by the stored blob format; BirthDay round-trips as RFC 3339.
type User struct {
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	BirthDay        time.Time `json:"birthDay"`
	ExtraNapkins    bool      `json:"extraNapkins"`
	FrequentRefills bool      `json:"frequentRefills"`
}

// Default returns a fresh profile: empty names and email, preferences off,
// birth date set to the current time.
func Default() User {
	return User{BirthDay: time.Now()}
}
