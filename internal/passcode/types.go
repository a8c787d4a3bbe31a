package passcode

import "time"

// Record is a single passcode credential.
//
// A record is created only through the registration protocol, which
// assigns the next free id (max + 1). Ids are never reused or changed.
type Record struct {
	// ID is the record's identity, declared by a device before
	// verification. Assigned 1-based, monotonically.
	ID int64 `json:"id"`

	// Name is the display name used in entry notifications.
	// Nil until set administratively.
	Name *string `json:"name"`

	// Secret is the passcode value. Compared by exact string equality:
	// no hashing or normalisation, matching the devices' wire behaviour.
	Secret string `json:"passcode"`

	// Created is set once at registration and never changes.
	Created time.Time `json:"created"`

	// LastAccess is set at creation and updated on every successful
	// verification.
	LastAccess time.Time `json:"lastAccess"`
}

// DisplayName returns the record's name, or empty string when unset.
func (r *Record) DisplayName() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}
