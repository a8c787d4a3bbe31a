package protocol

import "errors"

// Decoding errors. All of these cause the inbound message to be logged and
// discarded; none of them produce a reply on the bus.
var (
	// ErrUnknownTopic indicates a message arrived on a topic the engine
	// has no handler for.
	ErrUnknownTopic = errors.New("protocol: unknown topic")

	// ErrMalformedIdentity indicates an identity declaration whose payload
	// is not a decimal integer.
	ErrMalformedIdentity = errors.New("protocol: malformed identity")

	// ErrIdentityOutOfRange indicates an identity declaration outside the
	// accepted range.
	ErrIdentityOutOfRange = errors.New("protocol: identity out of range")
)
