// Package protocol implements the passcode verification and registration
// exchanges carried over MQTT.
//
// Verification is a two-phase protocol: a device first declares an identity
// on passcodes/id, then presents a secret on passcodes/verify. The outcome
// ("true" or "false") is published on passcodes/result. The declared
// identity is staged in a single shared slot that persists until the next
// declaration; it is intentionally not cleared by verification attempts, so
// a device can retry secrets against an identity it declared once.
//
// Registration is single-phase: a secret arrives on
// passcodes/registerPassCode, the store allocates the next free id, and the
// outcome goes to passcodes/registerResult. Failure payloads are tagged
// ("false:empty_passcode", "false:database_error") so the registering
// device can distinguish operator error from service trouble.
//
// Every error path resolves to a negative published result. The engine
// fails closed: no panic, storage fault, or malformed input can produce an
// implicit successful authentication.
package protocol
