package mqtt

// Topic prefix for all passcode protocol topics.
//
// The topic strings and payload formats are a wire contract with the
// keypad devices in the field; they must not change.
const TopicPrefix = "passcodes"

// Topics provides builders for the passcode protocol MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	client.Subscribe(topics.VerifyRequest(), 1, handler)
type Topics struct{}

// IdentityDeclare returns the inbound topic on which a device declares
// which record id a following verification should be checked against.
// Payload: decimal integer string, 1-127.
func (Topics) IdentityDeclare() string {
	return TopicPrefix + "/id"
}

// VerifyRequest returns the inbound topic carrying a passcode to verify.
// Payload: the raw secret string.
func (Topics) VerifyRequest() string {
	return TopicPrefix + "/verify"
}

// VerifyResult returns the outbound topic carrying the verification
// outcome. Payload: "true" or "false".
func (Topics) VerifyResult() string {
	return TopicPrefix + "/result"
}

// RegisterPasscode returns the inbound topic carrying a new passcode to
// register. Payload: the raw secret string.
func (Topics) RegisterPasscode() string {
	return TopicPrefix + "/registerPassCode"
}

// RegisterResult returns the outbound topic carrying the registration
// outcome. Payload: "true", "false:empty_passcode", "false:database_error",
// or "false:error_<description>".
func (Topics) RegisterResult() string {
	return TopicPrefix + "/registerResult"
}

// ServiceStatus returns the retained topic carrying the service's
// online/offline status (including the LWT crash message).
func (Topics) ServiceStatus() string {
	return TopicPrefix + "/service/status"
}
