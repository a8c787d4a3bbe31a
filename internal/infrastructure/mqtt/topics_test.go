package mqtt

import "testing"

// The topic strings are a wire contract with the keypad devices; these
// tests pin them down so a refactor can't silently change them.
func TestTopics_WireContract(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		got  string
		want string
	}{
		{topics.IdentityDeclare(), "passcodes/id"},
		{topics.VerifyRequest(), "passcodes/verify"},
		{topics.VerifyResult(), "passcodes/result"},
		{topics.RegisterPasscode(), "passcodes/registerPassCode"},
		{topics.RegisterResult(), "passcodes/registerResult"},
		{topics.ServiceStatus(), "passcodes/service/status"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("topic = %q, want %q", tt.got, tt.want)
		}
	}
}
