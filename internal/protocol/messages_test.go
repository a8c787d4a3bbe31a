package protocol

import (
	"errors"
	"testing"
)

func TestDecodeMessage_IdentityDeclare(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int64
		wantErr error
	}{
		{"minimum", "1", 1, nil},
		{"maximum", "127", 127, nil},
		{"mid range", "42", 42, nil},
		{"surrounding whitespace", " 7\n", 7, nil},
		{"zero", "0", 0, ErrIdentityOutOfRange},
		{"negative", "-3", 0, ErrIdentityOutOfRange},
		{"above range", "128", 0, ErrIdentityOutOfRange},
		{"non numeric", "abc", 0, ErrMalformedIdentity},
		{"empty", "", 0, ErrMalformedIdentity},
		{"float", "5.5", 0, ErrMalformedIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeMessage("passcodes/id", []byte(tt.payload))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeMessage() error = %v", err)
			}
			if msg.Kind != KindIdentityDeclare {
				t.Errorf("Kind = %v, want KindIdentityDeclare", msg.Kind)
			}
			if msg.Identity != tt.want {
				t.Errorf("Identity = %d, want %d", msg.Identity, tt.want)
			}
		})
	}
}

func TestDecodeMessage_VerifyRequest(t *testing.T) {
	msg, err := DecodeMessage("passcodes/verify", []byte("s3cret"))
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if msg.Kind != KindVerifyRequest {
		t.Errorf("Kind = %v, want KindVerifyRequest", msg.Kind)
	}
	if msg.Secret != "s3cret" {
		t.Errorf("Secret = %q, want %q", msg.Secret, "s3cret")
	}
}

func TestDecodeMessage_VerifyRequest_EmptySecretPassesThrough(t *testing.T) {
	// Empty secrets are the engine's concern, not the decoder's.
	msg, err := DecodeMessage("passcodes/verify", nil)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if msg.Secret != "" {
		t.Errorf("Secret = %q, want empty", msg.Secret)
	}
}

func TestDecodeMessage_RegisterRequest(t *testing.T) {
	msg, err := DecodeMessage("passcodes/registerPassCode", []byte("9999"))
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if msg.Kind != KindRegisterRequest {
		t.Errorf("Kind = %v, want KindRegisterRequest", msg.Kind)
	}
	if msg.Secret != "9999" {
		t.Errorf("Secret = %q, want %q", msg.Secret, "9999")
	}
}

func TestDecodeMessage_UnknownTopic(t *testing.T) {
	_, err := DecodeMessage("passcodes/bogus", []byte("x"))
	if !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("error = %v, want ErrUnknownTopic", err)
	}
}
