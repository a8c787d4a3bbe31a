package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gatelogic/gatelogic-core/internal/infrastructure/mqtt"
)

// Identity range accepted by declarations. Values outside it are discarded
// without a reply.
const (
	MinIdentity = 1
	MaxIdentity = 127
)

// Kind discriminates the inbound message variants the engine handles.
type Kind int

const (
	KindUnknown Kind = iota
	KindIdentityDeclare
	KindVerifyRequest
	KindRegisterRequest
)

// String returns a human-readable kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindIdentityDeclare:
		return "identity_declare"
	case KindVerifyRequest:
		return "verify_request"
	case KindRegisterRequest:
		return "register_request"
	default:
		return "unknown"
	}
}

// Message is the decoded form of an inbound bus message. Exactly one
// variant is populated depending on Kind: Identity for identity
// declarations, Secret for verify and register requests.
//
// Decoding happens once at the transport boundary; the engine dispatches
// on Kind with an exhaustive switch and never re-inspects topic strings.
type Message struct {
	Kind     Kind
	Identity int64
	Secret   string
}

// DecodeMessage maps a raw (topic, payload) pair onto a Message variant.
//
// Identity declarations are validated here: a non-numeric payload returns
// ErrMalformedIdentity and a numeric payload outside [MinIdentity,
// MaxIdentity] returns ErrIdentityOutOfRange. Verify and register payloads
// are raw secret strings and pass through untouched, including empty ones;
// the engine decides what an empty secret means per operation.
func DecodeMessage(topic string, payload []byte) (Message, error) {
	topics := mqtt.Topics{}

	switch topic {
	case topics.IdentityDeclare():
		raw := strings.TrimSpace(string(payload))
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Message{}, fmt.Errorf("%w: %q", ErrMalformedIdentity, raw)
		}
		if id < MinIdentity || id > MaxIdentity {
			return Message{}, fmt.Errorf("%w: %d", ErrIdentityOutOfRange, id)
		}
		return Message{Kind: KindIdentityDeclare, Identity: id}, nil

	case topics.VerifyRequest():
		return Message{Kind: KindVerifyRequest, Secret: string(payload)}, nil

	case topics.RegisterPasscode():
		return Message{Kind: KindRegisterRequest, Secret: string(payload)}, nil

	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
}
