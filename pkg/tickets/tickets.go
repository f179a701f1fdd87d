package tickets

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-jose/go-jose/v3"
)

var (
	ErrInvalidKey   = errors.New("ticket encryption key must be 32 bytes (64 hex chars)")
	ErrInvalidToken = errors.New("invalid ticket token")
)

// Payload is the verification payload embedded in a ticket QR token.
type Payload struct {
	BookingRef  string    `json:"booking_ref"`
	ServiceType string    `json:"service_type"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Service issues and verifies encrypted ticket-verification tokens. Tokens
// are compact JWE strings (direct A256GCM), safe to embed in a QR code URL.
type Service struct {
	key       []byte
	encrypter jose.Encrypter
}

// NewService builds a ticket service from a hex-encoded 32-byte key.
func NewService(keyHex string) (*Service, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, ErrInvalidKey
	}
	enc, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Service{key: key, encrypter: enc}, nil
}

// Issue encrypts a payload into a compact token.
func (s *Service) Issue(p Payload) (string, error) {
	plaintext, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	obj, err := s.encrypter.Encrypt(plaintext)
	if err != nil {
		return "", err
	}
	return obj.CompactSerialize()
}

// Verify decrypts a token back into its payload.
func (s *Service) Verify(token string) (*Payload, error) {
	obj, err := jose.ParseEncrypted(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	plaintext, err := obj.Decrypt(s.key)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var p Payload
	if err := json.Unmarshal(plaintext, &p); err != nil {
		return nil, ErrInvalidToken
	}
	return &p, nil
}
