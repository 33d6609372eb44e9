package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Delimiter separates the identity fields inside the plaintext and the
// base64 segment from the hash segment of a token. Field values must not
// contain it; no escaping is performed for compatibility with tokens that
// are already in circulation.
const Delimiter = "|"

const fieldCount = 8

// Credential holds the identity fields of one participant in the exact
// order they are serialized. The order is part of the token format and
// must not change.
type Credential struct {
	AnweshaID string `json:"anwesha_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	College   string `json:"college"`
	DOB       string `json:"dob"`
	Gender    string `json:"gender"`
}

// Codec encodes credentials into tamper-evident tokens and verifies them.
// It is stateless apart from the configured secret and safe for concurrent
// use.
type Codec struct {
	secret string
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: secret}
}

func (c Credential) fields() []string {
	return []string{
		c.AnweshaID,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Contact,
		c.College,
		c.DOB,
		c.Gender,
	}
}

// Encode builds the QR/search token for a credential:
// base64(fields joined with "|") + "|" + lowercase hex sha256(plaintext+secret).
// The secret never leaves the server; the hash lets a later Decode detect
// any mutation of the payload.
func (c *Codec) Encode(cr Credential) string {
	plaintext := strings.Join(cr.fields(), Delimiter)
	sum := sha256.Sum256([]byte(plaintext + c.secret))
	return base64.StdEncoding.EncodeToString([]byte(plaintext)) + Delimiter + hex.EncodeToString(sum[:])
}

// Decode verifies a token and recovers the credential. The bool result is
// false for anything that is not a well-formed, untampered token: wrong
// shape, bad base64, hash mismatch or wrong field count all look the same
// to the caller so that scanner UIs show a single generic failure and the
// scheme leaks nothing about which check tripped.
func (c *Codec) Decode(token string) (Credential, bool) {
	// base64 and hex alphabets never contain the delimiter, so a valid
	// token splits into exactly two parts.
	parts := strings.Split(token, Delimiter)
	if len(parts) != 2 {
		return Credential{}, false
	}

	raw, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return Credential{}, false
	}
	plaintext := string(raw)

	sum := sha256.Sum256([]byte(plaintext + c.secret))
	if hex.EncodeToString(sum[:]) != parts[1] {
		return Credential{}, false
	}

	fields := strings.Split(plaintext, Delimiter)
	if len(fields) != fieldCount {
		return Credential{}, false
	}

	return Credential{
		AnweshaID: fields[0],
		FirstName: fields[1],
		LastName:  fields[2],
		Email:     fields[3],
		Contact:   fields[4],
		College:   fields[5],
		DOB:       fields[6],
		Gender:    fields[7],
	}, true
}
