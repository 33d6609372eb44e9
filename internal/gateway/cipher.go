package gateway

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	kdfIterations = 65536
	kdfKeyLength  = 32
)

// staticIV is the fixed initialization vector the gateway uses for every
// message in both directions. Reusing an IV is a weakness of the gateway's
// protocol, not a choice made here; it must be preserved byte for byte or
// the gateway cannot decrypt our requests.
var staticIV = []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

var (
	ErrInvalidCiphertext = errors.New("gateway: invalid ciphertext")
	ErrInvalidPadding    = errors.New("gateway: invalid padding")
)

// Cipher encrypts outbound transaction requests and decrypts inbound
// callbacks for the alternate payment gateway, and independently verifies
// the HMAC signature over the callback fields. All keys are derived once
// at construction; every method is safe for concurrent use.
type Cipher struct {
	requestKey  []byte
	responseKey []byte
	hashSecret  []byte
	merchantID  string
}

func NewCipher(cfg CipherConfig) *Cipher {
	return &Cipher{
		requestKey:  deriveKey(cfg.RequestKey, cfg.RequestSalt),
		responseKey: deriveKey(cfg.ResponseKey, cfg.ResponseSalt),
		hashSecret:  []byte(cfg.ResponseHashKey),
		merchantID:  cfg.MerchantID,
	}
}

// CipherConfig carries the four raw key materials plus the signature secret
// the gateway issues per merchant.
type CipherConfig struct {
	MerchantID      string
	RequestKey      string
	RequestSalt     string
	ResponseKey     string
	ResponseSalt    string
	ResponseHashKey string
}

// deriveKey turns raw key material into an AES-256 key the way the gateway
// mandates: PBKDF2 with SHA-512, 65536 iterations, 32-byte output.
func deriveKey(key, salt string) []byte {
	return pbkdf2.Key([]byte(key), []byte(salt), kdfIterations, kdfKeyLength, sha512.New)
}

// Encrypt encrypts a JSON request envelope with AES-256-CBC and PKCS#7
// padding under the request key and returns uppercase hex, the casing the
// gateway's parser requires.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.requestKey)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, staticIV).CryptBlocks(out, padded)

	return strings.ToUpper(hex.EncodeToString(out)), nil
}

// Decrypt decrypts a hex-encoded callback payload under the response key.
// Bad hex, a truncated ciphertext or invalid padding are all fatal for the
// request; a corrupted callback cannot be recovered and is never retried.
func (c *Cipher) Decrypt(ciphertextHex string) (string, error) {
	raw, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(c.responseKey)
	if err != nil {
		return "", err
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, staticIV).CryptBlocks(out, raw)

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}

	return string(unpadded), nil
}

// VerifySignature recomputes the HMAC-SHA512 over the fixed-order
// concatenation of callback fields and compares it to the signature the
// gateway embedded. Decryption only proves the payload came from a holder
// of the response key; this check proves the fields themselves were not
// altered, so it must pass before any payment record is written.
//
// A callback without at least one sub-channel entry fails verification
// outright rather than being treated as an index error.
func (c *Cipher) VerifySignature(resp *CallbackResponse) bool {
	if len(resp.SubChannels) == 0 {
		return false
	}

	concat := c.merchantID +
		resp.GatewayTxnID +
		resp.MerchantTxnID +
		resp.TotalAmount +
		resp.StatusCode +
		resp.SubChannels[0] +
		resp.BankTxnID

	mac := hmac.New(sha512.New, c.hashSecret)
	mac.Write([]byte(concat))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(resp.Signature))
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
