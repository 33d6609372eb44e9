package credential_test

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shivam99392677/anwesha26-sub000/internal/credential"
)

func TestCredentialCodec(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Credential Codec Suite")
}

var _ = Describe("Credential Codec", func() {
	var codec *credential.Codec

	BeforeEach(func() {
		codec = credential.NewCodec("fixture-secret")
	})

	Describe("Encode", func() {
		It("should produce base64 segment and lowercase hex hash joined by the delimiter", func() {
			cr := credential.Credential{
				AnweshaID: "ANW-000001",
				FirstName: "Asha",
				LastName:  "Rao",
				Email:     "a@x.com",
				Contact:   "9999999999",
				College:   "IIT X",
				DOB:       "2000-01-01",
				Gender:    "female",
			}

			token := codec.Encode(cr)
			parts := strings.Split(token, "|")
			Expect(parts).To(HaveLen(2))

			raw, err := base64.StdEncoding.DecodeString(parts[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(Equal("ANW-000001|Asha|Rao|a@x.com|9999999999|IIT X|2000-01-01|female"))

			sum := sha256.Sum256([]byte(string(raw) + "fixture-secret"))
			Expect(parts[1]).To(Equal(hex.EncodeToString(sum[:])))
		})

		It("should be deterministic for identical input and secret", func() {
			cr := credential.Credential{AnweshaID: "ANW-000042", Email: "x@y.in"}
			Expect(codec.Encode(cr)).To(Equal(codec.Encode(cr)))
		})

		It("should encode empty optional fields positionally", func() {
			token := codec.Encode(credential.Credential{AnweshaID: "ANW-000007"})
			decoded, ok := codec.Decode(token)
			Expect(ok).To(BeTrue())
			Expect(decoded.AnweshaID).To(Equal("ANW-000007"))
			Expect(decoded.Contact).To(BeEmpty())
			Expect(decoded.Gender).To(BeEmpty())
		})
	})

	Describe("Decode", func() {
		It("should round-trip every field of a full credential", func() {
			cr := credential.Credential{
				AnweshaID: "ANW-000001",
				FirstName: "Asha",
				LastName:  "Rao",
				Email:     "a@x.com",
				Contact:   "9999999999",
				College:   "IIT X",
				DOB:       "2000-01-01",
				Gender:    "female",
			}

			decoded, ok := codec.Decode(codec.Encode(cr))
			Expect(ok).To(BeTrue())
			Expect(decoded).To(Equal(cr))
		})

		It("should reject a token without a delimiter", func() {
			_, ok := codec.Decode("justonesegment")
			Expect(ok).To(BeFalse())
		})

		It("should reject a token with invalid base64", func() {
			_, ok := codec.Decode("not-base64|deadbeef")
			Expect(ok).To(BeFalse())
		})

		It("should reject a token encoded under a different secret", func() {
			other := credential.NewCodec("another-secret")
			token := other.Encode(credential.Credential{AnweshaID: "ANW-000009"})

			_, ok := codec.Decode(token)
			Expect(ok).To(BeFalse())
		})

		It("should detect a single flipped character in the base64 segment", func() {
			token := codec.Encode(credential.Credential{
				AnweshaID: "ANW-000001",
				FirstName: "Asha",
				Email:     "a@x.com",
			})
			idx := strings.Index(token, "|")
			tampered := flipChar(token, idx/2)

			_, ok := codec.Decode(tampered)
			Expect(ok).To(BeFalse())
		})

		It("should detect a single flipped character in the hash segment", func() {
			token := codec.Encode(credential.Credential{AnweshaID: "ANW-000001"})
			tampered := flipChar(token, len(token)-1)

			_, ok := codec.Decode(tampered)
			Expect(ok).To(BeFalse())
		})

		It("should reject a valid-looking payload with the wrong field count", func() {
			plaintext := "only|three|fields"
			sum := sha256.Sum256([]byte(plaintext + "fixture-secret"))
			forged := base64.StdEncoding.EncodeToString([]byte(plaintext)) + "|" + hex.EncodeToString(sum[:])

			_, ok := codec.Decode(forged)
			Expect(ok).To(BeFalse())
		})

		It("should not recover field boundaries when a field contains the delimiter", func() {
			// Known limitation of the join/split format: the extra
			// delimiter shifts the field count and the token is refused.
			cr := credential.Credential{AnweshaID: "ANW|000001"}
			_, ok := codec.Decode(codec.Encode(cr))
			Expect(ok).To(BeFalse())
		})
	})
})

func flipChar(s string, i int) string {
	b := []byte(s)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
