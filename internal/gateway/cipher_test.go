package gateway_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/shivam99392677/anwesha26-sub000/internal/gateway"
)

func TestGatewayCipher(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Gateway Cipher Suite")
}

func fixtureConfig() gateway.CipherConfig {
	return gateway.CipherConfig{
		MerchantID:      "T1000001",
		RequestKey:      "request-key-material",
		RequestSalt:     "request-salt",
		ResponseKey:     "request-key-material",
		ResponseSalt:    "request-salt",
		ResponseHashKey: "response-hash-secret",
	}
}

var _ = Describe("Gateway Cipher", func() {
	var c *gateway.Cipher

	BeforeEach(func() {
		// Matching request/response key pairs so Decrypt(Encrypt(x))
		// exercises both directions.
		c = gateway.NewCipher(fixtureConfig())
	})

	Describe("Encrypt", func() {
		It("should emit uppercase hex", func() {
			out, err := c.Encrypt(`{"amount":"100.00"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(strings.ToUpper(out)))
			_, err = hex.DecodeString(out)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should be deterministic under the fixed IV", func() {
			a, err := c.Encrypt(`{"x":1}`)
			Expect(err).NotTo(HaveOccurred())
			b, err := c.Encrypt(`{"x":1}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})
	})

	Describe("Decrypt", func() {
		It("should round-trip arbitrary JSON payloads byte for byte", func() {
			payloads := []string{
				`{}`,
				`{"amount":"1.00","udf":{"field1":"42"}}`,
				`{"long":"` + strings.Repeat("a", 500) + `"}`,
				`{"unicode":"अन्वेषा"}`,
			}
			for _, p := range payloads {
				enc, err := c.Encrypt(p)
				Expect(err).NotTo(HaveOccurred())
				dec, err := c.Decrypt(enc)
				Expect(err).NotTo(HaveOccurred())
				Expect(dec).To(Equal(p))
			}
		})

		It("should accept lowercase hex input", func() {
			enc, err := c.Encrypt(`{"x":1}`)
			Expect(err).NotTo(HaveOccurred())
			dec, err := c.Decrypt(strings.ToLower(enc))
			Expect(err).NotTo(HaveOccurred())
			Expect(dec).To(Equal(`{"x":1}`))
		})

		It("should fail on input that is not hex", func() {
			_, err := c.Decrypt("zz-not-hex")
			Expect(err).To(MatchError(gateway.ErrInvalidCiphertext))
		})

		It("should fail on a truncated ciphertext", func() {
			enc, err := c.Encrypt(`{"x":1}`)
			Expect(err).NotTo(HaveOccurred())
			_, err = c.Decrypt(enc[:len(enc)-2])
			Expect(err).To(HaveOccurred())
		})

		It("should fail with invalid padding under a mismatched key", func() {
			cfg := fixtureConfig()
			cfg.ResponseKey = "different-key-material"
			other := gateway.NewCipher(cfg)

			enc, err := c.Encrypt(`{"x":1}`)
			Expect(err).NotTo(HaveOccurred())
			_, err = other.Decrypt(enc)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("VerifySignature", func() {
		var resp *gateway.CallbackResponse

		sign := func(r *gateway.CallbackResponse) string {
			concat := "T1000001" + r.GatewayTxnID + r.MerchantTxnID + r.TotalAmount + r.StatusCode + r.SubChannels[0] + r.BankTxnID
			mac := hmac.New(sha512.New, []byte("response-hash-secret"))
			mac.Write([]byte(concat))
			return hex.EncodeToString(mac.Sum(nil))
		}

		BeforeEach(func() {
			resp = &gateway.CallbackResponse{
				StatusCode:    gateway.StatusSuccess,
				GatewayTxnID:  "GW123456",
				MerchantTxnID: "ANWTXN0001",
				TotalAmount:   "350.00",
				SubChannels:   []string{"NB"},
				BankTxnID:     "BANK789",
			}
			resp.Signature = sign(resp)
		})

		It("should accept a correctly signed response", func() {
			Expect(c.VerifySignature(resp)).To(BeTrue())
		})

		It("should reject when any signed field is mutated", func() {
			mutations := []func(*gateway.CallbackResponse){
				func(r *gateway.CallbackResponse) { r.GatewayTxnID = "GW123457" },
				func(r *gateway.CallbackResponse) { r.MerchantTxnID = "ANWTXN0002" },
				func(r *gateway.CallbackResponse) { r.TotalAmount = "350.01" },
				func(r *gateway.CallbackResponse) { r.StatusCode = "0399" },
				func(r *gateway.CallbackResponse) { r.SubChannels = []string{"UPI"} },
				func(r *gateway.CallbackResponse) { r.BankTxnID = "BANK790" },
			}
			for _, mutate := range mutations {
				tampered := *resp
				tampered.SubChannels = append([]string(nil), resp.SubChannels...)
				mutate(&tampered)
				Expect(c.VerifySignature(&tampered)).To(BeFalse())
			}
		})

		It("should reject a forged signature", func() {
			resp.Signature = strings.Repeat("ab", 64)
			Expect(c.VerifySignature(resp)).To(BeFalse())
		})

		It("should reject a response with no sub-channel entries", func() {
			resp.SubChannels = nil
			Expect(c.VerifySignature(resp)).To(BeFalse())
		})
	})
})
