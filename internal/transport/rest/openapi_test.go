package rest_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOpenAPISpec(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenAPI Spec Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).ToNot(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document the payment callback and check-in endpoints", func() {
		Expect(doc.Paths.Find("/payment/callback")).ToNot(BeNil())
		Expect(doc.Paths.Find("/checkin/scan")).ToNot(BeNil())
		Expect(doc.Paths.Find("/users/me/credential")).ToNot(BeNil())
	})
})
