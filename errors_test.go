package retry_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	retry "github.com/JohnPlummer/jp-go-retry"
)

var _ = Describe("Filters", func() {
	Describe("Transient", func() {
		var filter retry.Filter

		BeforeEach(func() {
			filter = retry.Transient()
		})

		It("rejects nil errors", func() {
			Expect(filter(nil)).To(BeFalse())
		})

		It("rejects context cancellation", func() {
			Expect(filter(context.Canceled)).To(BeFalse())
			Expect(filter(fmt.Errorf("call failed: %w", context.Canceled))).To(BeFalse())
		})

		It("rejects context deadline expiry", func() {
			Expect(filter(context.DeadlineExceeded)).To(BeFalse())
		})

		It("retries unclassified errors", func() {
			Expect(filter(errors.New("connection reset"))).To(BeTrue())
		})

		DescribeTable("status codes",
			func(statusCode int, retryable bool) {
				err := retry.NewStatusCodeError(statusCode, errors.New("http error"))
				Expect(filter(err)).To(Equal(retryable))
			},
			Entry("429 rate limit", 429, true),
			Entry("500 internal server error", 500, true),
			Entry("502 bad gateway", 502, true),
			Entry("503 service unavailable", 503, true),
			Entry("504 gateway timeout", 504, true),
			Entry("400 bad request", 400, false),
			Entry("401 unauthorized", 401, false),
			Entry("404 not found", 404, false),
		)
	})

	Describe("RetryOn", func() {
		It("retries only listed errors", func() {
			target := errors.New("target")
			filter := retry.RetryOn(target)

			Expect(filter(target)).To(BeTrue())
			Expect(filter(fmt.Errorf("wrapped: %w", target))).To(BeTrue())
			Expect(filter(errors.New("other"))).To(BeFalse())
			Expect(filter(nil)).To(BeFalse())
		})
	})

	Describe("SkipOn", func() {
		It("retries everything except listed errors", func() {
			fatal := errors.New("fatal")
			filter := retry.SkipOn(fatal)

			Expect(filter(fatal)).To(BeFalse())
			Expect(filter(fmt.Errorf("wrapped: %w", fatal))).To(BeFalse())
			Expect(filter(errors.New("other"))).To(BeTrue())
			Expect(filter(nil)).To(BeFalse())
		})
	})

	Describe("StatusFilter", func() {
		It("uses the default retryable codes when none are given", func() {
			filter := retry.StatusFilter()

			Expect(filter(retry.NewStatusCodeError(503, errors.New("unavailable")))).To(BeTrue())
			Expect(filter(retry.NewStatusCodeError(400, errors.New("bad request")))).To(BeFalse())
		})

		It("honors custom codes", func() {
			filter := retry.StatusFilter(418)

			Expect(filter(retry.NewStatusCodeError(418, errors.New("teapot")))).To(BeTrue())
			Expect(filter(retry.NewStatusCodeError(503, errors.New("unavailable")))).To(BeFalse())
		})

		It("does not retry errors without a status code", func() {
			filter := retry.StatusFilter()
			Expect(filter(errors.New("no code"))).To(BeFalse())
			Expect(filter(nil)).To(BeFalse())
		})
	})

	Describe("StatusCodeError", func() {
		It("preserves the wrapped error", func() {
			cause := errors.New("service unavailable")
			err := retry.NewStatusCodeError(503, cause)

			Expect(err.Error()).To(Equal("service unavailable"))
			Expect(errors.Is(err, cause)).To(BeTrue())

			var httpErr retry.HTTPError
			Expect(errors.As(err, &httpErr)).To(BeTrue())
			Expect(httpErr.StatusCode()).To(Equal(503))
		})
	})
})
