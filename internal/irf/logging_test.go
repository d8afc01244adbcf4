package irf_test

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solowirf/internal/irf"
	"github.com/san-kum/solowirf/internal/logging"
)

var _ = Describe("Builder logging", func() {
	It("traces each phase of a build", func() {
		var buf bytes.Buffer
		b := irf.NewBuilder(newRelaxModel(), irf.WithHorizon(4), irf.WithLogger(logging.NewLogger("trace", &buf)))
		Expect(b.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())

		_, err := b.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())

		out := buf.String()
		Expect(out).To(ContainSubstring("built padding"))
		Expect(out).To(ContainSubstring("applied impulse"))
		Expect(out).To(ContainSubstring("integrated response"))
		Expect(out).To(ContainSubstring("restored parameters"))
		Expect(strings.Count(out, "level=TRACE")).To(Equal(5))
	})

	It("stays quiet at info level", func() {
		var buf bytes.Buffer
		b := irf.NewBuilder(newRelaxModel(), irf.WithHorizon(4), irf.WithLogger(logging.NewLogger("info", &buf)))
		Expect(b.SetImpulse(irf.Impulse{})).To(Succeed())

		_, err := b.Build(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(BeEmpty())
	})
})
