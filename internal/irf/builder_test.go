package irf_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solowirf/internal/dynamo"
	"github.com/san-kum/solowirf/internal/irf"
)

var _ = Describe("Builder", func() {
	var (
		ctx     context.Context
		model   *relaxModel
		builder *irf.Builder
		before  dynamo.Params
	)

	BeforeEach(func() {
		ctx = context.Background()
		model = newRelaxModel()
		before = model.Params().Clone()
		builder = irf.NewBuilder(model)
	})

	Describe("levels response to a savings shock", func() {
		var table *irf.Table

		BeforeEach(func() {
			Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())
			Expect(builder.SetKind(irf.Levels)).To(Succeed())

			var err error
			table, err = builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())
		})

		It("has N + T + 1 rows ordered by time", func() {
			Expect(table.Len()).To(Equal(111))
			Expect(table.Padding()).To(Equal(10))
			Expect(table.Horizon()).To(Equal(100))

			times := table.Times()
			Expect(times[0]).To(Equal(-10.0))
			Expect(times[9]).To(Equal(-1.0))
			Expect(times[10]).To(Equal(0.0))
			Expect(times[110]).To(Equal(100.0))
			for i := 1; i < len(times); i++ {
				Expect(times[i]).To(BeNumerically(">", times[i-1]))
			}
		})

		It("grows the steady state along the pre-shock path in the padding", func() {
			for i := 0; i < 10; i++ {
				row := table.Row(i)
				factor := math.Exp(0.03 * row.Time)
				Expect(row.Capital).To(BeNumerically("~", 2.0*factor, 1e-12))
				Expect(row.Output).To(BeNumerically("~", math.Sqrt2*factor, 1e-12))
				Expect(row.Consumption).To(BeNumerically("~", 0.8*math.Sqrt2*factor, 1e-12))
				Expect(row.Investment).To(BeNumerically("~", 0.2*math.Sqrt2*factor, 1e-12))
			}
			for i := 1; i < 10; i++ {
				Expect(table.Row(i).Capital).To(BeNumerically(">", table.Row(i-1).Capital))
			}
		})

		It("starts the response from the steady state under the anchored factor", func() {
			anchor := math.Exp(-0.03)
			row := table.Row(10)
			Expect(row.Capital).To(BeNumerically("~", 2.0*anchor, 1e-12))
			Expect(row.Output).To(BeNumerically("~", math.Sqrt2*anchor, 1e-12))
			Expect(row.Consumption).To(BeNumerically("~", 0.7*math.Sqrt2*anchor, 1e-12))
			Expect(row.Investment).To(BeNumerically("~", 0.3*math.Sqrt2*anchor, 1e-12))
		})

		It("follows the integrated path after the shock", func() {
			anchor := math.Exp(-0.03)
			for i := 11; i < table.Len(); i++ {
				row := table.Row(i)
				k := exactCapital(2.0, 0.3, row.Time)
				factor := anchor * math.Exp(0.03*row.Time)
				Expect(row.Capital).To(BeNumerically("~", k*factor, 1e-8*factor*k))
				Expect(row.Output).To(BeNumerically("~", math.Sqrt(k)*factor, 1e-8*factor))
			}
		})

		It("integrates under the shocked parameters and restores them", func() {
			Expect(model.seen).To(HaveLen(1))
			Expect(model.seen[0]["savings_rate"]).To(Equal(0.3))
			Expect(model.Params().Equal(before)).To(BeTrue())
		})
	})

	Describe("parameter restoration", func() {
		It("restores every key for every kind", func() {
			impulses := []irf.Impulse{
				{},
				{"savings_rate": 0.35},
				{"g": 0.05, "n": 0.0},
				{"A0": 2, "L0": 3, "savings_rate": 0.1},
			}
			for _, kind := range irf.Kinds() {
				for _, imp := range impulses {
					Expect(builder.SetImpulse(imp)).To(Succeed())
					Expect(builder.SetKind(kind)).To(Succeed())
					_, err := builder.Build(ctx)
					Expect(err).NotTo(HaveOccurred())
					Expect(model.Params().Equal(before)).To(BeTrue(), "kind %s impulse %v", kind, imp)
				}
			}
		})

		It("restores parameters when integration fails", func() {
			model.solveErr = dynamo.ErrStepTooSmall
			Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())

			_, err := builder.Build(ctx)
			Expect(err).To(MatchError(irf.ErrIntegration))
			Expect(errors.Is(err, dynamo.ErrStepTooSmall)).To(BeTrue())

			var integErr *irf.IntegrationError
			Expect(errors.As(err, &integErr)).To(BeTrue())
			Expect(model.seen[0]["savings_rate"]).To(Equal(0.3))
			Expect(model.Params().Equal(before)).To(BeTrue())
		})

		It("stops on a canceled context and restores parameters", func() {
			Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())
			Expect(builder.SetKind(irf.Levels)).To(Succeed())

			canceled, cancel := context.WithCancel(ctx)
			cancel()

			table, err := builder.Build(canceled)
			Expect(table).To(BeNil())
			Expect(err).To(MatchError(irf.ErrIntegration))
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(model.Params().Equal(before)).To(BeTrue())
		})

		It("reports non-finite evaluations as integration errors", func() {
			model.Params()["savings_rate"] = -0.1
			before = model.Params().Clone()
			Expect(builder.SetImpulse(irf.Impulse{})).To(Succeed())

			_, err := builder.Build(ctx)
			Expect(err).To(MatchError(irf.ErrIntegration))
			Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
			Expect(model.Params().Equal(before)).To(BeTrue())
		})
	})

	Describe("efficiency units", func() {
		It("leaves values unscaled and the padding constant", func() {
			Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())

			table, err := builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())

			first := table.Row(0)
			for i := 0; i < table.Padding(); i++ {
				row := table.Row(i)
				Expect(row.Capital).To(Equal(first.Capital))
				Expect(row.Output).To(Equal(first.Output))
				Expect(row.Consumption).To(Equal(first.Consumption))
				Expect(row.Investment).To(Equal(first.Investment))
			}
			Expect(first.Capital).To(Equal(2.0))

			last := table.Row(table.Len() - 1)
			Expect(last.Capital).To(BeNumerically("~", exactCapital(2.0, 0.3, 100), 1e-8))
		})
	})

	Describe("continuity at the shock", func() {
		for _, kind := range []irf.Kind{irf.PerCapita, irf.Levels} {
			It("joins padding and response without a jump in "+kind.String(), func() {
				Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())
				Expect(builder.SetKind(kind)).To(Succeed())

				table, err := builder.Build(ctx)
				Expect(err).NotTo(HaveOccurred())

				scaling, err := builder.Scaling()
				Expect(err).NotTo(HaveOccurred())
				growth := math.Exp(scaling.Rate())

				lastPadding, firstResponse := table.Row(9), table.Row(10)
				Expect(lastPadding.Time).To(Equal(-1.0))
				Expect(firstResponse.Time).To(Equal(0.0))
				Expect(firstResponse.Capital).To(Equal(lastPadding.Capital))
				Expect(firstResponse.Output).To(Equal(lastPadding.Output))

				Expect(lastPadding.Capital / table.Row(8).Capital).To(BeNumerically("~", growth, 1e-12))
			})
		}

		It("grows the response at the post-shock rate", func() {
			builder = irf.NewBuilder(model, irf.WithHorizon(5))
			Expect(builder.SetImpulse(irf.Impulse{"g": 0.05})).To(Succeed())
			Expect(builder.SetKind(irf.PerCapita)).To(Succeed())

			table, err := builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())

			// The steady state does not depend on g, so capital only moves with the factor.
			Expect(table.Row(9).Capital / table.Row(8).Capital).To(BeNumerically("~", math.Exp(0.02), 1e-12))
			Expect(table.Row(11).Capital / table.Row(10).Capital).To(BeNumerically("~", math.Exp(0.05), 1e-9))
			Expect(table.Row(10).Capital).To(BeNumerically("~", 2.0*math.Exp(-0.02), 1e-12))
		})
	})

	Describe("determinism", func() {
		It("returns identical tables for identical requests", func() {
			Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.25})).To(Succeed())
			Expect(builder.SetKind(irf.PerCapita)).To(Succeed())

			first, err := builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())
			second, err := builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(first.Equal(second)).To(BeTrue())
			Expect(model.seen).To(HaveLen(2))
		})
	})

	Describe("window boundaries", func() {
		It("omits the padding block when N is zero", func() {
			builder = irf.NewBuilder(model, irf.WithPadding(0), irf.WithHorizon(20))
			Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())
			Expect(builder.SetKind(irf.Levels)).To(Succeed())

			table, err := builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(table.Len()).To(Equal(21))
			Expect(table.Padding()).To(Equal(0))
			Expect(table.Row(0).Time).To(Equal(0.0))
			Expect(table.Row(0).Capital).To(BeNumerically("~", 2.0*math.Exp(-0.03), 1e-12))
		})

		It("returns only the initial response row when T is zero", func() {
			builder = irf.NewBuilder(model, irf.WithHorizon(0))
			Expect(builder.SetImpulse(irf.Impulse{"savings_rate": 0.3})).To(Succeed())

			table, err := builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(table.Len()).To(Equal(11))
			Expect(table.Horizon()).To(Equal(0))

			row := table.Row(10)
			Expect(row.Time).To(Equal(0.0))
			Expect(row.Capital).To(Equal(2.0))
		})

		It("honors overridden horizons through setters", func() {
			Expect(builder.SetPadding(3)).To(Succeed())
			Expect(builder.SetHorizon(7)).To(Succeed())
			Expect(builder.SetImpulse(irf.Impulse{})).To(Succeed())

			table, err := builder.Build(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(table.Len()).To(Equal(11))
			Expect(table.Times()[0]).To(Equal(-3.0))
		})
	})

	Describe("configuration errors", func() {
		It("rejects unknown impulse keys without touching parameters", func() {
			err := builder.SetImpulse(irf.Impulse{"nonexistent_param": 1.0})
			Expect(err).To(MatchError(irf.ErrConfiguration))

			var cfgErr *irf.ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal("impulse"))
			Expect(model.Params().Equal(before)).To(BeTrue())
		})

		It("rejects a nil impulse", func() {
			Expect(builder.SetImpulse(nil)).To(MatchError(irf.ErrConfiguration))
		})

		It("rejects non-finite impulse values", func() {
			Expect(builder.SetImpulse(irf.Impulse{"g": math.Inf(1)})).To(MatchError(irf.ErrConfiguration))
		})

		It("refuses to build before an impulse is set", func() {
			_, err := builder.Build(ctx)
			Expect(err).To(MatchError(irf.ErrConfiguration))
			Expect(model.seen).To(BeEmpty())
		})

		It("rejects kinds outside the enumeration", func() {
			Expect(builder.SetKind(irf.Kind(7))).To(MatchError(irf.ErrConfiguration))
			Expect(builder.SetKindName("real_terms")).To(MatchError(irf.ErrConfiguration))
			Expect(builder.Kind()).To(Equal(irf.EfficiencyUnits))

			Expect(builder.SetKindName("per_capita")).To(Succeed())
			Expect(builder.Kind()).To(Equal(irf.PerCapita))
		})

		It("rejects negative horizons and unknown integrators", func() {
			Expect(builder.SetPadding(-1)).To(MatchError(irf.ErrConfiguration))
			Expect(builder.SetHorizon(-1)).To(MatchError(irf.ErrConfiguration))
			Expect(builder.SetIntegrator("dop853")).To(MatchError(irf.ErrConfiguration))

			builder = irf.NewBuilder(model, irf.WithHorizon(-5))
			Expect(builder.SetImpulse(irf.Impulse{})).To(Succeed())
			_, err := builder.Build(ctx)
			Expect(err).To(MatchError(irf.ErrConfiguration))
			Expect(model.seen).To(BeEmpty())
		})

		It("re-checks the impulse against parameters at build time", func() {
			Expect(builder.SetImpulse(irf.Impulse{"g": 0.03})).To(Succeed())
			delete(model.Params(), "g")
			before = model.Params().Clone()

			_, err := builder.Build(ctx)
			Expect(err).To(MatchError(irf.ErrConfiguration))
			Expect(model.Params().Equal(before)).To(BeTrue())
		})

		It("needs growth parameters for scaled kinds", func() {
			delete(model.Params(), "L0")
			Expect(builder.SetImpulse(irf.Impulse{})).To(Succeed())
			Expect(builder.SetKind(irf.Levels)).To(Succeed())

			_, err := builder.Build(ctx)
			Expect(err).To(MatchError(irf.ErrConfiguration))
		})

		It("keeps a private copy of the impulse", func() {
			imp := irf.Impulse{"savings_rate": 0.3}
			Expect(builder.SetImpulse(imp)).To(Succeed())
			imp["savings_rate"] = 0.9
			Expect(builder.Impulse()["savings_rate"]).To(Equal(0.3))
		})
	})
})
