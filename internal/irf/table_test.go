package irf_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solowirf/internal/irf"
)

func buildTable(kind irf.Kind, imp irf.Impulse, opts ...irf.Option) (*irf.Table, irf.Scaling) {
	model := newRelaxModel()
	b := irf.NewBuilder(model, opts...)
	Expect(b.SetImpulse(imp)).To(Succeed())
	Expect(b.SetKind(kind)).To(Succeed())

	table, err := b.Build(context.Background())
	Expect(err).NotTo(HaveOccurred())

	scaling, err := b.Scaling()
	Expect(err).NotTo(HaveOccurred())
	return table, scaling
}

var _ = Describe("Table", func() {
	It("slices named variables into time/value pairs", func() {
		table, _ := buildTable(irf.EfficiencyUnits, irf.Impulse{"savings_rate": 0.3}, irf.WithHorizon(10))

		times, capital := table.Series(irf.Capital)
		Expect(times).To(HaveLen(21))
		Expect(capital).To(HaveLen(21))

		for i, row := range table.Rows() {
			Expect(row.Time).To(Equal(times[i]))
			for _, v := range irf.Variables() {
				Expect(row.Value(v)).To(Equal(table.Column(v)[i]))
			}
		}
	})

	It("hands out copies", func() {
		table, _ := buildTable(irf.EfficiencyUnits, irf.Impulse{}, irf.WithHorizon(3))

		col := table.Column(irf.Output)
		col[0] = -1
		Expect(table.Column(irf.Output)[0]).NotTo(Equal(-1.0))

		m := table.Matrix()
		m.Set(0, 1, -1)
		Expect(table.Row(0).Capital).NotTo(Equal(-1.0))

		r, c := m.Dims()
		Expect(r).To(Equal(table.Len()))
		Expect(c).To(Equal(5))
	})

	It("parses variable names", func() {
		for _, v := range irf.Variables() {
			parsed, err := irf.ParseVariable(v.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(v))
		}
		_, err := irf.ParseVariable("wages")
		Expect(err).To(MatchError(irf.ErrConfiguration))
	})
})

var _ = Describe("BalancedGrowthPath", func() {
	It("is flat in efficiency units", func() {
		table, scaling := buildTable(irf.EfficiencyUnits, irf.Impulse{"savings_rate": 0.3})
		for _, v := range irf.BalancedGrowthPath(table, irf.Output, scaling) {
			Expect(v).To(Equal(math.Sqrt2))
		}
	})

	It("grows from the first padding value at the pre-shock rate", func() {
		table, scaling := buildTable(irf.Levels, irf.Impulse{"savings_rate": 0.3})
		bgp := irf.BalancedGrowthPath(table, irf.Capital, scaling)
		times := table.Times()
		first := table.Row(0).Capital

		Expect(bgp).To(HaveLen(table.Len()))
		for i, t := range times {
			Expect(bgp[i]).To(BeNumerically("~", first*math.Exp(0.03*(t+10)), 1e-12))
		}
		// Padding rows lie on the path exactly.
		for i := 0; i < table.Padding(); i++ {
			Expect(bgp[i]).To(BeNumerically("~", table.Row(i).Capital, 1e-12))
		}
	})
})
