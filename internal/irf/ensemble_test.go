package irf_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solowirf/internal/irf"
)

var _ = Describe("Ensemble", func() {
	newModel := func() irf.Model { return newRelaxModel() }

	It("builds every scenario on its own model", func() {
		scenarios := []irf.Scenario{
			{Name: "efficiency", Impulse: irf.Impulse{"savings_rate": 0.3}, Kind: irf.EfficiencyUnits},
			{Name: "per capita", Impulse: irf.Impulse{"savings_rate": 0.3}, Kind: irf.PerCapita},
			{Name: "levels", Impulse: irf.Impulse{"savings_rate": 0.3}, Kind: irf.Levels},
		}

		tables, err := irf.NewEnsemble(newModel, irf.WithHorizon(20)).Run(context.Background(), scenarios)
		Expect(err).NotTo(HaveOccurred())
		Expect(tables).To(HaveLen(3))

		for i, sc := range scenarios {
			want, _ := buildTable(sc.Kind, sc.Impulse, irf.WithHorizon(20))
			Expect(tables[i].Equal(want)).To(BeTrue(), sc.Name)
		}
	})

	It("uses a scenario's own model factory when given", func() {
		richer := func() irf.Model {
			m := newRelaxModel()
			m.params["savings_rate"] = 0.4
			return m
		}
		scenarios := []irf.Scenario{
			{Name: "default", Impulse: irf.Impulse{}},
			{Name: "richer", Impulse: irf.Impulse{}, NewModel: richer},
		}

		tables, err := irf.NewEnsemble(newModel, irf.WithHorizon(3)).Run(context.Background(), scenarios)
		Expect(err).NotTo(HaveOccurred())
		Expect(tables[0].Row(0).Capital).To(Equal(2.0))
		Expect(tables[1].Row(0).Capital).To(Equal(4.0))
	})

	It("fails when any scenario is misconfigured", func() {
		scenarios := []irf.Scenario{
			{Name: "ok", Impulse: irf.Impulse{}, Kind: irf.Levels},
			{Name: "bad", Impulse: irf.Impulse{"beta": 0.9}, Kind: irf.Levels},
		}

		_, err := irf.NewEnsemble(newModel).Run(context.Background(), scenarios)
		Expect(err).To(MatchError(irf.ErrConfiguration))
		Expect(err.Error()).To(ContainSubstring(`"bad"`))
	})

	It("rejects scenarios with no model factory before building anything", func() {
		scenarios := []irf.Scenario{
			{Name: "own", Impulse: irf.Impulse{}, NewModel: newModel},
			{Name: "orphan", Impulse: irf.Impulse{}},
		}

		tables, err := irf.NewEnsemble(nil).Run(context.Background(), scenarios)
		Expect(tables).To(BeNil())
		Expect(err).To(MatchError(irf.ErrConfiguration))
		Expect(err.Error()).To(ContainSubstring(`"orphan"`))

		var cfgErr *irf.ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(cfgErr.Field).To(Equal("model"))
	})
})
