package solow_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solowirf/internal/dynamo"
	"github.com/san-kum/solowirf/internal/solow"
)

var _ = Describe("Model", func() {
	var model *solow.Model

	BeforeEach(func() {
		model = solow.New(solow.CobbDouglas, solow.DefaultParams())
	})

	Describe("SteadyState", func() {
		It("matches the Cobb-Douglas closed form", func() {
			k, err := model.SteadyState()
			Expect(err).NotTo(HaveOccurred())

			p := model.Params()
			want := math.Pow(p["s"]/(p["g"]+p["n"]+p["delta"]), 1/(1-p["alpha"]))
			Expect(k).To(BeNumerically("~", want, 1e-12))
		})

		It("is a rest point of the law of motion", func() {
			k, err := model.SteadyState()
			Expect(err).NotTo(HaveOccurred())
			Expect(model.Derive(dynamo.State{k}, 0)[0]).To(BeNumerically("~", 0, 1e-12))
		})

		It("is a rest point of the CES law of motion", func() {
			for _, sigma := range []float64{0.5, 0.9, 1.5, 3.0} {
				params := solow.DefaultParams()
				params["sigma"] = sigma
				ces := solow.New(solow.CES, params)

				k, err := ces.SteadyState()
				Expect(err).NotTo(HaveOccurred())
				Expect(ces.Derive(dynamo.State{k}, 0)[0]).To(BeNumerically("~", 0, 1e-10))
			}
		})

		It("reduces CES with unit elasticity to Cobb-Douglas", func() {
			ces := solow.New(solow.CES, solow.DefaultParams())

			kCD, err := model.SteadyState()
			Expect(err).NotTo(HaveOccurred())
			kCES, err := ces.SteadyState()
			Expect(err).NotTo(HaveOccurred())

			Expect(kCES).To(BeNumerically("~", kCD, 1e-12))
			Expect(ces.IntensiveOutput(2.5)).To(BeNumerically("~", model.IntensiveOutput(2.5), 1e-12))
		})

		It("rejects parameters outside their bounds", func() {
			for name, value := range map[string]float64{"s": 1.2, "alpha": 0, "A0": -1, "delta": -0.5} {
				params := solow.DefaultParams()
				params[name] = value
				_, err := solow.New(solow.CobbDouglas, params).SteadyState()
				Expect(err).To(MatchError(dynamo.ErrParameterBounds), name)
			}
		})

		It("reports a missing parameter", func() {
			params := solow.DefaultParams()
			delete(params, "g")
			_, err := solow.New(solow.CobbDouglas, params).SteadyState()
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})
	})

	Describe("evaluation functions", func() {
		It("splits output into consumption and investment", func() {
			for _, k := range []float64{0.5, 1, 4, 10} {
				y := model.IntensiveOutput(k)
				Expect(model.Consumption(k) + model.Investment(k)).To(BeNumerically("~", y, 1e-12))
				Expect(model.Investment(k)).To(BeNumerically("~", 0.15*y, 1e-12))
			}
		})
	})

	Describe("Solve", func() {
		It("stays at the steady state when unshocked", func() {
			k, err := model.SteadyState()
			Expect(err).NotTo(HaveOccurred())

			points, err := model.Solve(context.Background(), 0, dynamo.State{k}, 1.0, 50, "gbs8")
			Expect(err).NotTo(HaveOccurred())
			Expect(points).To(HaveLen(51))
			for _, p := range points {
				Expect(p.Y[0]).To(BeNumerically("~", k, 1e-9))
			}
		})

		It("converges toward the new steady state after a savings shock", func() {
			k0, err := model.SteadyState()
			Expect(err).NotTo(HaveOccurred())

			model.Params().Merge(map[string]float64{"s": 0.3})
			k1, err := model.SteadyState()
			Expect(err).NotTo(HaveOccurred())
			Expect(k1).To(BeNumerically(">", k0))

			points, err := model.Solve(context.Background(), 0, dynamo.State{k0}, 1.0, 400, "gbs8")
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i < len(points); i++ {
				Expect(points[i].Y[0]).To(BeNumerically(">=", points[i-1].Y[0]))
			}
			Expect(points[len(points)-1].Y[0]).To(BeNumerically("~", k1, 1e-3))
		})

		It("refuses to integrate invalid parameters", func() {
			model.Params()["s"] = 0
			_, err := model.Solve(context.Background(), 0, dynamo.State{1}, 1.0, 10, "gbs8")
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})
	})

	It("clones parameters independently", func() {
		clone := model.Clone()
		clone.Params()["s"] = 0.5
		Expect(model.Params()["s"]).To(Equal(0.15))
	})

	It("parses production names", func() {
		p, err := solow.ParseProduction("ces")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(solow.CES))
		Expect(p.String()).To(Equal("ces"))

		_, err = solow.ParseProduction("leontief")
		Expect(err).To(HaveOccurred())
	})
})
