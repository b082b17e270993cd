package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/waveprop/internal/engine"
	"github.com/san-kum/waveprop/internal/field"
	"github.com/san-kum/waveprop/internal/symbolic"
)

func periodicGrid(length float64, n int) []float64 {
	h := length / float64(n)
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = -length/2 + float64(i)*h
	}
	return grid
}

func mean(f *field.Field, p float64) (any, error) {
	sum := 0.0
	for _, v := range f.Data.Data {
		sum += real(v)
	}
	return sum / float64(f.Data.Size()), nil
}

var _ = Describe("Integrate", func() {
	var (
		x *field.Dimension
		p *field.PropagationDimension
		f *symbolic.Unknown
	)

	BeforeEach(func() {
		x = field.NewDimension("x", periodicGrid(8, 8))
		p = field.NewPropagationDimension("t")
		f = symbolic.NewUnknown("F", symbolic.PRef(p), symbolic.Ref(x))
	})

	Describe("with a zero right-hand side", func() {
		It("keeps a zero field at zero for every sampler", func() {
			eq := symbolic.Define(symbolic.D(f, symbolic.PRef(p)), symbolic.Number(0))

			results, err := engine.Integrate(eq, make([]float64, 8), 0.0, engine.Options{
				Step: 0.02,
				Samplers: map[string]engine.SamplerSpec{
					"mean1": {Fn: mean, Schedule: []float64{0.0, 1.0}},
					"mean2": {Fn: mean, Schedule: []float64{0.0, 1.0}},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))

			for _, key := range []string{"mean1", "mean2"} {
				joined := results[key]
				Expect(joined.Dims).To(HaveLen(1))
				Expect(joined.Dims[0].Grid).To(Equal([]float64{0.0, 1.0}))
				for _, v := range joined.Data.Data {
					Expect(real(v)).To(BeZero())
				}
			}
		})

		It("conserves an arbitrary start field at every sampled point", func() {
			eq := symbolic.Define(symbolic.D(f, symbolic.PRef(p)), symbolic.Number(0))

			start := make([]float64, 8)
			for i := range start {
				start[i] = float64(i) - 3.5
			}

			results, err := engine.Integrate(eq, start, 0.0, engine.Options{
				Samplers: map[string]engine.SamplerSpec{
					"field": {Fn: engine.SampleField, Schedule: []float64{0.0, 0.5, 1.0}},
				},
			})
			Expect(err).NotTo(HaveOccurred())

			joined := results["field"]
			Expect(joined.Dims).To(HaveLen(2))
			for i := 0; i < 3; i++ {
				for j := 0; j < 8; j++ {
					Expect(real(joined.Data.Data[i*8+j])).To(BeNumerically("~", start[j], 1e-9))
				}
			}
		})
	})

	Describe("sampling", func() {
		It("fires samplers scheduled exactly at the start before stepping", func() {
			eq := symbolic.Define(symbolic.D(f, symbolic.PRef(p)), symbolic.Number(0))

			var seen []float64
			probe := func(fl *field.Field, pv float64) (any, error) {
				seen = append(seen, pv)
				return 0.0, nil
			}

			_, err := engine.Integrate(eq, make([]float64, 8), 0.0, engine.Options{
				Samplers: map[string]engine.SamplerSpec{
					"probe": {Fn: probe, Schedule: []float64{0.0}},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal([]float64{0.0}))
		})

		It("interpolates one snapshot per event group", func() {
			eq := symbolic.Define(symbolic.D(f, symbolic.PRef(p)), symbolic.Number(0))

			var groups []float64
			_, err := engine.Integrate(eq, make([]float64, 8), 0.0, engine.Options{
				Samplers: map[string]engine.SamplerSpec{
					"a": {Fn: mean, Schedule: []float64{0.5}},
					"b": {Fn: mean, Schedule: []float64{0.5}},
				},
				OnSample: func(pv float64) { groups = append(groups, pv) },
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(Equal([]float64{0.5}), "equal due values across keys form one group")
		})

		It("samples between step boundaries via interpolation", func() {
			eq := symbolic.Define(symbolic.D(f, symbolic.PRef(p)), symbolic.Number(0))

			results, err := engine.Integrate(eq, make([]float64, 8), 0.0, engine.Options{
				Step: 0.3,
				Samplers: map[string]engine.SamplerSpec{
					"mean": {Fn: mean, Schedule: []float64{0.1, 0.2, 0.4}},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(results["mean"].Dims[0].Grid).To(Equal([]float64{0.1, 0.2, 0.4}))
		})
	})

	Describe("diffusion of a Gaussian", func() {
		It("relaxes the peak while conserving mass", func() {
			diffusivity := 0.2
			eq := symbolic.Define(
				symbolic.D(f, symbolic.PRef(p)),
				symbolic.Product(
					symbolic.Number(diffusivity),
					symbolic.D(f, symbolic.Ref(x), symbolic.Ref(x)),
				),
			)

			start := make([]float64, 8)
			for i, xv := range x.Grid {
				start[i] = math.Exp(-xv * xv)
			}

			results, err := engine.Integrate(eq, start, 0.0, engine.Options{
				Step: 0.01,
				Samplers: map[string]engine.SamplerSpec{
					"field": {Fn: engine.SampleField, Schedule: []float64{0.0, 1.0}},
				},
			})
			Expect(err).NotTo(HaveOccurred())

			joined := results["field"]
			var massBefore, massAfter, peakBefore, peakAfter float64
			for j := 0; j < 8; j++ {
				v0 := real(joined.Data.Data[j])
				v1 := real(joined.Data.Data[8+j])
				massBefore += v0
				massAfter += v1
				peakBefore = math.Max(peakBefore, v0)
				peakAfter = math.Max(peakAfter, v1)
			}
			Expect(massAfter).To(BeNumerically("~", massBefore, 1e-6), "diffusion conserves total mass on a periodic grid")
			Expect(peakAfter).To(BeNumerically("<", peakBefore), "diffusion lowers the peak")
		})
	})

	Describe("error handling", func() {
		It("rejects a malformed equation before stepping", func() {
			eq := symbolic.Define(f, symbolic.Number(0))
			_, err := engine.Integrate(eq, make([]float64, 8), 0.0, engine.Options{})
			Expect(err).To(MatchError(engine.ErrMalformedEquation))
		})

		It("rejects an initial field of the wrong shape", func() {
			eq := symbolic.Define(symbolic.D(f, symbolic.PRef(p)), symbolic.Number(0))
			_, err := engine.Integrate(eq, make([]float64, 5), 0.0, engine.Options{
				Samplers: map[string]engine.SamplerSpec{
					"mean": {Fn: mean, Schedule: []float64{0.0}},
				},
			})
			Expect(err).To(MatchError(field.ErrShapeMismatch))
		})

		It("returns an empty result map with no samplers", func() {
			eq := symbolic.Define(symbolic.D(f, symbolic.PRef(p)), symbolic.Number(0))
			results, err := engine.Integrate(eq, make([]float64, 8), 0.0, engine.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})
	})
})
