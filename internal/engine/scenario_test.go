package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/collision"
	"github.com/san-kum/orbitsim/internal/compute"
	"github.com/san-kum/orbitsim/internal/engine"
)

var _ = Describe("Engine", func() {
	var (
		e *engine.Engine
		p engine.Params
	)

	BeforeEach(func() {
		e = engine.New(compute.Serial{}, 42)
		p = engine.DefaultParams()
		p.G = 0
	})

	Context("with the merge policy", func() {
		It("fuses two bodies on a collision course", func() {
			w := body.NewWorld(
				body.New(0, 0, 1, 0, 4),
				body.New(3, 0, -1, 0, 4),
			)

			rep, err := e.Tick(w, p)
			Expect(err).NotTo(HaveOccurred())

			Expect(rep.Deleted).To(Equal([]int{1}))
			Expect(rep.Removed).To(HaveLen(1))
			Expect(rep.Removed[0].X).To(Equal(3.0))
			Expect(rep.Survivors).To(HaveKeyWithValue(1, 0))

			Expect(w.Len()).To(Equal(1))
			merged := w.Bodies()[0]
			Expect(merged.Mass).To(Equal(8.0))
			Expect(merged.Radius).To(BeNumerically(">", 2))
			Expect(merged.VX).To(BeNumerically("~", 0, 1e-12))
			Expect(merged.X).To(BeNumerically("~", 1.5, 1e-12))
			Expect(rep.Active).To(BeFalse())
		})

		It("conserves mass and momentum in a crowded scene", func() {
			w := body.NewWorld()
			for i := 0; i < 20; i++ {
				w.Add(body.New(float64(i%5)*3, float64(i/5)*3, float64(i%3)-1, float64(i%4)-1.5, float64(1+i%4)))
			}
			mass := body.TotalMass(w.Bodies())
			px, py := body.Momentum(w.Bodies())

			_, err := e.Tick(w, p)
			Expect(err).NotTo(HaveOccurred())

			Expect(w.Len()).To(BeNumerically("<", 20))
			Expect(body.TotalMass(w.Bodies())).To(BeNumerically("~", mass, 1e-9))
			qx, qy := body.Momentum(w.Bodies())
			Expect(qx).To(BeNumerically("~", px, 1e-9))
			Expect(qy).To(BeNumerically("~", py, 1e-9))
		})

		It("leaves locked pairs where they are", func() {
			w := body.NewWorld(body.New(0, 0, 0, 0, 4), body.New(1, 0, 0, 0, 9))
			for i := range w.Bodies() {
				w.Bodies()[i].Locked = true
			}

			_, err := e.Tick(w, p)
			Expect(err).NotTo(HaveOccurred())

			Expect(w.Len()).To(Equal(1))
			Expect(w.Bodies()[0].X).To(Equal(1.0))
			Expect(w.Bodies()[0].VX).To(Equal(0.0))
		})
	})

	Context("with the bounce policy", func() {
		BeforeEach(func() {
			p.Collision = collision.PolicyBounce
		})

		It("swaps velocities of equal masses at restitution 1", func() {
			w := body.NewWorld(
				body.New(0, 0, 1, 0, 1),
				body.New(1.5, 0, -1, 0, 1),
			)

			rep, err := e.Tick(w, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Pairs).To(Equal(1))
			Expect(rep.Deleted).To(BeEmpty())

			a, b := w.Bodies()[0], w.Bodies()[1]
			Expect(a.VX).To(BeNumerically("~", -1, 1e-9))
			Expect(b.VX).To(BeNumerically("~", 1, 1e-9))
			Expect(b.X - a.X).To(BeNumerically(">", 2))
		})

		It("stops both bodies at the common velocity at restitution 0", func() {
			p.Restitution = 0
			w := body.NewWorld(
				body.New(0, 0, 2, 0, 1),
				body.New(1.5, 0, 0, 0, 3),
			)

			_, err := e.Tick(w, p)
			Expect(err).NotTo(HaveOccurred())

			for _, b := range w.Bodies() {
				Expect(b.VX).To(BeNumerically("~", 0.5, 1e-9))
				Expect(b.VY).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("never moves a locked wall", func() {
			w := body.NewWorld(
				body.New(0, 0, 0, 0, 100),
				body.New(10.5, 0, -1, 0, 1),
			)
			w.Bodies()[0].Locked = true

			for i := 0; i < 5; i++ {
				_, err := e.Tick(w, p)
				Expect(err).NotTo(HaveOccurred())
			}

			wall := w.Bodies()[0]
			Expect(wall.X).To(Equal(0.0))
			Expect(wall.VX).To(Equal(0.0))
			Expect(w.Bodies()[1].VX).To(BeNumerically(">", 0))
		})
	})

	Context("in parent mode", func() {
		It("carries a satellite along its ancestor chain", func() {
			p.Collision = collision.PolicyNone
			p.Interaction = body.ParentOnly

			grand := body.New(0, 0, 1, 0, 100)
			parent := body.New(200, 0, 0, 0, 10)
			parent.Parent = 0
			child := body.New(300, 0, 0, 1, 1)
			child.Parent = 1
			w := body.NewWorld(grand, parent, child)

			rep, err := e.Tick(w, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Active).To(BeTrue())

			c := w.Bodies()[2]
			Expect(c.X).To(BeNumerically("~", 301, 1e-12))
			Expect(c.Y).To(BeNumerically("~", 1, 1e-12))
		})
	})

	It("reports no activity once everything is at rest", func() {
		w := body.NewWorld(body.New(0, 0, 0, 0, 1), body.New(100, 0, 0, 0, 1))
		rep, err := e.Tick(w, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.Active).To(BeFalse())
		Expect(math.IsNaN(w.Bodies()[0].X)).To(BeFalse())
	})
})
