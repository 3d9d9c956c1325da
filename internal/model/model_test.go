package model

import (
	"math"
	"testing"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/geom"
)

func mustGeometry(t *testing.T, p Params) *Geometry {
	t.Helper()
	g, err := NewGeometry(p)
	if err != nil {
		t.Fatalf("NewGeometry(%+v): %v", p, err)
	}
	return g
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Params)
	}{
		{"zero height", func(p *Params) { p.H = 0 }},
		{"negative width", func(p *Params) { p.W = -5 }},
		{"zero depth", func(p *Params) { p.D = 0 }},
		{"depth exceeds width", func(p *Params) { p.D = p.W }},
		{"gap exceeds width", func(p *Params) { p.G = p.W }},
		{"zero angle", func(p *Params) { p.Alpha = 0 }},
		{"angle over 90", func(p *Params) { p.Alpha = 95 }},
	}
	for _, tc := range cases {
		p := DefaultParams()
		tc.mod(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params should validate: %v", err)
	}
}

func TestCenterOfRotation(t *testing.T) {
	g := mustGeometry(t, DefaultParams())
	c := g.Center()
	if math.Abs(c.X-19.5) > 1e-12 || math.Abs(c.Y-30) > 1e-12 {
		t.Errorf("expected center (19.5, 30), got %s", c)
	}
}

func TestSteepCutOutlines(t *testing.T) {
	// Default alpha=75 is steeper than the critical angle atan2(30, 10),
	// about 71.6 degrees, so the cut reaches the bottom edge.
	g := mustGeometry(t, DefaultParams())

	box := g.BoxVertices()
	if len(box) != 4 {
		t.Fatalf("expected 4 box vertices, got %d", len(box))
	}
	lid := g.ClosedLidVertices()
	if len(lid) != 4 {
		t.Fatalf("expected 4 lid vertices, got %d", len(lid))
	}

	bottomX := 40 - 10 + 30/math.Tan(75*math.Pi/180)
	if math.Abs(box[1].X-bottomX) > 1e-9 || box[1].Y != 0 {
		t.Errorf("expected bottom cut vertex (%.6f, 0), got %s", bottomX, box[1])
	}
	if lid[0] != geom.Pt(30, 30) || lid[1] != geom.Pt(40, 30) {
		t.Errorf("unexpected lid top edge: %s %s", lid[0], lid[1])
	}
}

func TestShallowCutOutlines(t *testing.T) {
	p := DefaultParams()
	p.Alpha = 45 // below the critical angle, cut hits the right wall
	g := mustGeometry(t, p)

	box := g.BoxVertices()
	if len(box) != 5 {
		t.Fatalf("expected 5 box vertices, got %d", len(box))
	}
	lid := g.ClosedLidVertices()
	if len(lid) != 3 {
		t.Fatalf("expected triangular lid, got %d vertices", len(lid))
	}

	wallY := 30 - 10*math.Tan(45*math.Pi/180)
	if math.Abs(lid[2].Y-wallY) > 1e-9 || lid[2].X != 40 {
		t.Errorf("expected wall vertex (40, %.6f), got %s", wallY, lid[2])
	}
}

func TestBranchesMeetAtCriticalAngle(t *testing.T) {
	p := DefaultParams()
	crit := p.CriticalAngle() * 180 / math.Pi

	below := p
	below.Alpha = crit - 1e-6
	above := p
	above.Alpha = crit + 1e-6

	gb := mustGeometry(t, below)
	ga := mustGeometry(t, above)

	// Just below critical the wall vertex approaches (w, 0); just above,
	// the bottom vertex does the same. The outline is continuous.
	wall := gb.BoxVertices()[2]
	bottom := ga.BoxVertices()[1]
	if wall.Distance(geom.Pt(40, 0)) > 1e-3 {
		t.Errorf("shallow branch limit: got %s", wall)
	}
	if bottom.Distance(geom.Pt(40, 0)) > 1e-3 {
		t.Errorf("steep branch limit: got %s", bottom)
	}
}

func TestOpenLidIsPointReflection(t *testing.T) {
	g := mustGeometry(t, DefaultParams())
	c := g.Center()
	closed := g.ClosedLidVertices()
	open := g.OpenLidVertices()

	for i := range closed {
		want := closed[i].ReflectThrough(c)
		if open[i] != want {
			t.Errorf("vertex %d: expected %s, got %s", i, want, open[i])
		}
	}
}

func TestConstraintLineEquidistance(t *testing.T) {
	g := mustGeometry(t, DefaultParams())
	closed := geom.Pt(34, 25)
	open := closed.ReflectThrough(g.Center())
	line := g.ConstraintLine(closed)

	// Every point on the constraint line is equidistant from the closed
	// and open lid pivot positions.
	for _, f := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := line.A.Lerp(line.B, f)
		if math.Abs(p.Distance(closed)-p.Distance(open)) > 1e-9 {
			t.Errorf("point at f=%.2f not equidistant: %f vs %f",
				f, p.Distance(closed), p.Distance(open))
		}
	}

	// The line passes through the center of rotation.
	if line.Project(g.Center()).Distance(g.Center()) > 1e-9 {
		t.Error("constraint line should pass through the center")
	}
}

func TestDefaultLayoutInsideOutlines(t *testing.T) {
	for _, alpha := range []float64{45, 60, 75, 85} {
		p := DefaultParams()
		p.Alpha = alpha
		g := mustGeometry(t, p)
		l := g.DefaultLayout()

		for _, c := range []Chain{ChainA, ChainB} {
			cp := l.Chain(c)
			if !g.InClosedLid(cp.Closed) {
				t.Errorf("alpha=%g chain %s: lid pivot %s outside closed lid", alpha, c, cp.Closed)
			}
			if cp.RodLength() <= 0 {
				t.Errorf("alpha=%g chain %s: non-positive rod length", alpha, c)
			}
			// The box pivot must sit on the chain's constraint line.
			line := g.ConstraintLine(cp.Closed)
			if line.Project(cp.Box).Distance(cp.Box) > 1e-9 {
				t.Errorf("alpha=%g chain %s: box pivot off constraint line", alpha, c)
			}
		}
	}
}

func TestRodLengthSymmetry(t *testing.T) {
	g := mustGeometry(t, DefaultParams())
	l := g.DefaultLayout()
	c := g.Center()

	for _, ch := range []Chain{ChainA, ChainB} {
		cp := l.Chain(ch)
		dClosed := cp.Box.Distance(cp.Closed)
		dOpen := cp.Box.Distance(cp.Open(c))
		if math.Abs(dClosed-dOpen) > 1e-9 {
			t.Errorf("chain %s: rod length differs between poses: %f vs %f", ch, dClosed, dOpen)
		}
	}
}

func TestAdaptLayoutPreservesContainment(t *testing.T) {
	g1 := mustGeometry(t, DefaultParams())
	l1 := g1.DefaultLayout()

	p2 := Params{H: 50, W: 70, D: 15, Alpha: 80, G: 2}
	g2 := mustGeometry(t, p2)
	l2 := g2.AdaptLayout(g1, l1)

	for _, c := range []Chain{ChainA, ChainB} {
		cp := l2.Chain(c)
		if !g2.InClosedLid(cp.Closed) {
			t.Errorf("chain %s: adapted lid pivot %s outside new lid", c, cp.Closed)
		}
		line := g2.ConstraintLine(cp.Closed)
		if line.Project(cp.Box).Distance(cp.Box) > 1e-9 {
			t.Errorf("chain %s: adapted box pivot off constraint line", c)
		}
	}
}

func TestNormalizeLayoutRepairsOffLineBoxPivot(t *testing.T) {
	g := mustGeometry(t, DefaultParams())
	l := g.DefaultLayout()

	// Knock chain B's box pivot off its constraint line.
	l.B.Box = geom.Pt(30, 15)
	center := g.Center()
	before := l.B
	if math.Abs(before.Box.Distance(before.Closed)-before.Box.Distance(before.Open(center))) < 1e-6 {
		t.Fatal("test point should violate the equidistance before repair")
	}

	fixed, err := g.NormalizeLayout(l)
	if err != nil {
		t.Fatalf("NormalizeLayout: %v", err)
	}
	cp := fixed.B
	if d := math.Abs(cp.Box.Distance(cp.Closed) - cp.Box.Distance(cp.Open(center))); d > 1e-9 {
		t.Errorf("equidistance not restored, diff %g", d)
	}
	line := g.ConstraintLine(cp.Closed)
	if line.Project(cp.Box).Distance(cp.Box) > 1e-9 {
		t.Error("repaired box pivot should sit on the constraint line")
	}
	if fixed.A.Box.Distance(l.A.Box) > 1e-9 || fixed.A.Closed != l.A.Closed {
		t.Error("a chain already on its constraint line must be unchanged")
	}
}

func TestNormalizeLayoutRejectsLidPivotOutsideLid(t *testing.T) {
	g := mustGeometry(t, DefaultParams())
	l := g.DefaultLayout()
	l.A.Closed = geom.Pt(5, 5) // inside the box, not the lid

	if _, err := g.NormalizeLayout(l); err == nil {
		t.Error("expected error for lid pivot outside the closed lid")
	}
}

func TestLayoutChainAccessors(t *testing.T) {
	var l Layout
	cp := ChainPivots{Closed: geom.Pt(1, 2), Box: geom.Pt(3, 4)}
	l.SetChain(ChainB, cp)
	if l.Chain(ChainB) != cp {
		t.Error("SetChain/Chain round trip failed for chain B")
	}
	if l.Chain(ChainA) == cp {
		t.Error("chain A should be unaffected")
	}
	if ChainA.Other() != ChainB || ChainB.Other() != ChainA {
		t.Error("Other should swap chains")
	}
}
