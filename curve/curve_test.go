package curve

import (
	"math/big"
	"testing"
)

func TestG1GeneratorOnCurve(t *testing.T) {
	g := G1Generator()
	if !g.IsOnCurve() {
		t.Fatal("G1 generator does not satisfy the curve equation")
	}
}

func TestG2GeneratorOnCurve(t *testing.T) {
	g := G2Generator()
	if !g.IsOnCurve() {
		t.Fatal("G2 generator does not satisfy the curve equation")
	}
}

func TestG1AddDoubleConsistency(t *testing.T) {
	g := G1Generator()
	sum := g.Add(g)
	dbl := g.Double()
	if !sum.Equal(dbl) {
		t.Fatal("g+g != 2g")
	}
}

func TestG1ScalarMulMatchesRepeatedAdd(t *testing.T) {
	g := G1Generator()
	five := g.Add(g).Add(g).Add(g).Add(g)
	viaMul := g.ScalarMul(big.NewInt(5))
	if !five.Equal(viaMul) {
		t.Fatal("5*g via repeated add != 5*g via ScalarMul")
	}
}

func TestG1IdentityIsAdditiveIdentity(t *testing.T) {
	g := G1Generator()
	id := G1Identity()
	if !g.Add(id).Equal(g) {
		t.Fatal("g + identity != g")
	}
	if !g.Sub(g).Equal(id) {
		t.Fatal("g - g != identity")
	}
}

func TestG1MarshalRoundTrip(t *testing.T) {
	g := G1Generator().ScalarMul(big.NewInt(12345))
	enc := g.Marshal()
	dec, err := UnmarshalG1(enc)
	if err != nil {
		t.Fatalf("UnmarshalG1: %v", err)
	}
	if !g.Equal(dec) {
		t.Fatal("round-tripped point does not match original")
	}
}

func TestG2MarshalRoundTrip(t *testing.T) {
	g := G2Generator().ScalarMul(big.NewInt(98765))
	enc := g.Marshal()
	dec, err := UnmarshalG2(enc)
	if err != nil {
		t.Fatalf("UnmarshalG2: %v", err)
	}
	if !g.Equal(dec) {
		t.Fatal("round-tripped point does not match original")
	}
}

func TestScalarArithmetic(t *testing.T) {
	a := ScalarFromUint64(7)
	b := ScalarFromUint64(3)
	if !a.Add(b).Equal(ScalarFromUint64(10)) {
		t.Fatal("7+3 != 10")
	}
	if !a.Sub(b).Equal(ScalarFromUint64(4)) {
		t.Fatal("7-3 != 4")
	}
	if !a.Mul(b).Equal(ScalarFromUint64(21)) {
		t.Fatal("7*3 != 21")
	}
}

func TestScalarInverse(t *testing.T) {
	a := ScalarFromUint64(42)
	inv := a.Inv()
	if !a.Mul(inv).Equal(ScalarFromUint64(1)) {
		t.Fatal("a * a^-1 != 1")
	}
}

func TestPowerCacheMatchesExp(t *testing.T) {
	x := ScalarFromUint64(3)
	cache := NewPowerCache(x, 10)
	for i := uint64(0); i <= 10; i++ {
		if !cache.At(i).Equal(x.Exp(i)) {
			t.Fatalf("cache.At(%d) != x^%d", i, i)
		}
	}
}

func TestPowerCacheParallelMatchesSequential(t *testing.T) {
	x := ScalarFromUint64(5)
	seq := NewPowerCache(x, 200)
	par, err := NewPowerCacheParallel(x, 200)
	if err != nil {
		t.Fatalf("NewPowerCacheParallel: %v", err)
	}
	for i := uint64(0); i <= 200; i++ {
		if !seq.At(i).Equal(par.At(i)) {
			t.Fatalf("sequential and parallel power caches diverge at %d", i)
		}
	}
}

func TestG1TableMatchesScalarMul(t *testing.T) {
	g := G1Generator()
	table := NewG1Table(g, 4)
	for _, k := range []int64{0, 1, 2, 17, 255, 4096, 123456} {
		want := g.ScalarMul(big.NewInt(k))
		got := table.ScalarMul(big.NewInt(k))
		if !want.Equal(got) {
			t.Fatalf("table scalar mul mismatch for k=%d", k)
		}
	}
}

func TestMSMG1MatchesNaiveSum(t *testing.T) {
	g := G1Generator()
	scalars := []Scalar{ScalarFromUint64(3), ScalarFromUint64(5), ScalarFromUint64(11)}
	points := []G1{g, g.ScalarMul(big.NewInt(2)), g.ScalarMul(big.NewInt(7))}

	want := G1Identity()
	for i, s := range scalars {
		want = want.Add(points[i].ScalarMul(s.Int()))
	}

	got, err := MSMG1(scalars, points)
	if err != nil {
		t.Fatalf("MSMG1: %v", err)
	}
	if !want.Equal(got) {
		t.Fatal("MSMG1 result does not match naive accumulation")
	}
}

func TestMSMLengthMismatch(t *testing.T) {
	_, err := MSMG1([]Scalar{ScalarFromUint64(1)}, nil)
	if err != ErrMSMLengthMismatch {
		t.Fatalf("expected ErrMSMLengthMismatch, got %v", err)
	}
}
