package curve

import (
	"math/big"
	"testing"
)

func TestPairIdentityIsOne(t *testing.T) {
	g := G1Generator()
	h := G2Generator()
	if !Pair(G1Identity(), h).IsOne() {
		t.Fatal("e(0, h) != 1")
	}
	if !Pair(g, G2Identity()).IsOne() {
		t.Fatal("e(g, 0) != 1")
	}
}

func TestPairBilinearity(t *testing.T) {
	g := G1Generator()
	h := G2Generator()

	a := big.NewInt(4)
	b := big.NewInt(11)

	lhs := Pair(g.ScalarMul(a), h.ScalarMul(b))
	rhs := Pair(g.ScalarMul(new(big.Int).Mul(a, b)), h)

	if !lhs.Equal(rhs) {
		t.Fatal("e(a*g, b*h) != e(ab*g, h)")
	}
}

func TestPairingCheckMatchesEqualPairs(t *testing.T) {
	g := G1Generator()
	h := G2Generator()

	a := big.NewInt(6)
	// e(a*g, h) * e(g, -a*h) should equal 1.
	ok := PairingCheck(
		[]G1{g.ScalarMul(a), g},
		[]G2{h, h.ScalarMul(a).Neg()},
	)
	if !ok {
		t.Fatal("PairingCheck should hold for e(aP,Q)*e(P,-aQ) == 1")
	}
}
