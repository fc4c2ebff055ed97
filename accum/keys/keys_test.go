package keys

import (
	"testing"

	"github.com/vchainplus/vchain/curve"
)

func TestGenKeysRejectsZeroUniverse(t *testing.T) {
	if _, _, err := GenKeys(0); err == nil {
		t.Fatal("expected error for q_max == 0")
	}
}

func TestGenKeysBasicShape(t *testing.T) {
	sk, pk, err := GenKeys(8)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	if len(pk.Gs) != 8 || len(pk.Hs) != 8 || len(pk.Hbs) != 8 {
		t.Fatalf("public key vectors have wrong length: got Gs=%d Hs=%d Hbs=%d", len(pk.Gs), len(pk.Hs), len(pk.Hbs))
	}
	if pk.Grs.Len() == 0 {
		t.Fatal("G_rs table is empty")
	}
	if sk.S.IsZero() || sk.R.IsZero() || sk.Beta.IsZero() {
		t.Fatal("sampled a zero secret scalar")
	}
}

func TestGenKeysGsMatchesSPow(t *testing.T) {
	sk, pk, err := GenKeys(6)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	g := pk.Gs[3]
	want := curve.G1Generator().ScalarMul(sk.SPow(3).Int())
	if !g.Equal(want) {
		t.Fatal("Gs[3] != g^(s^3)")
	}
}

func TestGrsCoversFullRectangleNotJustTriangle(t *testing.T) {
	_, pk, err := GenKeys(6)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	// The witness's S-exponent (j) can fall below its R-exponent (i, the
	// row), unlike a triangular SRS -- see setop.grsTableIndex.
	if _, err := pk.Grs.At(4, 1); err != nil {
		t.Fatalf("Grs[4][1]: %v, want a populated entry below the diagonal", err)
	}
	// And j must reach past q_max, since the Cauchy product's S-exponent
	// can reach 2*q_max-1.
	if _, err := pk.Grs.At(0, 2*6-1); err != nil {
		t.Fatalf("Grs[0][%d]: %v, want a populated entry", 2*6-1, err)
	}
}

func TestGrsIncompleteKeyOutOfRange(t *testing.T) {
	_, pk, err := GenKeys(6)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	if _, err := pk.Grs.At(6, 0); err == nil {
		t.Fatal("expected incomplete-key error for r-power index >= q_max")
	}
	if _, err := pk.Grs.At(0, 2*6); err == nil {
		t.Fatal("expected incomplete-key error for s-power index >= 2*q_max")
	}
}
