package wire

import (
	"errors"
	"testing"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/accum/value"
	"github.com/vchainplus/vchain/errs"
	"github.com/vchainplus/vchain/setop"
)

func TestValueRoundTrip(t *testing.T) {
	_, pk, err := keys.GenKeys(8)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	x, _ := set.New(8, 1, 2, 3)
	v, err := value.Accumulate(pk, x)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}

	enc := EncodeValue(v.A1, v.A2)
	a1, a2, err := DecodeValue(enc)
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if !a1.Equal(v.A1) || !a2.Equal(v.A2) {
		t.Fatal("decoded value does not match original")
	}
}

func TestProofRoundTrip(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	l, _ := set.New(16, 1, 3, 5)
	r, _ := set.New(16, 3, 5, 7)
	_, _, proof, err := setop.ProveOp(setop.Intersect, pk, l, r)
	if err != nil {
		t.Fatalf("ProveOp: %v", err)
	}

	enc := EncodeProof(proof)
	dec, err := DecodeProof(enc)
	if err != nil {
		t.Fatalf("DecodeProof: %v", err)
	}
	if dec.Op != proof.Op || dec.Trivial != proof.Trivial {
		t.Fatal("decoded proof tags do not match")
	}
	if !dec.WG.Equal(proof.WG) || !dec.WGBeta.Equal(proof.WGBeta) {
		t.Fatal("decoded proof witness commitments do not match")
	}
	if !dec.BR.Equal(proof.BR) || !dec.BRBeta.Equal(proof.BRBeta) {
		t.Fatal("decoded proof poly_b(R) commitments do not match")
	}
	if !dec.InterR.Equal(proof.InterR) || !dec.InterRBeta.Equal(proof.InterRBeta) {
		t.Fatal("decoded proof intersection commitments do not match")
	}
	if !dec.AInter.A1.Equal(proof.AInter.A1) || !dec.AInter.A2.Equal(proof.AInter.A2) {
		t.Fatal("decoded proof intersection accumulator does not match")
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	_, pk, err := keys.GenKeys(6)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	enc := EncodePublicKey(pk)
	dec, err := DecodePublicKey(enc)
	if err != nil {
		t.Fatalf("DecodePublicKey: %v", err)
	}
	if dec.QMax != pk.QMax {
		t.Fatalf("q_max = %d, want %d", dec.QMax, pk.QMax)
	}
	for i := uint64(0); i < pk.QMax; i++ {
		if !dec.Gs[i].Equal(pk.Gs[i]) {
			t.Fatalf("Gs[%d] mismatch after round trip", i)
		}
		if !dec.Hs[i].Equal(pk.Hs[i]) {
			t.Fatalf("Hs[%d] mismatch after round trip", i)
		}
		if !dec.Hbs[i].Equal(pk.Hbs[i]) {
			t.Fatalf("Hbs[%d] mismatch after round trip", i)
		}
	}
	if !dec.Gb.Equal(pk.Gb) || !dec.Hb.Equal(pk.Hb) {
		t.Fatal("Gb/Hb mismatch after round trip")
	}
	span := pk.QMax * 2
	for i := uint64(0); i < pk.QMax; i++ {
		for j := uint64(0); j < span; j++ {
			want, err := pk.Grs.At(i, j)
			if err != nil {
				continue
			}
			got, err := dec.Grs.At(i, j)
			if err != nil {
				t.Fatalf("decoded Grs missing entry (%d,%d)", i, j)
			}
			if !got.Equal(want) {
				t.Fatalf("Grs[%d][%d] mismatch after round trip", i, j)
			}

			wantH, err := pk.Hrs.At(i, j)
			if err != nil {
				continue
			}
			gotH, err := dec.Hrs.At(i, j)
			if err != nil {
				t.Fatalf("decoded Hrs missing entry (%d,%d)", i, j)
			}
			if !gotH.Equal(wantH) {
				t.Fatalf("Hrs[%d][%d] mismatch after round trip", i, j)
			}
		}
	}
	if !dec.HsExt.Equal(pk.HsExt) {
		t.Fatal("HsExt mismatch after round trip")
	}
}

func TestKeyPairRoundTrip(t *testing.T) {
	sk, pk, err := keys.GenKeys(6)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}

	enc := EncodeKeyPair(sk, pk)
	decSK, decPK, err := DecodeKeyPair(enc)
	if err != nil {
		t.Fatalf("DecodeKeyPair: %v", err)
	}
	if !decSK.S.Equal(sk.S) || !decSK.R.Equal(sk.R) || !decSK.Beta.Equal(sk.Beta) {
		t.Fatal("decoded secret key scalars do not match")
	}
	if !decSK.SPow(3).Equal(sk.SPow(3)) || !decSK.RPow(4).Equal(sk.RPow(4)) {
		t.Fatal("decoded secret key power caches do not match")
	}
	if decPK.QMax != pk.QMax {
		t.Fatalf("q_max = %d, want %d", decPK.QMax, pk.QMax)
	}
	if !decPK.Gs[2].Equal(pk.Gs[2]) {
		t.Fatal("decoded public key body does not match")
	}
}

func TestDecodeValueRejectsBadMagic(t *testing.T) {
	buf := make([]byte, headerSize+8)
	_, _, err := DecodeValue(buf)
	if err == nil {
		t.Fatal("expected malformed-input error for bad magic")
	}
}

func TestDecodeValueRejectsTruncatedBuffer(t *testing.T) {
	_, _, err := DecodeValue([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected malformed-input error for truncated buffer")
	}
	if !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected errs.ErrMalformedInput, got %v", err)
	}
}
