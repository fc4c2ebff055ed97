// Package wire implements the canonical binary encoding (C9) for public
// keys, accumulator values, and set-operation proofs: magic bytes, a
// version byte, then length-checked fields in a fixed order. Round-trips
// are bit-exact; any framing error surfaces errs.ErrMalformedInput.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/value"
	"github.com/vchainplus/vchain/curve"
	"github.com/vchainplus/vchain/errs"
	"github.com/vchainplus/vchain/setop"
)

var magic = [4]byte{'v', 'c', 'h', 'n'}

const version byte = 0x01

const (
	kindPublicKey byte = 1
	kindValue     byte = 2
	kindProof     byte = 3
	kindKeyPair   byte = 4
)

// header is magic(4) || version(1) || kind(1) || qMax(4, little-endian).
const headerSize = 10

func writeHeader(kind byte, qMax uint32) []byte {
	out := make([]byte, headerSize)
	copy(out[0:4], magic[:])
	out[4] = version
	out[5] = kind
	binary.LittleEndian.PutUint32(out[6:10], qMax)
	return out
}

func readHeader(b []byte, wantKind byte) (qMax uint32, rest []byte, err error) {
	if len(b) < headerSize {
		return 0, nil, fmt.Errorf("%w: buffer shorter than header", errs.ErrMalformedInput)
	}
	if [4]byte(b[0:4]) != magic {
		return 0, nil, fmt.Errorf("%w: bad magic bytes", errs.ErrMalformedInput)
	}
	if b[4] != version {
		return 0, nil, fmt.Errorf("%w: unsupported version %d", errs.ErrMalformedInput, b[4])
	}
	if b[5] != wantKind {
		return 0, nil, fmt.Errorf("%w: kind %d, want %d", errs.ErrMalformedInput, b[5], wantKind)
	}
	qMax = binary.LittleEndian.Uint32(b[6:10])
	return qMax, b[headerSize:], nil
}

// putLenPrefixed appends a uint32 length prefix followed by data.
func putLenPrefixed(buf []byte, data []byte) []byte {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf = append(buf, lenBuf[:]...)
	return append(buf, data...)
}

func takeLenPrefixed(b []byte) (data []byte, rest []byte, err error) {
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("%w: truncated length prefix", errs.ErrMalformedInput)
	}
	n := binary.LittleEndian.Uint32(b[0:4])
	b = b[4:]
	if uint32(len(b)) < n {
		return nil, nil, fmt.Errorf("%w: truncated field, want %d bytes have %d", errs.ErrMalformedInput, n, len(b))
	}
	return b[:n], b[n:], nil
}

// EncodeValue serializes an accumulator value (A1, A2).
func EncodeValue(a1 curve.G1, a2 curve.G2) []byte {
	out := writeHeader(kindValue, 0)
	out = putLenPrefixed(out, a1.Marshal())
	out = putLenPrefixed(out, a2.Marshal())
	return out
}

// DecodeValue deserializes bytes produced by EncodeValue.
func DecodeValue(b []byte) (a1 curve.G1, a2 curve.G2, err error) {
	_, rest, err := readHeader(b, kindValue)
	if err != nil {
		return curve.G1{}, curve.G2{}, err
	}
	a1Bytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return curve.G1{}, curve.G2{}, err
	}
	a2Bytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return curve.G1{}, curve.G2{}, err
	}
	if len(rest) != 0 {
		return curve.G1{}, curve.G2{}, fmt.Errorf("%w: trailing bytes after value", errs.ErrMalformedInput)
	}
	a1, err = curve.UnmarshalG1(a1Bytes)
	if err != nil {
		return curve.G1{}, curve.G2{}, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	a2, err = curve.UnmarshalG2(a2Bytes)
	if err != nil {
		return curve.G1{}, curve.G2{}, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	return a1, a2, nil
}

// EncodeProof serializes a set-operation proof.
func EncodeProof(p *setop.Proof) []byte {
	out := writeHeader(kindProof, 0)
	out = append(out, byte(p.Op))
	trivial := byte(0)
	if p.Trivial {
		trivial = 1
	}
	out = append(out, trivial)
	out = putLenPrefixed(out, p.WG.Marshal())
	out = putLenPrefixed(out, p.WGBeta.Marshal())
	out = putLenPrefixed(out, p.BR.Marshal())
	out = putLenPrefixed(out, p.BRBeta.Marshal())
	out = putLenPrefixed(out, p.InterR.Marshal())
	out = putLenPrefixed(out, p.InterRBeta.Marshal())
	out = putLenPrefixed(out, p.AInter.A1.Marshal())
	out = putLenPrefixed(out, p.AInter.A2.Marshal())
	return out
}

// DecodeProof deserializes bytes produced by EncodeProof.
func DecodeProof(b []byte) (*setop.Proof, error) {
	_, rest, err := readHeader(b, kindProof)
	if err != nil {
		return nil, err
	}
	if len(rest) < 2 {
		return nil, fmt.Errorf("%w: truncated proof op/trivial fields", errs.ErrMalformedInput)
	}
	op := setop.Op(rest[0])
	trivial := rest[1] != 0
	rest = rest[2:]

	wgBytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	wgBetaBytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	brBytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	brBetaBytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	interRBytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	interRBetaBytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	a1Bytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	a2Bytes, rest, err := takeLenPrefixed(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after proof", errs.ErrMalformedInput)
	}

	wg, err := curve.UnmarshalG1(wgBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	wgBeta, err := curve.UnmarshalG1(wgBetaBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	br, err := curve.UnmarshalG2(brBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	brBeta, err := curve.UnmarshalG2(brBetaBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	interR, err := curve.UnmarshalG1(interRBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	interRBeta, err := curve.UnmarshalG1(interRBetaBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	a1, err := curve.UnmarshalG1(a1Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	a2, err := curve.UnmarshalG2(a2Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	return &setop.Proof{
		Op:         op,
		WG:         wg,
		WGBeta:     wgBeta,
		BR:         br,
		BRBeta:     brBeta,
		InterR:     interR,
		InterRBeta: interRBeta,
		AInter:     value.Value{A1: a1, A2: a2},
		Trivial:    trivial,
	}, nil
}

// EncodePublicKey serializes the public key's dense vectors and sparse
// G_rs/G_rs^beta tables. The G_rs tables are encoded as a count followed by
// (i, j, point) triples, in ascending (i, j) order for determinism.
func EncodePublicKey(pk *keys.PublicKey) []byte {
	out := writeHeader(kindPublicKey, uint32(pk.QMax))
	return encodePublicKeyBody(out, pk)
}

func encodePublicKeyBody(out []byte, pk *keys.PublicKey) []byte {
	for _, g := range pk.Gs {
		out = append(out, g.Marshal()...)
	}
	for _, h := range pk.Hs {
		out = append(out, h.Marshal()...)
	}
	for _, h := range pk.Hbs {
		out = append(out, h.Marshal()...)
	}
	out = append(out, pk.Gb.Marshal()...)
	out = append(out, pk.Hb.Marshal()...)
	out = append(out, pk.HsExt.Marshal()...)

	out = appendSparseG1Table(out, pk.Grs)
	out = appendSparseG1Table(out, pk.GrsBeta)
	out = appendSparseG2Table(out, pk.Hrs)
	out = appendSparseG2Table(out, pk.HrsBeta)

	return out
}

// DecodePublicKey deserializes bytes produced by EncodePublicKey.
func DecodePublicKey(b []byte) (*keys.PublicKey, error) {
	qMax, rest, err := readHeader(b, kindPublicKey)
	if err != nil {
		return nil, err
	}
	pk, _, err := decodePublicKeyBody(rest, uint64(qMax))
	return pk, err
}

func decodePublicKeyBody(b []byte, qMax uint64) (*keys.PublicKey, []byte, error) {
	pk := &keys.PublicKey{QMax: qMax}

	pk.Gs = make([]curve.G1, qMax)
	for i := range pk.Gs {
		g, rest, err := takeFixed(b, 64)
		if err != nil {
			return nil, nil, err
		}
		pk.Gs[i], err = curve.UnmarshalG1(g)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
		b = rest
	}

	pk.Hs = make([]curve.G2, qMax)
	for i := range pk.Hs {
		h, rest, err := takeFixed(b, 128)
		if err != nil {
			return nil, nil, err
		}
		pk.Hs[i], err = curve.UnmarshalG2(h)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
		b = rest
	}

	pk.Hbs = make([]curve.G2, qMax)
	for i := range pk.Hbs {
		h, rest, err := takeFixed(b, 128)
		if err != nil {
			return nil, nil, err
		}
		pk.Hbs[i], err = curve.UnmarshalG2(h)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
		b = rest
	}

	gbBytes, b, err := takeFixed(b, 64)
	if err != nil {
		return nil, nil, err
	}
	pk.Gb, err = curve.UnmarshalG1(gbBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	hbBytes, b, err := takeFixed(b, 128)
	if err != nil {
		return nil, nil, err
	}
	pk.Hb, err = curve.UnmarshalG2(hbBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	hsExtBytes, b, err := takeFixed(b, 128)
	if err != nil {
		return nil, nil, err
	}
	pk.HsExt, err = curve.UnmarshalG2(hsExtBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	pk.Grs, b, err = decodeSparseG1Table(b)
	if err != nil {
		return nil, nil, err
	}
	pk.GrsBeta, b, err = decodeSparseG1Table(b)
	if err != nil {
		return nil, nil, err
	}
	pk.Hrs, b, err = decodeSparseG2Table(b)
	if err != nil {
		return nil, nil, err
	}
	pk.HrsBeta, b, err = decodeSparseG2Table(b)
	if err != nil {
		return nil, nil, err
	}

	return pk, b, nil
}

func takeFixed(b []byte, n int) ([]byte, []byte, error) {
	if len(b) < n {
		return nil, nil, fmt.Errorf("%w: expected %d more bytes, have %d", errs.ErrMalformedInput, n, len(b))
	}
	return b[:n], b[n:], nil
}

func decodeSparseG1Table(b []byte) (*keys.SparseG1Table, []byte, error) {
	countBytes, b, err := takeFixed(b, 8)
	if err != nil {
		return nil, nil, err
	}
	count := binary.LittleEndian.Uint64(countBytes)
	table := keys.NewSparseG1Table(int(count))
	for k := uint64(0); k < count; k++ {
		idxBytes, rest, err := takeFixed(b, 16)
		if err != nil {
			return nil, nil, err
		}
		i := binary.LittleEndian.Uint64(idxBytes[0:8])
		j := binary.LittleEndian.Uint64(idxBytes[8:16])
		ptBytes, rest2, err := takeFixed(rest, 64)
		if err != nil {
			return nil, nil, err
		}
		pt, err := curve.UnmarshalG1(ptBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
		table.Set(i, j, pt)
		b = rest2
	}
	return table, b, nil
}

func decodeSparseG2Table(b []byte) (*keys.SparseG2Table, []byte, error) {
	countBytes, b, err := takeFixed(b, 8)
	if err != nil {
		return nil, nil, err
	}
	count := binary.LittleEndian.Uint64(countBytes)
	table := keys.NewSparseG2Table(int(count))
	for k := uint64(0); k < count; k++ {
		idxBytes, rest, err := takeFixed(b, 16)
		if err != nil {
			return nil, nil, err
		}
		i := binary.LittleEndian.Uint64(idxBytes[0:8])
		j := binary.LittleEndian.Uint64(idxBytes[8:16])
		ptBytes, rest2, err := takeFixed(rest, 128)
		if err != nil {
			return nil, nil, err
		}
		pt, err := curve.UnmarshalG2(ptBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
		}
		table.Set(i, j, pt)
		b = rest2
	}
	return table, b, nil
}

// EncodeKeyPair serializes both the secret and public key, as gen_key
// writes to disk: header, then the three secret scalars, then the public
// key body.
func EncodeKeyPair(sk *keys.SecretKey, pk *keys.PublicKey) []byte {
	out := writeHeader(kindKeyPair, uint32(pk.QMax))
	out = append(out, sk.S.Bytes()...)
	out = append(out, sk.R.Bytes()...)
	out = append(out, sk.Beta.Bytes()...)
	return encodePublicKeyBody(out, pk)
}

// DecodeKeyPair deserializes bytes produced by EncodeKeyPair. The secret
// key's derived power caches are rebuilt from the decoded scalars, exactly
// as GenKeys would have built them.
func DecodeKeyPair(b []byte) (*keys.SecretKey, *keys.PublicKey, error) {
	qMax, rest, err := readHeader(b, kindKeyPair)
	if err != nil {
		return nil, nil, err
	}
	sBytes, rest, err := takeFixed(rest, 32)
	if err != nil {
		return nil, nil, err
	}
	rBytes, rest, err := takeFixed(rest, 32)
	if err != nil {
		return nil, nil, err
	}
	betaBytes, rest, err := takeFixed(rest, 32)
	if err != nil {
		return nil, nil, err
	}

	s, err := curve.ScalarFromBytes(sBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	r, err := curve.ScalarFromBytes(rBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	beta, err := curve.ScalarFromBytes(betaBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}

	pk, _, err := decodePublicKeyBody(rest, uint64(qMax))
	if err != nil {
		return nil, nil, err
	}

	sk := keys.RebuildSecretKey(s, r, beta, uint64(qMax))
	return sk, pk, nil
}

// appendSparseG1Table serializes a sparse G_rs-shaped table as a count
// followed by (i, j, point) triples in ascending (i, j) order, using the
// table's own populated-entry list rather than assuming a dense index
// range (the table's (i, j) domain is a full rectangle, not bounded by
// q_max on both axes).
func appendSparseG1Table(out []byte, t *keys.SparseG1Table) []byte {
	entries := t.Entries()
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(len(entries)))
	out = append(out, countBuf[:]...)
	for _, e := range entries {
		var idx [16]byte
		binary.LittleEndian.PutUint64(idx[0:8], e.I)
		binary.LittleEndian.PutUint64(idx[8:16], e.J)
		out = append(out, idx[:]...)
		out = append(out, e.V.Marshal()...)
	}
	return out
}

// appendSparseG2Table is the G2 analogue of appendSparseG1Table.
func appendSparseG2Table(out []byte, t *keys.SparseG2Table) []byte {
	entries := t.Entries()
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(len(entries)))
	out = append(out, countBuf[:]...)
	for _, e := range entries {
		var idx [16]byte
		binary.LittleEndian.PutUint64(idx[0:8], e.I)
		binary.LittleEndian.PutUint64(idx[8:16], e.J)
		out = append(out, idx[:]...)
		out = append(out, e.V.Marshal()...)
	}
	return out
}

