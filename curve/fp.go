// Package curve implements the pairing-friendly arithmetic facade (BN254)
// that the accumulator, polynomial engine, and set-operation proofs are
// built on: base/tower field arithmetic, G1/G2 Jacobian point arithmetic,
// the optimal Ate pairing, and fixed-base precompute tables for
// multi-scalar multiplication.
package curve

import "math/big"

// p is the BN254 base field modulus.
var p, _ = new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)

// n is the BN254 scalar field modulus (curve order r).
var n, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// curveB is the short Weierstrass coefficient for the G1 curve y^2 = x^3 + b.
var curveB = big.NewInt(3)

func fpAdd(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, p)
}

func fpSub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, p)
}

func fpMul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, p)
}

func fpNeg(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(p, a)
}

func fpInv(a *big.Int) *big.Int {
	return new(big.Int).ModInverse(a, p)
}

func fpSqr(a *big.Int) *big.Int {
	return fpMul(a, a)
}

func fpExp(a, e *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, p)
}
