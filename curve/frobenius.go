package curve

import "math/big"

func bigFromStr(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("curve: invalid frobenius constant " + s)
	}
	return v
}

// Frobenius coefficients for the p, p^2, and p^3 power maps on F_p^12,
// expressed tower-coefficient by tower-coefficient in F_p^2.
var (
	frobC1_1 = &fp2{a0: bigFromStr("21575463638280843010398324269430826099269044274347216827212613867836435027261"), a1: bigFromStr("10307601595873709700152284273816112264069230130616436755625194854815875713954")}
	frobC1_2 = &fp2{a0: bigFromStr("2821565182194536844548159561693502659359617185244120367078079554186484126554"), a1: bigFromStr("3505843767911556378687030309984248845540243509899259641013678093033130930403")}
	frobC1_3 = &fp2{a0: bigFromStr("2581911344467009335267311115468803099551665605076196740867805258568234346338"), a1: bigFromStr("19937756971775647987995932169929341994314640652964949448313374472400716661030")}
	frobC1_4 = &fp2{a0: bigFromStr("685108087231508774477564247770172212460312782337200605669322048753928464687"), a1: bigFromStr("8447204650696766136447902020341177575205426561248465145919723016860428151883")}
	frobC1_5 = &fp2{a0: bigFromStr("21575463638280843010398324269430826099269044274347216827212613867836435027261"), a1: bigFromStr("10307601595873709700152284273816112264069230130616436755625194854815875713954")}

	frobC2_1 = &fp2{a0: bigFromStr("21888242871839275220042445260109153167277707414472061641714758635765020556616"), a1: new(big.Int)}
	frobC2_2 = &fp2{a0: bigFromStr("21888242871839275222246405745257275088696311157297823662689037894645226208582"), a1: new(big.Int)}
	frobC2_3 = &fp2{a0: bigFromStr("3772000881919853776433695186713858239009073593817195771773381919316419345261"), a1: new(big.Int)}
	frobC2_4 = &fp2{a0: bigFromStr("2203960485148121921418603742825762020974279258880205651966"), a1: new(big.Int)}
	frobC2_5 = &fp2{a0: bigFromStr("2203960485148121921418603742825762020974279258880205651967"), a1: new(big.Int)}

	frobC3_1 = &fp2{a0: bigFromStr("3505843767911556378687030309984248845540243509899259641013678093033130930403"), a1: bigFromStr("2821565182194536844548159561693502659359617185244120367078079554186484126554")}
	frobC3_2 = &fp2{a0: bigFromStr("19937756971775647987995932169929341994314640652964949448313374472400716661030"), a1: bigFromStr("2581911344467009335267311115468803099551665605076196740867805258568234346338")}
	frobC3_3 = &fp2{a0: bigFromStr("10307601595873709700152284273816112264069230130616436755625194854815875713954"), a1: bigFromStr("21575463638280843010398324269430826099269044274347216827212613867836435027261")}
	frobC3_4 = &fp2{a0: bigFromStr("8447204650696766136447902020341177575205426561248465145919723016860428151883"), a1: bigFromStr("685108087231508774477564247770172212460312782337200605669322048753928464687")}
	frobC3_5 = &fp2{a0: bigFromStr("10307601595873709700152284273816112264069230130616436755625194854815875713954"), a1: bigFromStr("21575463638280843010398324269430826099269044274347216827212613867836435027261")}
)

// fp12FrobeniusEfficient applies the p-power Frobenius endomorphism.
func fp12FrobeniusEfficient(x *fp12) *fp12 {
	c00 := fp2Conj(x.c0.c0)
	c01 := fp2Mul(fp2Conj(x.c0.c1), frobC1_2)
	c02 := fp2Mul(fp2Conj(x.c0.c2), frobC1_4)
	c10 := fp2Mul(fp2Conj(x.c1.c0), frobC1_1)
	c11 := fp2Mul(fp2Conj(x.c1.c1), frobC1_3)
	c12 := fp2Mul(fp2Conj(x.c1.c2), frobC1_5)
	return &fp12{
		c0: &fp6{c0: c00, c1: c01, c2: c02},
		c1: &fp6{c0: c10, c1: c11, c2: c12},
	}
}

// fp12FrobeniusSqEfficient applies the p^2-power Frobenius endomorphism.
func fp12FrobeniusSqEfficient(x *fp12) *fp12 {
	c00 := x.c0.c0.clone()
	c01 := fp2Mul(x.c0.c1, frobC2_2)
	c02 := fp2Mul(x.c0.c2, frobC2_4)
	c10 := fp2Mul(x.c1.c0, frobC2_1)
	c11 := fp2Mul(x.c1.c1, frobC2_3)
	c12 := fp2Mul(x.c1.c2, frobC2_5)
	return &fp12{
		c0: &fp6{c0: c00, c1: c01, c2: c02},
		c1: &fp6{c0: c10, c1: c11, c2: c12},
	}
}

// fp12FrobeniusCubeEfficient applies the p^3-power Frobenius endomorphism.
func fp12FrobeniusCubeEfficient(x *fp12) *fp12 {
	c00 := fp2Conj(x.c0.c0)
	c01 := fp2Mul(fp2Conj(x.c0.c1), frobC3_2)
	c02 := fp2Mul(fp2Conj(x.c0.c2), frobC3_4)
	c10 := fp2Mul(fp2Conj(x.c1.c0), frobC3_1)
	c11 := fp2Mul(fp2Conj(x.c1.c1), frobC3_3)
	c12 := fp2Mul(fp2Conj(x.c1.c2), frobC3_5)
	return &fp12{
		c0: &fp6{c0: c00, c1: c01, c2: c02},
		c1: &fp6{c0: c10, c1: c11, c2: c12},
	}
}
