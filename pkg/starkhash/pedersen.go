// Copyright 2025 StarkHash Project
//
// Two-input Pedersen hash over the STARK curve.

package starkhash

import (
	"math/big"

	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
)

// lowBits is the width of the low scalar chunk in StarkWare's
// point-splitting construction: each input is split into a 248-bit low
// part and a small high part (field elements are under 2^251), and each
// part is scalar-multiplied against its own fixed generator before the
// results are summed with a fixed shift point.
const lowBits = 248

var lowMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), lowBits), big.NewInt(1))

// curvePoint is a STARK-curve generator given in decimal coordinates, the
// form StarkWare publishes its hash parameters in.
type curvePoint struct {
	x, y string
}

func (c curvePoint) affine() starkcurve.G1Affine {
	var p starkcurve.G1Affine
	x, ok := new(big.Int).SetString(c.x, 10)
	if !ok {
		panic("starkhash: malformed generator x coordinate")
	}
	y, ok := new(big.Int).SetString(c.y, 10)
	if !ok {
		panic("starkhash: malformed generator y coordinate")
	}
	p.X.SetBigInt(x)
	p.Y.SetBigInt(y)
	return p
}

// Fixed Pedersen-hash generators for the STARK curve, per StarkWare's
// published hash parameters. shiftPoint seeds the accumulator; p1/p2 carry
// the first input's low/high chunk, p3/p4 the second input's.
var (
	shiftPoint = curvePoint{
		x: "2089986280348253421170679821480865132823066470938446095505822317253594081284",
		y: "1713931329540660377023406109199410414810705867260802078187082345529207694986",
	}
	p1 = curvePoint{
		x: "996781205833008774514500082376783249102396023663454813447423147977397232763",
		y: "1668503676786377725805489344771023921079126552019160156920634619255970485781",
	}
	p2 = curvePoint{
		x: "2251563274489750535117886426533222435294046428347329203627021249169616184184",
		y: "1798716007562728905295480679789526322175868328062420237419143593021674992973",
	}
	p3 = curvePoint{
		x: "2138414695194151160943305727036575959195309218611738193261179310511854807447",
		y: "113410276730064486255102093846540133784865286929052426931474106396135072156",
	}
	p4 = curvePoint{
		x: "2379962749567351885752724891227938183011949129833673362440656643086021394946",
		y: "776496453633298175483985398648758586525933812536653089401905292063708816422",
	}
)

// Pedersen computes the two-input StarkNet Pedersen hash: the affine
// x-coordinate of
//
//	shift + aLow*P1 + aHigh*P2 + bLow*P3 + bHigh*P4
//
// over the STARK curve, where aLow/aHigh (bLow/bHigh) are the 248-bit-low
// and remaining-high chunks of a (b).
func Pedersen(a, b FieldElement) FieldElement {
	shiftAffine := shiftPoint.affine()
	acc := new(starkcurve.G1Jac).FromAffine(&shiftAffine)

	addChunk(acc, a.BigInt(), p1, p2)
	addChunk(acc, b.BigInt(), p3, p4)

	var result starkcurve.G1Affine
	result.FromJacobian(acc)
	return FieldElement{inner: result.X}
}

func addChunk(acc *starkcurve.G1Jac, v *big.Int, low, high curvePoint) {
	lowPart := new(big.Int).And(v, lowMask)
	highPart := new(big.Int).Rsh(v, lowBits)

	// A zero chunk contributes the identity point and is skipped.
	if lowPart.Sign() != 0 {
		affine := low.affine()
		var base, term starkcurve.G1Jac
		base.FromAffine(&affine)
		term.ScalarMultiplication(&base, lowPart)
		acc.AddAssign(&term)
	}
	if highPart.Sign() != 0 {
		affine := high.affine()
		var base, term starkcurve.G1Jac
		base.FromAffine(&affine)
		term.ScalarMultiplication(&base, highPart)
		acc.AddAssign(&term)
	}
}
