/*
NAME
  rs.go

DESCRIPTION
  rs.go implements a generic GF(256) Reed-Solomon codec: encoding and
  errors-and-erasures decoding via Berlekamp-Massey/Forney, parameterised
  by codeword length, message length and first consecutive root. circ.go
  and ac3rs.go instantiate Codec with the CIRC and AC-3 parameters
  respectively.

  Polynomials here are represented low-degree-coefficient-first (index i
  is the coefficient of x^i), which is the convention the Berlekamp-Massey
  recursion and Forney's algorithm are usually written against.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package rs

import "fmt"

// Codec is a Reed-Solomon encoder/decoder over GF(256) for a fixed
// codeword length n, message length k and first consecutive root fcr.
// nsym = n-k is the number of parity symbols, correcting up to nsym
// erasures, floor(nsym/2) errors, or any combination where
// 2*errors+erasures <= nsym.
type Codec struct {
	N, K, FCR int
	nsym      int
	generator []byte // encoding generator polynomial, low-to-high.
}

// NewCodec returns a Codec for the given codeword length, message length
// and first consecutive root (the exponent of alpha the first generator
// root is taken at).
func NewCodec(n, k, fcr int) *Codec {
	nsym := n - k
	gen := []byte{1}
	for i := 0; i < nsym; i++ {
		root := pow(fcr + i)
		// generator *= (x - alpha^root); addition is xor so -root == root.
		gen = convLow(gen, []byte{root, 1})
	}
	return &Codec{N: n, K: k, FCR: fcr, nsym: nsym, generator: gen}
}

// Encode computes the nsym parity symbols for a k-symbol message and
// returns the full n-symbol codeword: the message in positions 0..k-1,
// the parity in positions k..n-1.
func (c *Codec) Encode(msg []byte) ([]byte, error) {
	if len(msg) != c.K {
		return nil, fmt.Errorf("rs: message length %d, want %d", len(msg), c.K)
	}
	// Systematic encoding, data first: codeword(x) = msg(x) + x^k*parity(x).
	// Every generator root is a power of alpha, so x^255 = 1 modulo the
	// generator, and parity(x) = msg(x)*x^(255-k) mod generator(x) makes
	// the codeword a multiple of the generator.
	shifted := make([]byte, 255)
	copy(shifted[255-c.K:], msg)
	_, rem := polyDivModLow(shifted, c.generator)
	out := make([]byte, c.N)
	copy(out, msg)
	copy(out[c.K:], rem)
	return out, nil
}

// Result carries statistics about a decode, per spec.md §4.4's "per-pass
// statistics (valid / 1-error / 2-error / uncorrectable)" requirement.
type Result struct {
	Errors    int // number of non-erased symbols corrected.
	Erasures  int // number of erased symbols corrected.
	Corrected []byte
}

// Decode corrects received (length n, low-degree-first) using erasures as
// side information (array indices into received known to be unreliable).
// If the codeword cannot be corrected within the nsym-parity budget, ok is
// false and Result is the zero value.
func (c *Codec) Decode(received []byte, erasures []int) (res Result, ok bool) {
	if len(received) != c.N {
		return Result{}, false
	}
	if len(erasures) > c.nsym {
		return Result{}, false
	}

	synd := c.syndromes(received)
	allZero := true
	for _, s := range synd {
		if s != 0 {
			allZero = false
			break
		}
	}
	if allZero && len(erasures) == 0 {
		cp := make([]byte, c.N)
		copy(cp, received)
		return Result{Corrected: cp}, true
	}

	gamma := erasureLocator(erasures)
	modSynd := convLow(gamma, synd)
	if len(modSynd) > c.nsym {
		modSynd = modSynd[:c.nsym]
	}
	// The first len(erasures) Forney syndromes carry the erasure terms;
	// the error locator is synthesised from the rest.
	sigma := berlekampMassey(modSynd[len(erasures):])

	lambda := convLow(gamma, sigma)
	errataPositions := chienSearch(lambda, c.N)
	if len(errataPositions) != len(lambda)-1 {
		return Result{}, false // locator degree doesn't match found roots: uncorrectable.
	}

	// Error evaluator polynomial Omega(x) = S(x)*Lambda(x) mod x^nsym.
	omega := convLow(synd, lambda)
	if len(omega) > c.nsym {
		omega = omega[:c.nsym]
	}
	lambdaDeriv := formalDerivative(lambda)

	corrected := make([]byte, c.N)
	copy(corrected, received)
	for _, p := range errataPositions {
		xInv := pow(-p)
		num := evalLow(omega, xInv)
		den := evalLow(lambdaDeriv, xInv)
		if den == 0 {
			return Result{}, false
		}
		mag := mul(pow(p*(1-c.FCR)), div(num, den))
		corrected[p] ^= mag
	}

	verifySynd := c.syndromes(corrected)
	for _, s := range verifySynd {
		if s != 0 {
			return Result{}, false
		}
	}

	errCount := len(errataPositions) - len(erasures)
	return Result{Errors: errCount, Erasures: len(erasures), Corrected: corrected}, true
}

// syndromes computes S_j = R(alpha^(fcr+j)) for j=0..nsym-1.
func (c *Codec) syndromes(received []byte) []byte {
	s := make([]byte, c.nsym)
	for j := 0; j < c.nsym; j++ {
		s[j] = evalLow(received, pow(c.FCR+j))
	}
	return s
}

// erasureLocator builds Gamma(x) = prod (1 + alpha^p * x) over erasure
// positions p (addition is xor, so 1-alpha^p*x == 1+alpha^p*x in GF(2^m)).
func erasureLocator(erasures []int) []byte {
	g := []byte{1}
	for _, p := range erasures {
		g = convLow(g, []byte{1, pow(p)})
	}
	return g
}

// berlekampMassey synthesises the shortest LFSR (error locator polynomial,
// low-to-high, constant term 1) generating the modified syndrome sequence.
func berlekampMassey(s []byte) []byte {
	c := []byte{1}
	b := []byte{1}
	l := 0
	m := 1
	bCoef := byte(1)
	for n := 0; n < len(s); n++ {
		delta := s[n]
		for i := 1; i <= l && i < len(c); i++ {
			delta ^= mul(c[i], s[n-i])
		}
		if delta == 0 {
			m++
			continue
		}
		t := make([]byte, len(c))
		copy(t, c)
		coef := div(delta, bCoef)
		ext := make([]byte, len(b)+m)
		for i, bc := range b {
			ext[i+m] ^= mul(coef, bc)
		}
		c = xorPadLow(c, ext)
		if 2*l <= n {
			l = n + 1 - l
			b = t
			bCoef = delta
			m = 1
		} else {
			m++
		}
	}
	return c
}

// chienSearch returns the array positions 0..n-1 at which lambda has a
// root when evaluated at alpha^-p (i.e. the errata locations).
func chienSearch(lambda []byte, n int) []int {
	var positions []int
	for p := 0; p < n; p++ {
		if evalLow(lambda, pow(-p)) == 0 {
			positions = append(positions, p)
		}
	}
	return positions
}

// formalDerivative returns the formal derivative of p (low-to-high): in
// characteristic 2 only odd-power terms survive, each shifted down one
// degree.
func formalDerivative(p []byte) []byte {
	if len(p) <= 1 {
		return []byte{0}
	}
	out := make([]byte, len(p)-1)
	for i := 1; i < len(p); i++ {
		if i%2 == 1 {
			out[i-1] = p[i]
		}
	}
	return out
}

// evalLow evaluates a low-to-high polynomial at x via Horner's method run
// from the top degree down.
func evalLow(p []byte, x byte) byte {
	var y byte
	for i := len(p) - 1; i >= 0; i-- {
		y = add(mul(y, x), p[i])
	}
	return y
}

// convLow convolves two low-to-high polynomials (standard polynomial
// multiplication).
func convLow(a, b []byte) []byte {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]byte, len(a)+len(b)-1)
	for i, ac := range a {
		if ac == 0 {
			continue
		}
		for j, bc := range b {
			out[i+j] ^= mul(ac, bc)
		}
	}
	return out
}

// xorPadLow xors two low-to-high polynomials, padding the shorter with
// trailing zeros (high-degree zeros).
func xorPadLow(a, b []byte) []byte {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]byte, n)
	copy(out, a)
	for i, c := range b {
		out[i] ^= c
	}
	return out
}

// polyDivModLow divides low-to-high polynomial a by b, returning quotient
// and remainder, both low-to-high. Used only for systematic encoding,
// where b is the generator polynomial (constant term 1, so the division
// never stalls on a zero leading coefficient).
func polyDivModLow(a, b []byte) (quot, rem []byte) {
	ah := reverseBytes(a) // work high-degree-first, matching schoolbook division.
	bh := reverseBytes(b)
	work := make([]byte, len(ah))
	copy(work, ah)
	degB := len(bh) - 1
	for i := 0; i <= len(work)-1-degB; i++ {
		factor := work[i]
		if factor == 0 {
			continue
		}
		for j, bc := range bh {
			work[i+j] ^= mul(factor, bc)
		}
	}
	remStart := len(work) - degB
	if remStart < 0 {
		remStart = 0
	}
	rem = reverseBytes(work[remStart:])
	return nil, rem
}

func reverseBytes(p []byte) []byte {
	out := make([]byte, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}
