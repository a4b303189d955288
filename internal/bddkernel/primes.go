// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bddkernel

import "math/big"

// Prime-sized hash tables distribute better than power-of-two ones and are
// cheap to find for the sizes we deal with; lifted verbatim from
// dalzilio-rudd's primes.go.

func hasFactor(src, n int) bool {
	return src != n && src%n == 0
}

func hasEasyFactors(src int) bool {
	return hasFactor(src, 3) || hasFactor(src, 5) || hasFactor(src, 7) || hasFactor(src, 11) || hasFactor(src, 13)
}

func primeGte(src int) int {
	if src%2 == 0 {
		src++
	}
	for {
		if hasEasyFactors(src) {
			src += 2
			continue
		}
		// ProbablyPrime is 100% accurate for inputs less than 2⁶⁴.
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src += 2
	}
}
