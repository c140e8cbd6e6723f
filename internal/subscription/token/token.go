// Package token generates opaque confirmation tokens.
package token

import "math/rand/v2"

// Length is the fixed token length. 25 alphanumeric characters give roughly
// 148 bits of keyspace, enough that guessing is infeasible within operational
// timeframes even from a non-cryptographic source.
const Length = 25

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces confirmation tokens. It gives no uniqueness guarantee;
// the storage layer's unique key is what serializes collisions.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a fresh token drawn uniformly from the alphabet.
func (g *Generator) Generate() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
