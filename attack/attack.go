// Package attack recovers secrets from the primitives in package crypto
// using only blackbox access: byte-at-a-time ECB decryption, the CBC padding
// oracle, hash length extension and MT19937 cloning.
package attack

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Blackbox encrypts attacker-controlled input, typically together with
// secret material. It must return the same output for the same input and
// must not modify or retain input.
type Blackbox func(input []byte) []byte

// PaddingOracle reports whether ct, CBC-decrypted with iv, ends in valid
// PKCS#7 padding.
type PaddingOracle func(ct, iv []byte) bool

var (
	ErrBlockSizeNotFound = errors.New("block size not found")
	ErrKeyLengthNotFound = errors.New("no key length produced a valid MAC")
)

// OracleError is returned when no candidate byte satisfies a padding oracle.
// An oracle that behaves deterministically never causes this, so the attack
// does not retry.
type OracleError struct {
	// Pos is the byte position within the block being decrypted.
	Pos int
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("padding oracle accepted no candidate for byte %d", e.Pos)
}

// ExtractionError is returned when byte-at-a-time ECB decryption stops at a
// byte that cannot be the start of PKCS#7 padding.
type ExtractionError struct {
	// Offset is the number of bytes recovered before extraction stopped.
	Offset int

	// Last is the last byte recovered, which should have been 0x01.
	Last byte
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction stopped after %d bytes at %#02x, not a padding byte", e.Offset, e.Last)
}

// Breaker runs the byte-guessing attacks. Each position is recovered by
// trying all 256 byte values; with Workers > 1 the candidates are tried
// concurrently, in which case the Blackbox or PaddingOracle must be safe for
// concurrent use. The zero Breaker tries candidates sequentially.
type Breaker struct {
	Workers int
}

var sequential = &Breaker{}

// search returns the lowest byte for which try returns true.
func (br *Breaker) search(try func(b byte) bool) (byte, bool) {
	if br.Workers <= 1 {
		for i := 0; i < 256; i++ {
			if try(byte(i)) {
				return byte(i), true
			}
		}
		return 0, false
	}

	var ok [256]bool
	var g errgroup.Group
	g.SetLimit(br.Workers)
	for i := 0; i < 256; i++ {
		i := i
		g.Go(func() error {
			ok[i] = try(byte(i))
			return nil
		})
	}
	_ = g.Wait()
	for i := range ok {
		if ok[i] {
			return byte(i), true
		}
	}
	return 0, false
}
