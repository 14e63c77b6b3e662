package attack

import (
	"bytes"
	"fmt"

	"jayconrod.com/cryptanalysis/crypto"
)

// Untemper inverts crypto.Temper, recovering the MT19937 state word behind
// an output.
func Untemper(y uint32) uint32 {
	y = unshiftRight(y, 18)
	y = unshiftLeft(y, 15, crypto.TemperMaskC)
	y = unshiftLeft(y, 7, crypto.TemperMaskB)
	y = unshiftRight(y, 11)
	return y
}

// unshiftRight inverts y ^= y >> shift. The top shift bits of y are already
// correct; each pass fixes the next shift bits.
func unshiftRight(y uint32, shift uint) uint32 {
	x := y
	for i := shift; i < 32; i += shift {
		x = y ^ x>>shift
	}
	return x
}

// unshiftLeft inverts y ^= (y << shift) & mask, working up from the low bits.
func unshiftLeft(y uint32, shift uint, mask uint32) uint32 {
	x := y
	for i := shift; i < 32; i += shift {
		x = y ^ (x<<shift)&mask
	}
	return x
}

// CloneMT19937 returns a generator that continues the sequence after any
// MT19937StateSize consecutive outputs, wherever they start in the stream.
// Only the first MT19937StateSize outputs are used.
func CloneMT19937(outputs []uint32) *crypto.MT19937 {
	if len(outputs) < crypto.MT19937StateSize {
		panic(fmt.Sprintf("need %d outputs to clone MT19937, got %d", crypto.MT19937StateSize, len(outputs)))
	}
	clone := &crypto.MT19937{Index: crypto.MT19937StateSize}
	for i := range clone.MT {
		clone.MT[i] = Untemper(outputs[i])
	}
	return clone
}

// RecoverStreamSeed finds the 16-bit seed of an MT19937 stream cipher from a
// ciphertext whose plaintext is known to end with known.
func RecoverStreamSeed(ct, known []byte) (uint16, error) {
	if len(known) > len(ct) {
		return 0, fmt.Errorf("known plaintext (%d bytes) longer than ciphertext (%d bytes)", len(known), len(ct))
	}
	pt := make([]byte, len(ct))
	for seed := 0; seed <= 0xffff; seed++ {
		crypto.NewMT19937Stream(uint32(seed)).XORKeyStream(pt, ct)
		if bytes.HasSuffix(pt, known) {
			return uint16(seed), nil
		}
	}
	return 0, fmt.Errorf("no 16-bit seed decrypts to the known plaintext")
}

// RecoverTimeSeed finds a seed in [now-window, now] whose generator's first
// output is output. The range is clipped at 0. It is used against generators seeded with a Unix
// timestamp.
func RecoverTimeSeed(output, now, window uint32) (uint32, error) {
	if window > now {
		window = now
	}
	src := crypto.NewMT19937()
	for seed := now; ; seed-- {
		src.Seed(seed)
		if src.Uint32() == output {
			return seed, nil
		}
		if seed == now-window {
			break
		}
	}
	return 0, fmt.Errorf("no seed within %d seconds of %d produces %d", window, now, output)
}
