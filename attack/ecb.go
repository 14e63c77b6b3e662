package attack

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"jayconrod.com/cryptanalysis/crypto"
)

// maxBlockSize bounds the input lengths DetectBlockSize tries.
const maxBlockSize = 64

// filler is the byte used for attacker-controlled input.
const filler = 'A'

// DetectBlockSize feeds bb inputs of increasing length until the output
// grows, and returns the size of the jump.
func DetectBlockSize(bb Blackbox) (int, error) {
	probe := bytes.Repeat([]byte{filler}, maxBlockSize)
	minLen := len(bb(nil))
	for i := 1; i <= maxBlockSize; i++ {
		if n := len(bb(probe[:i])); n > minLen {
			return n - minLen, nil
		}
	}
	return 0, ErrBlockSizeNotFound
}

// DetectECB reports whether bb encrypts in ECB mode. Three identical blocks
// of input always fill at least two aligned plaintext blocks, which ECB
// encrypts identically.
func DetectECB(bb Blackbox, blockSize int) bool {
	ct := bb(bytes.Repeat([]byte{filler}, 3*blockSize))
	if len(ct)%blockSize != 0 {
		return false
	}
	return crypto.DetectECB(ct, blockSize)
}

// FindPrefixLength returns the length of a fixed prefix that bb places in
// front of its input. bb must be an ECB blackbox.
func FindPrefixLength(bb Blackbox, blockSize int) (int, error) {
	// Two identical random blocks, preceded by i filler bytes. Once the
	// prefix and filler fill whole blocks, the pair shows up as two equal
	// consecutive ciphertext blocks. The secret may repeat blocks too, so
	// the pair must also change when the random block does.
	var probes [2][]byte
	for k := range probes {
		scratch := make([]byte, 3*blockSize)
		for i := range scratch[:blockSize] {
			scratch[i] = filler
		}
		if _, err := rand.Read(scratch[blockSize : 2*blockSize]); err != nil {
			return 0, err
		}
		copy(scratch[2*blockSize:], scratch[blockSize:2*blockSize])
		probes[k] = scratch
	}
	if bytes.Equal(probes[0][blockSize:2*blockSize], probes[1][blockSize:2*blockSize]) {
		return 0, fmt.Errorf("finding prefix length: random blocks collided")
	}

	for i := 0; i < blockSize; i++ {
		ct0 := bb(probes[0][blockSize-i:])
		ct1 := bb(probes[1][blockSize-i:])
		if len(ct0) != len(ct1) {
			continue
		}
		for j := 0; j+2*blockSize <= len(ct0); j += blockSize {
			a0, b0 := ct0[j:j+blockSize], ct0[j+blockSize:j+2*blockSize]
			a1, b1 := ct1[j:j+blockSize], ct1[j+blockSize:j+2*blockSize]
			if bytes.Equal(a0, b0) && bytes.Equal(a1, b1) && !bytes.Equal(a0, a1) {
				return j - i, nil
			}
		}
	}
	return 0, fmt.Errorf("finding prefix length: no repeated block with block size %d", blockSize)
}

// ExtractSuffix recovers the secret that bb appends to its input before
// encrypting with ECB and PKCS#7 padding.
func ExtractSuffix(bb Blackbox, blockSize int) ([]byte, error) {
	return sequential.ExtractSuffix(bb, blockSize)
}

// ExtractSuffixAfterPrefix is ExtractSuffix for a blackbox that also puts a
// fixed, unknown prefix in front of the input.
func ExtractSuffixAfterPrefix(bb Blackbox, blockSize int) ([]byte, error) {
	return sequential.ExtractSuffixAfterPrefix(bb, blockSize)
}

func (br *Breaker) ExtractSuffix(bb Blackbox, blockSize int) ([]byte, error) {
	return br.extract(bb, blockSize, 0)
}

func (br *Breaker) ExtractSuffixAfterPrefix(bb Blackbox, blockSize int) ([]byte, error) {
	prefixLen, err := FindPrefixLength(bb, blockSize)
	if err != nil {
		return nil, err
	}
	return br.extract(bb, blockSize, prefixLen)
}

// extract decrypts the suffix one byte at a time. Filler is chosen so the
// unknown byte is the last byte of a block; that block is then matched
// against encryptions of every known-prefix-plus-guess block.
//
// Input starts with align filler bytes that complete the last block of the
// prefix, and the first skip bytes of every ciphertext are ignored.
func (br *Breaker) extract(bb Blackbox, blockSize, prefixLen int) ([]byte, error) {
	bs := blockSize
	if bs < 2 {
		panic(fmt.Sprintf("block size %d too small for byte-at-a-time extraction", bs))
	}
	align := (bs - prefixLen%bs) % bs
	skip := prefixLen + align
	zero := bytes.Repeat([]byte{filler}, align+bs)

	// Encrypt the suffix behind filler of every length up to the block size.
	// cts[k] has the byte at suffix offset i in the last position of block
	// i/bs whenever i%bs == bs-1-k.
	cts := make([][]byte, bs)
	for k := range cts {
		cts[k] = bb(zero[:align+k])[skip:]
	}
	total := len(cts[0])

	known := make([]byte, 0, total)
	// window holds the bs-1 bytes in front of the unknown byte.
	window := bytes.Repeat([]byte{filler}, bs-1)
	for i := 0; i < total; i++ {
		blockIndex := i / bs
		ct := cts[bs-1-i%bs]
		if len(ct) < (blockIndex+1)*bs {
			break
		}
		target := ct[blockIndex*bs : (blockIndex+1)*bs]

		b, ok := br.search(func(c byte) bool {
			probe := make([]byte, align+bs)
			copy(probe, zero[:align])
			copy(probe[align:], window)
			probe[align+bs-1] = c
			got := bb(probe)
			return len(got) >= skip+bs && bytes.Equal(got[skip:skip+bs], target)
		})
		if !ok {
			// The suffix is followed by padding that changes with the amount
			// of filler, so nothing matches once the 0x01 pad byte is behind
			// us.
			break
		}
		known = append(known, b)
		copy(window, window[1:])
		window[bs-2] = b
	}

	if len(known) == 0 || known[len(known)-1] != 0x01 {
		e := &ExtractionError{Offset: len(known)}
		if len(known) > 0 {
			e.Last = known[len(known)-1]
		}
		return nil, e
	}
	return known[:len(known)-1], nil
}
