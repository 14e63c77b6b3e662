// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Copied from golang.org/x/crypto/md4

package crypto

import (
	"encoding/binary"
	"math/bits"
)

var (
	md4Shift1 = [4]int{3, 7, 11, 19}
	md4Shift2 = [4]int{3, 5, 9, 13}
	md4Shift3 = [4]int{3, 9, 11, 15}

	md4Index2 = [16]int{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}
	md4Index3 = [16]int{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15}
)

// md4Block runs the MD4 compression function over each 64-byte block of p,
// updating s in place.
func md4Block(s *[4]uint32, p []byte) {
	var x [16]uint32
	a, b, c, d := s[0], s[1], s[2], s[3]
	for len(p) >= MD4Chunk {
		aa, bb, cc, dd := a, b, c, d
		for i := range x {
			x[i] = binary.LittleEndian.Uint32(p[4*i:])
		}

		// Round 1.
		for i := 0; i < 16; i++ {
			f := ((c ^ d) & b) ^ d
			a = bits.RotateLeft32(a+f+x[i], md4Shift1[i%4])
			a, b, c, d = d, a, b, c
		}

		// Round 2.
		for i := 0; i < 16; i++ {
			g := b&c | b&d | c&d
			a = bits.RotateLeft32(a+g+x[md4Index2[i]]+0x5A827999, md4Shift2[i%4])
			a, b, c, d = d, a, b, c
		}

		// Round 3.
		for i := 0; i < 16; i++ {
			h := b ^ c ^ d
			a = bits.RotateLeft32(a+h+x[md4Index3[i]]+0x6ED9EBA1, md4Shift3[i%4])
			a, b, c, d = d, a, b, c
		}

		a += aa
		b += bb
		c += cc
		d += dd
		p = p[MD4Chunk:]
	}
	s[0], s[1], s[2], s[3] = a, b, c, d
}
