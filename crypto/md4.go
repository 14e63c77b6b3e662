// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Copied from golang.org/x/crypto/md4

package crypto

import (
	"crypto/subtle"
	"encoding/binary"
)

// The size of an MD4 checksum in bytes.
const MD4Size = 16

// The blocksize of MD4 in bytes.
const MD4BlockSize = 64

const (
	MD4Chunk = 64
	MD4Init0 = 0x67452301
	MD4Init1 = 0xEFCDAB89
	MD4Init2 = 0x98BADCFE
	MD4Init3 = 0x10325476
)

// MD4 represents the partial evaluation of a checksum.
type MD4 struct {
	S   [4]uint32
	X   [MD4Chunk]byte
	NX  int
	Len uint64
}

func (d *MD4) Reset() {
	d.S[0] = MD4Init0
	d.S[1] = MD4Init1
	d.S[2] = MD4Init2
	d.S[3] = MD4Init3
	d.NX = 0
	d.Len = 0
}

// Get returns the state of d. Like Sum but does not append padding first.
// May only be called on a 64-byte boundary.
func (d *MD4) Get() (uint64, [MD4Size]byte) {
	if d.NX != 0 {
		panic("d.NX != 0")
	}
	return d.Len, md4Digest(d.S)
}

// Set sets the state of d.
func (d *MD4) Set(n uint64, h [MD4Size]byte) {
	if n%MD4Chunk != 0 {
		panic("n % 64 != 0")
	}
	d.S = md4State(h)
	d.NX = 0
	d.Len = n
}

// NewMD4 returns a new hash.Hash computing the MD4 checksum.
func NewMD4() *MD4 {
	d := new(MD4)
	d.Reset()
	return d
}

func (d *MD4) Size() int { return MD4Size }

func (d *MD4) BlockSize() int { return MD4BlockSize }

func (d *MD4) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.Len += uint64(nn)
	if d.NX > 0 {
		n := copy(d.X[d.NX:], p)
		d.NX += n
		if d.NX == MD4Chunk {
			md4Block(&d.S, d.X[:])
			d.NX = 0
		}
		p = p[n:]
	}
	if len(p) >= MD4Chunk {
		n := len(p) &^ (MD4Chunk - 1)
		md4Block(&d.S, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.NX = copy(d.X[:], p)
	}
	return
}

func (d0 *MD4) Sum(in []byte) []byte {
	// Make a copy of d0, so that caller can keep writing and summing.
	d := *d0
	d.Write(mdPadding(int(d.Len%MD4Chunk), d.Len, binary.LittleEndian))
	if d.NX != 0 {
		panic("d.nx != 0")
	}
	sum := md4Digest(d.S)
	return append(in, sum[:]...)
}

func md4Digest(s [4]uint32) [MD4Size]byte {
	var h [MD4Size]byte
	for i, v := range s {
		binary.LittleEndian.PutUint32(h[i*4:], v)
	}
	return h
}

func md4State(h [MD4Size]byte) [4]uint32 {
	var s [4]uint32
	for i := range s {
		s[i] = binary.LittleEndian.Uint32(h[i*4:])
	}
	return s
}

// MD4Padding returns the padding MD4 appends to an n-byte message. It
// differs from SHA1Padding only in the byte order of the length.
func MD4Padding(n int) []byte {
	return mdPadding(n, uint64(n), binary.LittleEndian)
}

func MD4Pad(msg []byte) []byte {
	return mdPad(msg, uint64(len(msg)), binary.LittleEndian)
}

// MD4PadFakeSize pads msg but records total as the message length.
func MD4PadFakeSize(msg []byte, total int) []byte {
	return mdPad(msg, uint64(total), binary.LittleEndian)
}

func MD4Hash(padded []byte) [MD4Size]byte {
	return MD4HashWithState(md4Digest([4]uint32{MD4Init0, MD4Init1, MD4Init2, MD4Init3}), padded)
}

// MD4HashWithState resumes MD4 from state, a digest-form intermediate
// value, and compresses padded.
func MD4HashWithState(state [MD4Size]byte, padded []byte) [MD4Size]byte {
	checkPadded(padded)
	s := md4State(state)
	md4Block(&s, padded)
	return md4Digest(s)
}

func MD4Sum(data []byte) [MD4Size]byte {
	d := NewMD4()
	d.Write(data)
	var sum [MD4Size]byte
	d.Sum(sum[:0])
	return sum
}

// MD4KeyedMAC returns MD4(key ‖ data).
func MD4KeyedMAC(key, data []byte) [MD4Size]byte {
	msg := make([]byte, 0, len(key)+len(data))
	msg = append(msg, key...)
	msg = append(msg, data...)
	return MD4Hash(MD4Pad(msg))
}

func MD4ValidateMAC(key, data []byte, mac [MD4Size]byte) bool {
	want := MD4KeyedMAC(key, data)
	return subtle.ConstantTimeCompare(want[:], mac[:]) == 1
}
