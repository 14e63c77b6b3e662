package crypto

import (
	"crypto/subtle"
	"encoding/binary"
)

// The size of a SHA-1 checksum in bytes.
const SHA1Size = 20

// The blocksize of SHA-1 in bytes.
const SHA1BlockSize = 64

const (
	SHA1Chunk = 64
	SHA1Init0 = 0x67452301
	SHA1Init1 = 0xEFCDAB89
	SHA1Init2 = 0x98BADCFE
	SHA1Init3 = 0x10325476
	SHA1Init4 = 0xC3D2E1F0
)

// SHA1 represents the partial evaluation of a checksum.
type SHA1 struct {
	H   [5]uint32
	X   [SHA1Chunk]byte
	NX  int
	Len uint64
}

func (d *SHA1) Reset() {
	d.H[0] = SHA1Init0
	d.H[1] = SHA1Init1
	d.H[2] = SHA1Init2
	d.H[3] = SHA1Init3
	d.H[4] = SHA1Init4
	d.NX = 0
	d.Len = 0
}

// NewSHA1 returns a new hash.Hash computing the SHA-1 checksum.
func NewSHA1() *SHA1 {
	d := new(SHA1)
	d.Reset()
	return d
}

// Get returns the number of bytes written and the running state of d,
// serialized like a digest. Like Sum but does not append padding first.
// May only be called on a 64-byte boundary.
func (d *SHA1) Get() (uint64, [SHA1Size]byte) {
	if d.NX != 0 {
		panic("d.NX != 0")
	}
	return d.Len, sha1Digest(d.H)
}

// Set replaces the state of d as if n bytes had been hashed and produced
// the intermediate state h. n must be a multiple of 64.
func (d *SHA1) Set(n uint64, h [SHA1Size]byte) {
	if n%SHA1Chunk != 0 {
		panic("n % 64 != 0")
	}
	d.H = sha1State(h)
	d.NX = 0
	d.Len = n
}

func (d *SHA1) Size() int { return SHA1Size }

func (d *SHA1) BlockSize() int { return SHA1BlockSize }

func (d *SHA1) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.Len += uint64(nn)
	if d.NX > 0 {
		n := copy(d.X[d.NX:], p)
		d.NX += n
		if d.NX == SHA1Chunk {
			sha1Block(&d.H, d.X[:])
			d.NX = 0
		}
		p = p[n:]
	}
	if len(p) >= SHA1Chunk {
		n := len(p) &^ (SHA1Chunk - 1)
		sha1Block(&d.H, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.NX = copy(d.X[:], p)
	}
	return
}

func (d *SHA1) Sum(in []byte) []byte {
	// Make a copy of d so that caller can keep writing and summing.
	d0 := *d
	hash := d0.checkSum()
	return append(in, hash[:]...)
}

func (d *SHA1) checkSum() [SHA1Size]byte {
	d.Write(mdPadding(int(d.Len%SHA1Chunk), d.Len, binary.BigEndian))
	if d.NX != 0 {
		panic("d.nx != 0")
	}
	return sha1Digest(d.H)
}

func sha1Digest(h [5]uint32) [SHA1Size]byte {
	var digest [SHA1Size]byte
	for i, s := range h {
		binary.BigEndian.PutUint32(digest[i*4:], s)
	}
	return digest
}

func sha1State(digest [SHA1Size]byte) [5]uint32 {
	var h [5]uint32
	for i := range h {
		h[i] = binary.BigEndian.Uint32(digest[i*4:])
	}
	return h
}

// SHA1Padding returns the padding SHA-1 appends to an n-byte message.
func SHA1Padding(n int) []byte {
	return mdPadding(n, uint64(n), binary.BigEndian)
}

// SHA1Pad returns a copy of msg followed by its SHA-1 padding.
func SHA1Pad(msg []byte) []byte {
	return mdPad(msg, uint64(len(msg)), binary.BigEndian)
}

// SHA1PadFakeSize pads msg as SHA1Pad does, but encodes total as the
// message length. The result is what the compression function sees when
// msg is the tail of a total-byte message that starts on a block boundary.
func SHA1PadFakeSize(msg []byte, total int) []byte {
	return mdPad(msg, uint64(total), binary.BigEndian)
}

// SHA1Hash hashes input that has already been padded.
func SHA1Hash(padded []byte) [SHA1Size]byte {
	return SHA1HashWithState(sha1Digest([5]uint32{SHA1Init0, SHA1Init1, SHA1Init2, SHA1Init3, SHA1Init4}), padded)
}

// SHA1HashWithState runs the compression function over padded starting
// from state instead of the standard initial values. state is in digest
// form, so a leaked SHA-1 output can be passed directly.
func SHA1HashWithState(state [SHA1Size]byte, padded []byte) [SHA1Size]byte {
	checkPadded(padded)
	h := sha1State(state)
	sha1Block(&h, padded)
	return sha1Digest(h)
}

// SHA1Sum returns the SHA-1 checksum of the data.
func SHA1Sum(data []byte) [SHA1Size]byte {
	var d SHA1
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

// SHA1KeyedMAC returns SHA-1(key ‖ data), a MAC that is open to length
// extension.
func SHA1KeyedMAC(key, data []byte) [SHA1Size]byte {
	msg := make([]byte, 0, len(key)+len(data))
	msg = append(msg, key...)
	msg = append(msg, data...)
	return SHA1Hash(SHA1Pad(msg))
}

// SHA1ValidateMAC reports whether mac is SHA1KeyedMAC(key, data).
func SHA1ValidateMAC(key, data []byte, mac [SHA1Size]byte) bool {
	want := SHA1KeyedMAC(key, data)
	return subtle.ConstantTimeCompare(want[:], mac[:]) == 1
}
