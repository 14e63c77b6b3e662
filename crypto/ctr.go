package crypto

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
)

// CTRStream is a cipher.Stream that encrypts nonce ‖ counter blocks, each a
// little-endian 64-bit integer, to produce its keystream. The counter starts
// at zero.
type CTRStream struct {
	block cipher.Block

	// in is the next block that, when encrypted, becomes the keystream.
	in []byte

	// ctr is the counter stored in the second half of in.
	ctr uint64

	// out is the current keystream block.
	out []byte

	// off is the number of bytes in out that have been consumed.
	off int
}

func NewCTR(block cipher.Block, nonce uint64) *CTRStream {
	bs := block.BlockSize()
	if bs != 16 {
		panic(fmt.Sprintf("block.BlockSize() is %d; must be 16", bs))
	}
	cs := &CTRStream{
		block: block,
		in:    make([]byte, bs),
		out:   make([]byte, bs),
	}
	binary.LittleEndian.PutUint64(cs.in[:8], nonce)
	cs.load()
	return cs
}

func (cs *CTRStream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic(fmt.Sprintf("len(dst) (%d) less than len(src) (%d)", len(dst), len(src)))
	}

	bs := len(cs.in)
	for len(src) > 0 {
		if cs.off == bs {
			cs.ctr++
			cs.off = 0
			cs.load()
		}
		n := bs - cs.off
		if len(src) < n {
			n = len(src)
		}
		XOR(dst[:n], src[:n], cs.out[cs.off:cs.off+n])
		dst = dst[n:]
		src = src[n:]
		cs.off += n
	}
}

// Seek skips offset bytes of keystream.
func (cs *CTRStream) Seek(offset int) {
	if offset < 0 {
		panic(fmt.Sprintf("cannot seek backward with offset %d", offset))
	}
	bs := len(cs.in)
	pos := cs.off + offset
	if pos <= bs {
		cs.off = pos
		return
	}
	cs.ctr += uint64(pos / bs)
	cs.off = pos % bs
	cs.load()
}

// load encrypts the current counter block into out. off is left unchanged.
func (cs *CTRStream) load() {
	binary.LittleEndian.PutUint64(cs.in[8:], cs.ctr)
	cs.block.Encrypt(cs.out, cs.in)
}
