package crypto

import (
	"encoding/binary"
	"fmt"
)

// mdChunk is the block size shared by SHA-1 and MD4.
const mdChunk = 64

// mdPadding returns the Merkle–Damgård strengthening appended to an n-byte
// message: 0x80, zeros up to 56 mod 64, then total (in bits) as a 64-bit
// integer. total is normally n; length extension passes the length of the
// full forged message instead.
func mdPadding(n int, total uint64, order binary.ByteOrder) []byte {
	zeros := (mdChunk - 9 - n%mdChunk + mdChunk) % mdChunk
	pad := make([]byte, 1+zeros+8)
	pad[0] = 0x80
	order.PutUint64(pad[1+zeros:], total<<3)
	return pad
}

func mdPad(msg []byte, total uint64, order binary.ByteOrder) []byte {
	out := make([]byte, 0, len(msg)+mdChunk+8)
	out = append(out, msg...)
	return append(out, mdPadding(len(msg), total, order)...)
}

func checkPadded(padded []byte) {
	if len(padded)%mdChunk != 0 {
		panic(fmt.Sprintf("padded input length (%d) not a multiple of %d", len(padded), mdChunk))
	}
}
