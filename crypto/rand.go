package crypto

import (
	"fmt"
)

// MT19937StateSize is the number of words of MT19937 state. That many
// consecutive outputs determine the state completely.
const MT19937StateSize = mtN

type MT19937 struct {
	MT    [mtN]uint32
	Index int
}

const (
	mtW = 32
	mtN = 624
	mtM = 397
	mtR = 31
	mtA = 0x9908B0DF
	mtF = 1812433253

	// Tempering parameters.
	mtU = 11
	mtD = 0xFFFFFFFF
	mtS = 7
	mtB = 0x9D2C5680
	mtT = 15
	mtC = 0xEFC60000
	mtL = 18

	lowerMask uint32 = (1 << mtR) - 1
	upperMask uint32 = ^lowerMask
)

// TemperMaskB and TemperMaskC are the masks applied by the two left-shift
// steps of Temper.
const (
	TemperMaskB uint32 = mtB
	TemperMaskC uint32 = mtC
)

func NewMT19937() *MT19937 {
	return &MT19937{Index: mtN + 1}
}

func (src *MT19937) Seed(seed uint32) {
	src.Index = mtN
	src.MT[0] = seed
	for i := 1; i < mtN; i++ {
		src.MT[i] = mtF*(src.MT[i-1]^(src.MT[i-1]>>(mtW-2))) + uint32(i)
	}
}

func (src *MT19937) Uint32() uint32 {
	if src.Index >= mtN {
		if src.Index > mtN {
			panic("generator was never seeded")
		}
		src.twist()
	}

	y := src.MT[src.Index]
	src.Index++
	return Temper(y)
}

func (src *MT19937) twist() {
	for i := 0; i < mtN; i++ {
		x := src.MT[i]&upperMask + src.MT[(i+1)%mtN]&lowerMask
		xA := x >> 1
		if x%2 != 0 {
			xA ^= mtA
		}
		src.MT[i] = src.MT[(i+mtM)%mtN] ^ xA
	}
	src.Index = 0
}

// Temper is the output transform MT19937 applies to each state word.
func Temper(y uint32) uint32 {
	y ^= (y >> mtU) & mtD
	y ^= (y << mtS) & mtB
	y ^= (y << mtT) & mtC
	y ^= y >> mtL
	return y
}

// MT19937Stream is a stream cipher whose keystream is the output of an
// MT19937 generator, four little-endian bytes per output.
type MT19937Stream struct {
	src  MT19937
	w, b uint32
}

func NewMT19937Stream(seed uint32) *MT19937Stream {
	src := NewMT19937()
	src.Seed(seed)
	return &MT19937Stream{src: *src}
}

func (ms *MT19937Stream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic(fmt.Sprintf("len(dst) (%d) less than len(src) (%d)", len(dst), len(src)))
	}

	for i := 0; i < len(src); i++ {
		if ms.b == 0 {
			ms.w = ms.src.Uint32()
			ms.b = 4
		}
		dst[i] = src[i] ^ byte(ms.w)
		ms.w >>= 8
		ms.b--
	}
}
