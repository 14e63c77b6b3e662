package crypto

import "fmt"

// PaddingError describes a buffer that does not end in valid PKCS#7 padding.
type PaddingError struct {
	// Pad is the pad length claimed by the last byte of the buffer.
	Pad byte

	// Offset is the position of the first byte that disagrees with Pad,
	// or -1 if the buffer is too short to hold Pad bytes.
	Offset int

	// Got is the value found at Offset.
	Got byte
}

func (e *PaddingError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("invalid padding: pad length %d exceeds buffer", e.Pad)
	}
	if e.Pad == 0 {
		return "invalid padding: pad length 0"
	}
	return fmt.Sprintf("invalid padding: pad length %d, byte at %d is %#02x", e.Pad, e.Offset, e.Got)
}

// PadLength returns the length of an n-byte message after PKCS#7 padding.
func PadLength(n, blockSize int) int {
	return n + blockSize - n%blockSize
}

// Pad appends src followed by PKCS#7 padding to dst and returns the
// extended buffer. A message that already fills its last block gets a full
// block of padding. src and dst may overlap if dst[:0] is the start of src.
func Pad(dst, src []byte, blockSize int) []byte {
	if blockSize <= 0 || blockSize > 0xff {
		panic(fmt.Sprintf("invalid block size %d", blockSize))
	}
	n := blockSize - len(src)%blockSize
	dst = append(dst, src...)
	for i := 0; i < n; i++ {
		dst = append(dst, byte(n))
	}
	return dst
}

// Unpad returns buf without its PKCS#7 padding. The returned slice shares
// storage with buf.
func Unpad(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return nil, &PaddingError{Offset: -1}
	}
	last := len(buf) - 1
	p := buf[last]
	if p == 0 {
		return nil, &PaddingError{Pad: p, Offset: last, Got: p}
	}
	if int(p) > len(buf) {
		return nil, &PaddingError{Pad: p, Offset: -1}
	}
	for i := len(buf) - int(p); i < last; i++ {
		if buf[i] != p {
			return nil, &PaddingError{Pad: p, Offset: i, Got: buf[i]}
		}
	}
	return buf[:len(buf)-int(p)], nil
}
