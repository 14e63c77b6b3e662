package attack

import (
	"fmt"

	"jayconrod.com/cryptanalysis/crypto"
)

// DecryptBlock recovers the plaintext of one CBC ciphertext block, target,
// whose preceding ciphertext block (or IV) is prev.
func DecryptBlock(oracle PaddingOracle, prev, target []byte) ([]byte, error) {
	return sequential.DecryptBlock(oracle, prev, target)
}

// DecryptCBC recovers the unpadded plaintext of ct, encrypted under iv.
func DecryptCBC(oracle PaddingOracle, iv, ct []byte) ([]byte, error) {
	return sequential.DecryptCBC(oracle, iv, ct)
}

func (br *Breaker) DecryptBlock(oracle PaddingOracle, prev, target []byte) ([]byte, error) {
	bs := len(target)
	if len(prev) != bs {
		panic(fmt.Sprintf("previous block length (%d) differs from block length (%d)", len(prev), bs))
	}

	pt := make([]byte, bs)
	base := make([]byte, bs)
	for pos := bs - 1; pos >= 0; pos-- {
		// Make every byte after pos decrypt to the padding value we want.
		// prev ^ known ^ pad turns a known plaintext byte into pad.
		pad := byte(bs - pos)
		copy(base, prev)
		tail := base[pos+1:]
		crypto.XOR(tail, tail, pt[pos+1:])
		crypto.XORByte(tail, tail, pad)

		flip, ok := br.search(func(c byte) bool {
			iv := make([]byte, bs)
			copy(iv, base)
			iv[pos] ^= c
			if !oracle(target, iv) {
				return false
			}
			if pos == bs-1 && bs > 1 {
				// The last byte may have produced longer valid padding, like
				// 02 02, by accident. Changing the byte in front of it breaks
				// such padding but not a lone 01.
				iv[pos-1] ^= 0xff
				return oracle(target, iv)
			}
			return true
		})
		if !ok {
			return nil, &OracleError{Pos: pos}
		}
		pt[pos] = flip ^ pad
	}
	return pt, nil
}

func (br *Breaker) DecryptCBC(oracle PaddingOracle, iv, ct []byte) ([]byte, error) {
	bs := len(iv)
	if len(ct) == 0 || len(ct)%bs != 0 {
		panic(fmt.Sprintf("ciphertext length (%d) not a positive multiple of block size (%d)", len(ct), bs))
	}

	pt := make([]byte, 0, len(ct))
	prev := iv
	for i := 0; i < len(ct); i += bs {
		block, err := br.DecryptBlock(oracle, prev, ct[i:i+bs])
		if err != nil {
			return nil, fmt.Errorf("decrypting block %d: %w", i/bs, err)
		}
		pt = append(pt, block...)
		prev = ct[i : i+bs]
	}
	return crypto.Unpad(pt)
}
