package attack

import (
	"jayconrod.com/cryptanalysis/crypto"
)

// extend builds data ‖ glue ‖ suffix, where glue is the padding the victim
// hashed after key ‖ data, and returns it with the padded suffix block(s)
// that resume the hash from the leaked MAC.
func extend(padding func(int) []byte, padFakeSize func([]byte, int) []byte, data []byte, keyLen int, suffix []byte) (forged, padded []byte) {
	glue := padding(keyLen + len(data))
	forged = make([]byte, 0, len(data)+len(glue)+len(suffix))
	forged = append(forged, data...)
	forged = append(forged, glue...)
	forged = append(forged, suffix...)
	return forged, padFakeSize(suffix, keyLen+len(forged))
}

// ExtendSHA1 forges a SHA-1 keyed MAC. Given mac = SHA1KeyedMAC(key, data)
// and the length of key, it returns a message that starts with data and ends
// with suffix, together with its valid MAC under the same key.
func ExtendSHA1(mac [crypto.SHA1Size]byte, data []byte, keyLen int, suffix []byte) ([]byte, [crypto.SHA1Size]byte) {
	forged, padded := extend(crypto.SHA1Padding, crypto.SHA1PadFakeSize, data, keyLen, suffix)
	return forged, crypto.SHA1HashWithState(mac, padded)
}

// ExtendMD4 is ExtendSHA1 for MD4 keyed MACs.
func ExtendMD4(mac [crypto.MD4Size]byte, data []byte, keyLen int, suffix []byte) ([]byte, [crypto.MD4Size]byte) {
	forged, padded := extend(crypto.MD4Padding, crypto.MD4PadFakeSize, data, keyLen, suffix)
	return forged, crypto.MD4HashWithState(mac, padded)
}

// ForgeSHA1 runs ExtendSHA1 for each key length from 0 to maxKeyLen until
// verify accepts the forgery. It returns the forged message, its MAC and the
// key length that worked.
func ForgeSHA1(mac [crypto.SHA1Size]byte, data, suffix []byte, maxKeyLen int, verify func([]byte, [crypto.SHA1Size]byte) bool) ([]byte, [crypto.SHA1Size]byte, int, error) {
	for keyLen := 0; keyLen <= maxKeyLen; keyLen++ {
		forged, forgedMAC := ExtendSHA1(mac, data, keyLen, suffix)
		if verify(forged, forgedMAC) {
			return forged, forgedMAC, keyLen, nil
		}
	}
	return nil, [crypto.SHA1Size]byte{}, 0, ErrKeyLengthNotFound
}

// ForgeMD4 is ForgeSHA1 for MD4 keyed MACs.
func ForgeMD4(mac [crypto.MD4Size]byte, data, suffix []byte, maxKeyLen int, verify func([]byte, [crypto.MD4Size]byte) bool) ([]byte, [crypto.MD4Size]byte, int, error) {
	for keyLen := 0; keyLen <= maxKeyLen; keyLen++ {
		forged, forgedMAC := ExtendMD4(mac, data, keyLen, suffix)
		if verify(forged, forgedMAC) {
			return forged, forgedMAC, keyLen, nil
		}
	}
	return nil, [crypto.MD4Size]byte{}, 0, ErrKeyLengthNotFound
}
