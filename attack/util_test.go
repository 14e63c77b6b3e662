package attack_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"os"
	"testing"

	"jayconrod.com/cryptanalysis/crypto"
)

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func readBase64File(t *testing.T, path string) []byte {
	t.Helper()
	bdata := readFile(t, path)
	data := make([]byte, base64.StdEncoding.DecodedLen(len(bdata)))
	n, err := base64.StdEncoding.Decode(data, bdata)
	if err != nil {
		t.Fatalf("decoding base64 %s: %v", path, err)
	}
	return data[:n]
}

// readBase64Lines decodes each non-empty line of path separately.
func readBase64Lines(t *testing.T, path string) [][]byte {
	t.Helper()
	var out [][]byte
	for i, line := range bytes.Split(readFile(t, path), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(string(line))
		if err != nil {
			t.Fatalf("%s:%d: %v", path, i+1, err)
		}
		out = append(out, data)
	}
	return out
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	return buf
}

func randomCipher(t *testing.T) cipher.Block {
	t.Helper()
	c, err := aes.NewCipher(randomBytes(t, 16))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// ecbSuffixOracle returns a blackbox computing
// ECB(prefix ‖ input ‖ secret ‖ padding) under a random key.
func ecbSuffixOracle(t *testing.T, prefix, secret []byte) func([]byte) []byte {
	t.Helper()
	enc := crypto.NewECBEncrypter(randomCipher(t))
	return func(input []byte) []byte {
		buf := make([]byte, 0, crypto.PadLength(len(prefix)+len(input)+len(secret), aes.BlockSize))
		buf = append(buf, prefix...)
		buf = append(buf, input...)
		buf = append(buf, secret...)
		buf = crypto.Pad(buf[:0], buf, aes.BlockSize)
		enc.CryptBlocks(buf, buf)
		return buf
	}
}

// cbcPaddingOracle encrypts pt under a random key and IV and returns the
// IV, the ciphertext and an oracle reporting padding validity.
func cbcPaddingOracle(t *testing.T, pt []byte) (iv, ct []byte, oracle func(ct, iv []byte) bool) {
	t.Helper()
	c := randomCipher(t)
	iv = randomBytes(t, aes.BlockSize)
	ct = crypto.Pad(nil, pt, aes.BlockSize)
	crypto.NewCBCEncrypter(c, iv).CryptBlocks(ct, ct)
	oracle = func(ct, iv []byte) bool {
		buf := make([]byte, len(ct))
		crypto.NewCBCDecrypter(c, iv).CryptBlocks(buf, ct)
		_, err := crypto.Unpad(buf)
		return err == nil
	}
	return iv, ct, oracle
}
