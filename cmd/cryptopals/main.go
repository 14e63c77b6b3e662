// Command cryptopals runs one attack from the attack package against a
// victim built with a fresh random key, and logs what it recovered.
//
// Usage:
//
//	cryptopals [-workers n] [-keylen n] [-suffix s] attack
//
// where attack is one of ecb-suffix, ecb-prefix-suffix, padding-oracle,
// sha1-extend, md4-extend, mt-clone, mt-stream-seed.
package main

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"jayconrod.com/cryptanalysis/attack"
	"jayconrod.com/cryptanalysis/crypto"
)

var (
	workers = flag.Int("workers", 1, "goroutines used for each 256-way candidate search")
	keyLen  = flag.Int("keylen", 16, "length of the secret MAC key in bytes")
	suffix  = flag.String("suffix", ";admin=true", "data appended by length extension attacks")
)

const secretSuffix = "Um9sbGluJyBpbiBteSA1LjAKV2l0aCBteSByYWctdG9wIGRvd24gc28gbXkg" +
	"aGFpciBjYW4gYmxvdwpUaGUgZ2lybGllcyBvbiBzdGFuZGJ5IHdhdmluZyBq" +
	"dXN0IHRvIHNheSBoaQpEaWQgeW91IHN0b3A/IE5vLCBJIGp1c3QgZHJvdmUg" +
	"YnkK"

const cookie = "comment1=cooking%20MCs;userdata=foo;comment2=%20like%20a%20pound%20of%20bacon"

var attacks = map[string]func(*attack.Breaker) error{
	"ecb-suffix":        runECBSuffix,
	"ecb-prefix-suffix": runECBPrefixSuffix,
	"padding-oracle":    runPaddingOracle,
	"sha1-extend":       runSHA1Extend,
	"md4-extend":        runMD4Extend,
	"mt-clone":          runMTClone,
	"mt-stream-seed":    runMTStreamSeed,
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cryptopals: ")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	run, ok := attacks[flag.Arg(0)]
	if !ok {
		log.Fatalf("unknown attack %q", flag.Arg(0))
	}

	start := time.Now()
	if err := run(&attack.Breaker{Workers: *workers}); err != nil {
		log.Fatal(err)
	}
	log.Printf("%s done in %v", flag.Arg(0), time.Since(start).Round(time.Millisecond))
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: cryptopals [flags] attack\n\nattacks:\n")
	names := make([]string, 0, len(attacks))
	for name := range attacks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(flag.CommandLine.Output(), "\t%s\n", name)
	}
	fmt.Fprintf(flag.CommandLine.Output(), "\nflags:\n")
	flag.PrintDefaults()
}

func randomBytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal(err)
	}
	return buf
}

func randomCipher() cipher.Block {
	c, err := aes.NewCipher(randomBytes(aes.BlockSize))
	if err != nil {
		log.Fatal(err)
	}
	return c
}

func randomInt(max int) int {
	var b [8]byte
	copy(b[:], randomBytes(len(b)))
	return int(binary.LittleEndian.Uint64(b[:]) % uint64(max))
}

// ecbOracle returns a blackbox computing ECB(prefix ‖ input ‖ secret).
func ecbOracle(prefix, secret []byte) attack.Blackbox {
	enc := crypto.NewECBEncrypter(randomCipher())
	return func(input []byte) []byte {
		pt := make([]byte, 0, len(prefix)+len(input)+len(secret))
		pt = append(pt, prefix...)
		pt = append(pt, input...)
		pt = append(pt, secret...)
		ct := crypto.Pad(nil, pt, aes.BlockSize)
		enc.CryptBlocks(ct, ct)
		return ct
	}
}

func runECBSuffix(br *attack.Breaker) error {
	secret, err := base64.StdEncoding.DecodeString(secretSuffix)
	if err != nil {
		return err
	}
	return extractSuffix(br, ecbOracle(nil, secret), false)
}

func runECBPrefixSuffix(br *attack.Breaker) error {
	secret, err := base64.StdEncoding.DecodeString(secretSuffix)
	if err != nil {
		return err
	}
	prefix := randomBytes(randomInt(64))
	return extractSuffix(br, ecbOracle(prefix, secret), true)
}

func extractSuffix(br *attack.Breaker, bb attack.Blackbox, withPrefix bool) error {
	bs, err := attack.DetectBlockSize(bb)
	if err != nil {
		return err
	}
	log.Printf("block size %d", bs)
	if !attack.DetectECB(bb, bs) {
		return fmt.Errorf("blackbox does not encrypt in ECB mode")
	}
	log.Printf("ECB mode detected")

	var got []byte
	if withPrefix {
		n, err := attack.FindPrefixLength(bb, bs)
		if err != nil {
			return err
		}
		log.Printf("prefix length %d", n)
		got, err = br.ExtractSuffixAfterPrefix(bb, bs)
		if err != nil {
			return err
		}
	} else {
		got, err = br.ExtractSuffix(bb, bs)
		if err != nil {
			return err
		}
	}
	log.Printf("recovered %d bytes:\n%s", len(got), got)
	return nil
}

func runPaddingOracle(br *attack.Breaker) error {
	c := randomCipher()
	iv := randomBytes(aes.BlockSize)
	pt := []byte("000000Now that the party is jumping")
	ct := crypto.Pad(nil, pt, aes.BlockSize)
	crypto.NewCBCEncrypter(c, iv).CryptBlocks(ct, ct)

	var queries atomic.Int64
	oracle := func(ct, iv []byte) bool {
		queries.Add(1)
		buf := make([]byte, len(ct))
		crypto.NewCBCDecrypter(c, iv).CryptBlocks(buf, ct)
		_, err := crypto.Unpad(buf)
		return err == nil
	}

	got, err := br.DecryptCBC(oracle, iv, ct)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, pt) {
		return fmt.Errorf("decrypted %q, want %q", got, pt)
	}
	log.Printf("decrypted %q with %d oracle queries", got, queries.Load())
	return nil
}

func runSHA1Extend(*attack.Breaker) error {
	key := randomBytes(*keyLen)
	mac := crypto.SHA1KeyedMAC(key, []byte(cookie))
	verify := func(msg []byte, mac [crypto.SHA1Size]byte) bool {
		return crypto.SHA1ValidateMAC(key, msg, mac)
	}
	forged, forgedMAC, n, err := attack.ForgeSHA1(mac, []byte(cookie), []byte(*suffix), 2*(*keyLen)+64, verify)
	if err != nil {
		return err
	}
	log.Printf("key length %d; forged %q\nmac %x", n, forged, forgedMAC)
	return nil
}

func runMD4Extend(*attack.Breaker) error {
	key := randomBytes(*keyLen)
	mac := crypto.MD4KeyedMAC(key, []byte(cookie))
	verify := func(msg []byte, mac [crypto.MD4Size]byte) bool {
		return crypto.MD4ValidateMAC(key, msg, mac)
	}
	forged, forgedMAC, n, err := attack.ForgeMD4(mac, []byte(cookie), []byte(*suffix), 2*(*keyLen)+64, verify)
	if err != nil {
		return err
	}
	log.Printf("key length %d; forged %q\nmac %x", n, forged, forgedMAC)
	return nil
}

func runMTClone(*attack.Breaker) error {
	src := crypto.NewMT19937()
	src.Seed(uint32(time.Now().Unix()))
	outputs := make([]uint32, crypto.MT19937StateSize)
	for i := range outputs {
		outputs[i] = src.Uint32()
	}
	clone := attack.CloneMT19937(outputs)
	for i := 0; i < 1000; i++ {
		if want, got := src.Uint32(), clone.Uint32(); got != want {
			return fmt.Errorf("clone output %d: got %d, want %d", i, got, want)
		}
	}
	log.Printf("clone matched the next 1000 outputs")

	now := uint32(time.Now().Unix())
	seed := now - uint32(40+randomInt(960))
	src.Seed(seed)
	found, err := attack.RecoverTimeSeed(src.Uint32(), now, 2000)
	if err != nil {
		return err
	}
	log.Printf("timestamp seed %d recovered (%d seconds ago)", found, now-found)
	return nil
}

func runMTStreamSeed(*attack.Breaker) error {
	seed := uint32(randomInt(1 << 16))
	known := bytes.Repeat([]byte{'A'}, 14)
	pt := append(randomBytes(5+randomInt(20)), known...)
	ct := make([]byte, len(pt))
	crypto.NewMT19937Stream(seed).XORKeyStream(ct, pt)

	found, err := attack.RecoverStreamSeed(ct, known)
	if err != nil {
		return err
	}
	if uint32(found) != seed {
		return fmt.Errorf("recovered seed %d, want %d", found, seed)
	}
	log.Printf("stream seed %d recovered", found)
	return nil
}
