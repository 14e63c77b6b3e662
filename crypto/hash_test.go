package crypto_test

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/md4"

	"jayconrod.com/cryptanalysis/crypto"
)

func TestSHA1Vectors(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq", "84983e441c3bd26ebaae4aa1f95129e5e54670f1"},
	} {
		got := crypto.SHA1Hash(crypto.SHA1Pad([]byte(test.in)))
		assert.Equal(t, test.want, hex.EncodeToString(got[:]), "SHA1Hash(pad(%q))", test.in)
		sum := crypto.SHA1Sum([]byte(test.in))
		assert.Equal(t, test.want, hex.EncodeToString(sum[:]), "SHA1Sum(%q)", test.in)
	}
}

func TestMD4Vectors(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"", "31d6cfe0d16ae931b73c59d7e0c089c0"},
		{"a", "bde52cb31de33e46245e05fbdbd6fb24"},
		{"abc", "a448017aaf21d8525fc10ae87aa6729d"},
		{"message digest", "d9130a8164549fe818874806e1c7014b"},
	} {
		got := crypto.MD4Hash(crypto.MD4Pad([]byte(test.in)))
		assert.Equal(t, test.want, hex.EncodeToString(got[:]), "MD4Hash(pad(%q))", test.in)
		sum := crypto.MD4Sum([]byte(test.in))
		assert.Equal(t, test.want, hex.EncodeToString(sum[:]), "MD4Sum(%q)", test.in)
	}
}

// Random messages hashed through both the one-shot and streaming APIs
// agree with the reference implementations.
func TestHashesMatchReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		msg := make([]byte, rnd.Intn(300))
		rnd.Read(msg)

		wantSHA1 := sha1.Sum(msg)
		gotSHA1 := crypto.SHA1Hash(crypto.SHA1Pad(msg))
		require.Equal(t, wantSHA1, gotSHA1, "length %d", len(msg))
		assert.Equal(t, wantSHA1[:], streamSum(crypto.NewSHA1(), msg, rnd), "streaming SHA1, length %d", len(msg))

		ref := md4.New()
		ref.Write(msg)
		wantMD4 := ref.Sum(nil)
		gotMD4 := crypto.MD4Hash(crypto.MD4Pad(msg))
		require.Equal(t, wantMD4, gotMD4[:], "length %d", len(msg))
		assert.Equal(t, wantMD4, streamSum(crypto.NewMD4(), msg, rnd), "streaming MD4, length %d", len(msg))
	}
}

func streamSum(h hash.Hash, msg []byte, rnd *rand.Rand) []byte {
	for len(msg) > 0 {
		n := rnd.Intn(len(msg)) + 1
		h.Write(msg[:n])
		msg = msg[n:]
	}
	return h.Sum(nil)
}

func TestPadding(t *testing.T) {
	for _, test := range []struct {
		n, wantLen int
	}{
		{0, 64},
		{1, 63},
		{55, 9},
		{56, 72},
		{57, 128 - 57},
		{63, 65},
		{64, 64},
		{119, 9},
		{120, 72},
	} {
		for _, algo := range []struct {
			name    string
			padding func(int) []byte
			order   binary.ByteOrder
		}{
			{"SHA1", crypto.SHA1Padding, binary.BigEndian},
			{"MD4", crypto.MD4Padding, binary.LittleEndian},
		} {
			pad := algo.padding(test.n)
			require.Len(t, pad, test.wantLen, "%s padding for %d bytes", algo.name, test.n)
			assert.Equal(t, byte(0x80), pad[0])
			assert.Zero(t, (test.n+len(pad))%64)
			for _, b := range pad[1 : len(pad)-8] {
				assert.Zero(t, b)
			}
			assert.Equal(t, uint64(test.n)*8, algo.order.Uint64(pad[len(pad)-8:]), "%s length field for %d bytes", algo.name, test.n)
		}
	}
}

func TestPadFakeSize(t *testing.T) {
	msg := []byte(";admin=true")
	got := crypto.SHA1PadFakeSize(msg, 1000)
	require.Len(t, got, 64)
	assert.Equal(t, msg, got[:len(msg)])
	assert.Equal(t, uint64(8000), binary.BigEndian.Uint64(got[56:]))

	got = crypto.MD4PadFakeSize(msg, 1000)
	require.Len(t, got, 64)
	assert.Equal(t, uint64(8000), binary.LittleEndian.Uint64(got[56:]))

	// With the true length the fake-size padding is ordinary padding.
	assert.Equal(t, crypto.SHA1Pad(msg), crypto.SHA1PadFakeSize(msg, len(msg)))
	assert.Equal(t, crypto.MD4Pad(msg), crypto.MD4PadFakeSize(msg, len(msg)))
}

func TestHashWithStateUnpaddedPanics(t *testing.T) {
	assert.Panics(t, func() { crypto.SHA1HashWithState([crypto.SHA1Size]byte{}, make([]byte, 65)) })
	assert.Panics(t, func() { crypto.MD4HashWithState([crypto.MD4Size]byte{}, make([]byte, 63)) })
}

// Hashing two blocks equals hashing the second block from the state left by
// the first.
func TestHashWithStateChains(t *testing.T) {
	msg := make([]byte, 100)
	for i := range msg {
		msg[i] = byte(i)
	}

	padded := crypto.SHA1Pad(msg)
	d := crypto.NewSHA1()
	d.Write(padded[:64])
	_, mid := d.Get()
	assert.Equal(t, crypto.SHA1Hash(padded), crypto.SHA1HashWithState(mid, padded[64:]))

	padded = crypto.MD4Pad(msg)
	m := crypto.NewMD4()
	m.Write(padded[:64])
	_, mid4 := m.Get()
	assert.Equal(t, crypto.MD4Hash(padded), crypto.MD4HashWithState(mid4, padded[64:]))
}

func TestKeyedMAC(t *testing.T) {
	key := []byte("1234")
	data := []byte("data")

	mac := crypto.SHA1KeyedMAC(key, data)
	assert.True(t, crypto.SHA1ValidateMAC(key, data, mac))
	assert.False(t, crypto.SHA1ValidateMAC([]byte("123"), data, mac))
	assert.False(t, crypto.SHA1ValidateMAC(key, []byte("new data"), mac))
	assert.Equal(t, sha1.Sum([]byte("1234data")), mac)

	mac4 := crypto.MD4KeyedMAC(key, data)
	assert.True(t, crypto.MD4ValidateMAC(key, data, mac4))
	assert.False(t, crypto.MD4ValidateMAC([]byte("123"), data, mac4))
	assert.False(t, crypto.MD4ValidateMAC(key, []byte("new data"), mac4))
}

// Seeding the streaming hashes with Set continues a hash exactly where Get
// left it.
func TestSetResumesStream(t *testing.T) {
	prefix := make([]byte, 128)
	suffix := []byte("appended after a block boundary")

	full := crypto.NewSHA1()
	full.Write(prefix)
	n, state := full.Get()
	full.Write(suffix)

	resumed := crypto.NewSHA1()
	resumed.Set(n, state)
	resumed.Write(suffix)
	assert.Equal(t, full.Sum(nil), resumed.Sum(nil))

	full4 := crypto.NewMD4()
	full4.Write(prefix)
	n, state4 := full4.Get()
	full4.Write(suffix)

	resumed4 := crypto.NewMD4()
	resumed4.Set(n, state4)
	resumed4.Write(suffix)
	assert.Equal(t, full4.Sum(nil), resumed4.Sum(nil))
}
