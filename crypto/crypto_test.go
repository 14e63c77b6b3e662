package crypto_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"jayconrod.com/cryptanalysis/crypto"
)

func TestXOR(t *testing.T) {
	a, _ := hex.DecodeString("1c0111001f010100061a024b53535009181c")
	b, _ := hex.DecodeString("686974207468652062756c6c277320657965")
	got := hex.EncodeToString(crypto.XOR(nil, a, b))
	want := "746865206b696420646f6e277420706c6179"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestXORLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("XOR of different lengths did not panic")
		}
	}()
	crypto.XOR(nil, []byte("ab"), []byte("abc"))
}

func TestPad(t *testing.T) {
	for _, test := range []struct {
		src       string
		blockSize int
		want      string
	}{
		{"YELLOW SUBMARINE", 20, "YELLOW SUBMARINE\x04\x04\x04\x04"},
		{"YELLOW SUBMARINE", 16, "YELLOW SUBMARINE" + string(bytes.Repeat([]byte{16}, 16))},
		{"", 8, string(bytes.Repeat([]byte{8}, 8))},
		{"abc", 4, "abc\x01"},
	} {
		got := crypto.Pad(nil, []byte(test.src), test.blockSize)
		if string(got) != test.want {
			t.Errorf("Pad(%q, %d): got %q; want %q", test.src, test.blockSize, got, test.want)
		}
		if n := crypto.PadLength(len(test.src), test.blockSize); n != len(got) {
			t.Errorf("PadLength(%d, %d): got %d; want %d", len(test.src), test.blockSize, n, len(got))
		}
	}
}

func TestPadInPlace(t *testing.T) {
	buf := make([]byte, 5, 16)
	copy(buf, "hello")
	buf = crypto.Pad(buf[:0], buf, 8)
	if want := "hello\x03\x03\x03"; string(buf) != want {
		t.Errorf("got %q; want %q", buf, want)
	}
}

func TestUnpadRoundTrip(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog")
	for bs := 1; bs <= 255; bs += 7 {
		for n := 0; n <= len(msg); n++ {
			got, err := crypto.Unpad(crypto.Pad(nil, msg[:n], bs))
			if err != nil {
				t.Fatalf("block size %d, length %d: %v", bs, n, err)
			}
			if !bytes.Equal(got, msg[:n]) {
				t.Fatalf("block size %d, length %d: got %q", bs, n, got)
			}
		}
	}
}

func TestUnpad(t *testing.T) {
	for _, test := range []struct {
		text   string
		ok     bool
		pad    byte
		offset int
	}{
		{text: "", offset: -1},
		{text: "ICE ICE BABY\x04\x04\x04\x04", ok: true},
		{text: "ICE ICE BABY\x05\x05\x05\x05", pad: 5, offset: 11},
		{text: "ICE ICE BABY\x01\x02\x03\x04", pad: 4, offset: 12},
		{text: "ICE ICE BABY\x00", pad: 0, offset: 12},
		{text: "\x03\x03", pad: 3, offset: -1},
	} {
		_, err := crypto.Unpad([]byte(test.text))
		if err == nil {
			if !test.ok {
				t.Errorf("unexpected success: %q", test.text)
			}
			continue
		}
		if test.ok {
			t.Errorf("unexpected failure on %q: %v", test.text, err)
			continue
		}
		var perr *crypto.PaddingError
		if !errors.As(err, &perr) {
			t.Errorf("%q: got error %T; want *PaddingError", test.text, err)
			continue
		}
		if perr.Pad != test.pad || perr.Offset != test.offset {
			t.Errorf("%q: got pad %d at %d; want pad %d at %d", test.text, perr.Pad, perr.Offset, test.pad, test.offset)
		}
	}
}
