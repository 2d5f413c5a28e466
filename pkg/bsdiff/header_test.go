package bsdiff

import (
	"bytes"
	"math"
	"testing"

	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

func TestSignMagnitudeRoundTrip(t *testing.T) {
	values := []int64{
		0, 1, -1, 255, -255, 1 << 20, -(1 << 20),
		math.MaxInt64 - (math.MaxInt64 >> 7 << 7), // arbitrary small positive
		(1 << 62), -(1 << 62),
	}
	for _, v := range values {
		encoded := EncodeSignMagnitude(v)
		if decoded := DecodeSignMagnitude(encoded[:]); decoded != v {
			t.Errorf("round trip for %d produced %d", v, decoded)
		}
	}
}

func TestSignMagnitudeNegativeZero(t *testing.T) {
	// A -0 encoding (high bit set, magnitude zero) must decode to 0.
	negativeZero := [8]byte{0, 0, 0, 0, 0, 0, 0, 0x80}
	if decoded := DecodeSignMagnitude(negativeZero[:]); decoded != 0 {
		t.Errorf("decoding -0 produced %d, want 0", decoded)
	}
}

func TestSignMagnitudeHighBitIsSignOnly(t *testing.T) {
	// 0x7F in the final byte is part of the magnitude, not the sign; only
	// the 0x80 bit is the sign flag. This is what distinguishes the
	// encoding from two's complement.
	allMagnitudeBits := [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}
	decoded := DecodeSignMagnitude(allMagnitudeBits[:])
	if decoded <= 0 {
		t.Errorf("expected a large positive magnitude, got %d", decoded)
	}
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("BSDIFF41")
	xb := EncodeSignMagnitude(0)
	yb := EncodeSignMagnitude(0)
	nb := EncodeSignMagnitude(0)
	buf.Write(xb[:])
	buf.Write(yb[:])
	buf.Write(nb[:])

	_, err := readHeader(&buf)
	if err == nil {
		t.Fatal("expected an error for bad magic, got nil")
	}
	if patcherror.KindOf(err) != patcherror.KindCorruptPatch {
		t.Errorf("expected KindCorruptPatch, got %v", patcherror.KindOf(err))
	}
}

func TestReadHeaderRejectsNegativeLengths(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(magic)
	xb := EncodeSignMagnitude(-1)
	yb := EncodeSignMagnitude(0)
	nb := EncodeSignMagnitude(0)
	buf.Write(xb[:])
	buf.Write(yb[:])
	buf.Write(nb[:])

	_, err := readHeader(&buf)
	if err == nil {
		t.Fatal("expected an error for negative header field, got nil")
	}
	if patcherror.KindOf(err) != patcherror.KindCorruptPatch {
		t.Errorf("expected KindCorruptPatch, got %v", patcherror.KindOf(err))
	}
}

func TestReadHeaderAcceptsValidHeader(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(magic)
	xb := EncodeSignMagnitude(10)
	yb := EncodeSignMagnitude(20)
	nb := EncodeSignMagnitude(30)
	buf.Write(xb[:])
	buf.Write(yb[:])
	buf.Write(nb[:])

	h, err := readHeader(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ctrlLength != 10 || h.diffLength != 20 || h.newSize != 30 {
		t.Errorf("got %+v, want ctrl=10 diff=20 new=30", h)
	}
}
