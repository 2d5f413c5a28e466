// Package bsdiff implements the BSDIFF40 patch interpreter: header parsing,
// triple-stream decoding, and the additive reconstruction loop that
// materializes a new image from an old image and a compressed patch.
package bsdiff

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

// headerLength is the length, in bytes, of the BSDIFF40 patch header.
const headerLength = 32

// magic is the required first 8 bytes of a BSDIFF40 patch.
var magic = []byte("BSDIFF40")

// header is the decoded form of a BSDIFF40 patch header.
type header struct {
	// ctrlLength is the compressed length, in bytes, of the ctrl
	// sub-stream.
	ctrlLength int64
	// diffLength is the compressed length, in bytes, of the diff
	// sub-stream.
	diffLength int64
	// newSize is the uncompressed length, in bytes, of the new image.
	newSize int64
}

// readHeader reads and validates a 32-byte BSDIFF40 header from r.
func readHeader(r io.Reader) (header, error) {
	var buf [headerLength]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return header{}, patcherror.Wrap(err, patcherror.KindCorruptPatch, "read patch header")
	}

	if !bytes.Equal(buf[:8], magic) {
		return header{}, patcherror.Wrap(
			errors.Errorf("bad magic %q", buf[:8]),
			patcherror.KindCorruptPatch, "validate patch magic",
		)
	}

	ctrlLength := DecodeSignMagnitude(buf[8:16])
	diffLength := DecodeSignMagnitude(buf[16:24])
	newSize := DecodeSignMagnitude(buf[24:32])

	if ctrlLength < 0 || diffLength < 0 || newSize < 0 {
		return header{}, patcherror.Wrap(
			errors.Errorf("negative header field (ctrl=%d diff=%d new=%d)", ctrlLength, diffLength, newSize),
			patcherror.KindCorruptPatch, "validate patch header",
		)
	}

	return header{ctrlLength: ctrlLength, diffLength: diffLength, newSize: newSize}, nil
}

// DecodeSignMagnitude decodes an 8-byte little-endian sign-magnitude integer
// (the "offtin" encoding used throughout the BSDIFF40 format). This is not
// two's complement: the magnitude occupies the low 7 bits of the final byte
// plus all of the preceding bytes, and the high bit of the final byte is a
// pure sign flag. Both encodings of zero (+0 and -0) decode to 0.
func DecodeSignMagnitude(b []byte) int64 {
	magnitude := int64(b[0]) |
		int64(b[1])<<8 |
		int64(b[2])<<16 |
		int64(b[3])<<24 |
		int64(b[4])<<32 |
		int64(b[5])<<40 |
		int64(b[6])<<48 |
		int64(b[7]&0x7f)<<56

	if b[7]&0x80 != 0 {
		return -magnitude
	}
	return magnitude
}

// EncodeSignMagnitude encodes v into an 8-byte little-endian sign-magnitude
// integer, the inverse of DecodeSignMagnitude. It's provided for symmetry
// and is exercised by tests; BSDIFF40 patch generation itself is out of
// scope for this package.
func EncodeSignMagnitude(v int64) [8]byte {
	var out [8]byte
	magnitude := v
	if magnitude < 0 {
		magnitude = -magnitude
	}
	out[0] = byte(magnitude)
	out[1] = byte(magnitude >> 8)
	out[2] = byte(magnitude >> 16)
	out[3] = byte(magnitude >> 24)
	out[4] = byte(magnitude >> 32)
	out[5] = byte(magnitude >> 40)
	out[6] = byte(magnitude >> 48)
	out[7] = byte(magnitude >> 56)
	if v < 0 {
		out[7] |= 0x80
	}
	return out
}
