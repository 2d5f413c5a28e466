package bsdiff

import (
	"io"

	"github.com/pkg/errors"

	"github.com/mutagen-io/extentpatch/pkg/filesystem"
	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

// controlTripleLength is the number of bytes occupied by a single (x, y, z)
// control triple: three 8-byte sign-magnitude integers.
const controlTripleLength = 24

// reconstruct drives the control/diff/extra loop described by the BSDIFF40
// format, filling newBuf (whose length is the header-declared new-image
// size) from the old image and the three decompressed sub-streams. old may
// be nil if oldSize is 0, in which case the additive step always
// contributes zero.
func reconstruct(s *streams, old filesystem.RandomAccessFile, oldSize int64, newBuf []byte) error {
	newSize := int64(len(newBuf))

	var oldPos, newPos int64
	var triple [controlTripleLength]byte

	for newPos < newSize {
		if err := readFull(s.ctrl, triple[:], "read control triple"); err != nil {
			return err
		}
		x := DecodeSignMagnitude(triple[0:8])
		y := DecodeSignMagnitude(triple[8:16])
		z := DecodeSignMagnitude(triple[16:24])

		if x < 0 || y < 0 {
			return patcherror.Wrap(
				errors.Errorf("control triple has negative copy length (x=%d y=%d)", x, y),
				patcherror.KindCorruptPatch, "validate control triple",
			)
		}

		if newPos+x > newSize {
			return patcherror.Wrap(
				errors.Errorf("additive copy of %d bytes at %d overruns new image of size %d", x, newPos, newSize),
				patcherror.KindCorruptPatch, "validate control triple",
			)
		}
		if err := readFull(s.diff, newBuf[newPos:newPos+x], "read diff bytes"); err != nil {
			return err
		}
		if err := addOldImage(old, oldSize, oldPos, newBuf[newPos:newPos+x]); err != nil {
			return err
		}
		newPos += x
		oldPos += x

		if newPos+y > newSize {
			return patcherror.Wrap(
				errors.Errorf("verbatim copy of %d bytes at %d overruns new image of size %d", y, newPos, newSize),
				patcherror.KindCorruptPatch, "validate control triple",
			)
		}
		if err := readFull(s.extra, newBuf[newPos:newPos+y], "read extra bytes"); err != nil {
			return err
		}
		newPos += y
		oldPos += z
	}

	if newPos != newSize {
		return patcherror.Wrap(
			errors.Errorf("reconstruction terminated at %d, expected %d", newPos, newSize),
			patcherror.KindCorruptPatch, "validate reconstruction termination",
		)
	}

	return nil
}

// addOldImage performs the additive copy step: for each byte of dst, if the
// corresponding old-image position oldPos+i falls within [0, oldSize), dst
// is incremented (mod 256) by the old-image byte at that position; bytes
// outside that range are left untouched (i.e. contribute zero). Rather than
// seeking the old view once per byte, the old view is seeked once to the
// start of the valid sub-range and the whole run is streamed in one read,
// per the spec's seek-locality optimization.
func addOldImage(old filesystem.RandomAccessFile, oldSize, oldPos int64, dst []byte) error {
	n := int64(len(dst))
	if n == 0 || old == nil {
		return nil
	}

	lo := oldPos
	hi := oldPos + n
	if lo < 0 {
		lo = 0
	}
	if hi > oldSize {
		hi = oldSize
	}
	if lo >= hi {
		return nil
	}

	if _, err := old.Seek(lo, io.SeekStart); err != nil {
		return patcherror.Wrap(err, patcherror.KindIO, "seek old image")
	}

	span := dst[lo-oldPos : hi-oldPos]
	oldBytes := make([]byte, len(span))
	if _, err := io.ReadFull(old, oldBytes); err != nil {
		return patcherror.Wrap(err, patcherror.KindIO, "read old image")
	}

	for i := range span {
		span[i] += oldBytes[i]
	}

	return nil
}
