package bsdiff

import (
	"compress/bzip2"
	"io"

	"github.com/mutagen-io/extentpatch/pkg/filesystem"
	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

// streams bundles the three independent, strictly sequential decompression
// cursors over a BSDIFF40 patch's ctrl, diff, and extra sub-streams.
type streams struct {
	ctrl  io.Reader
	diff  io.Reader
	extra io.Reader

	// handles are the three independently opened file handles backing the
	// cursors above, each seeked to its own starting offset. They're kept
	// here only so that openStreams's caller can close them once
	// reconstruction completes.
	handles [3]filesystem.File
}

// openStreams opens three independent handles onto patchPath, seeked to the
// ctrl, diff, and extra sub-stream offsets implied by a parsed header, and
// wraps each in its own bzip2 decompressor. The ctrl and diff cursors are
// each bounded to their declared compressed length via io.LimitReader, so
// that a bzip2 decoder never reads past the end of its own sub-stream into
// the next one (the bzip2 container format transparently continues into a
// second concatenated stream if one follows, which would otherwise corrupt
// decoding of the following sub-stream). The extra cursor's length is
// implicit — it runs to the end of the patch file — so it's left unbounded;
// the bzip2 decoder stops at its own internal stream-end marker regardless.
func openStreams(patchPath string, h header) (*streams, error) {
	ctrlOffset := int64(headerLength)
	diffOffset := ctrlOffset + h.ctrlLength
	extraOffset := diffOffset + h.diffLength

	if diffOffset < ctrlOffset || extraOffset < diffOffset {
		return nil, patcherror.New(patcherror.KindCorruptPatch, "open patch sub-streams: declared lengths overflow")
	}

	var s streams
	offsets := [3]int64{ctrlOffset, diffOffset, extraOffset}
	for i, offset := range offsets {
		handle, err := filesystem.Open(patchPath, filesystem.ModeRead)
		if err != nil {
			closeOpened(s.handles[:i])
			return nil, patcherror.WrapPath(err, patcherror.KindIO, "open patch sub-stream handle", patchPath)
		}
		if _, err := handle.Seek(offset, io.SeekStart); err != nil {
			handle.Close()
			closeOpened(s.handles[:i])
			return nil, patcherror.WrapPath(err, patcherror.KindIO, "seek patch sub-stream handle", patchPath)
		}
		s.handles[i] = handle
	}

	s.ctrl = bzip2.NewReader(io.LimitReader(s.handles[0], h.ctrlLength))
	s.diff = bzip2.NewReader(io.LimitReader(s.handles[1], h.diffLength))
	s.extra = bzip2.NewReader(s.handles[2])

	return &s, nil
}

// close releases all three underlying file handles, returning the first
// error encountered (if any) after attempting to close every handle.
func (s *streams) close() error {
	var first error
	for _, handle := range s.handles {
		if err := handle.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func closeOpened(handles []filesystem.File) {
	for _, handle := range handles {
		handle.Close()
	}
}

// readFull reads exactly len(buf) bytes from r, translating a short read or
// decompression failure into a CorruptPatch error. Reaching end-of-stream
// exactly when the requested bytes have been produced is the success path;
// reaching it any earlier is corruption.
func readFull(r io.Reader, buf []byte, op string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return patcherror.Wrap(err, patcherror.KindCorruptPatch, op)
	}
	return nil
}
