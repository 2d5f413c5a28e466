package bsdiff

import (
	"github.com/pkg/errors"

	"github.com/mutagen-io/extentpatch/pkg/extent"
	"github.com/mutagen-io/extentpatch/pkg/filesystem"
	"github.com/mutagen-io/extentpatch/pkg/logging"
	"github.com/mutagen-io/extentpatch/pkg/patcherror"
)

// maxNewImageSize is the sanity ceiling on a header-declared new-image
// size. A declared size above this is refused with KindTooLarge before any
// allocation is attempted, rather than letting a corrupt or malicious
// header drive an enormous allocation.
const maxNewImageSize = 1 << 30 // 1 GiB

// ApplyPatch applies the BSDIFF40 patch at patchPath against the old image
// at oldPath, writing the resulting new image to newPath. If oldExtents or
// newExtents is non-empty, the corresponding image is treated as
// extent-addressed rather than a contiguous file, per the grammar
// implemented by pkg/extent. logger may be nil, in which case application
// proceeds silently.
func ApplyPatch(oldPath, newPath, patchPath string, oldExtents, newExtents string, logger *logging.Logger) error {
	logger = logger.Sublogger("bsdiff")

	h, err := readPatchHeader(patchPath)
	if err != nil {
		return err
	}
	logger.Debugf("patch header: ctrl=%d diff=%d new=%d", h.ctrlLength, h.diffLength, h.newSize)

	if h.newSize > maxNewImageSize {
		return patcherror.Wrap(
			errors.Errorf("declared new-image size %d exceeds sanity ceiling of %d", h.newSize, maxNewImageSize),
			patcherror.KindTooLarge, "validate patch header",
		)
	}

	oldImage, oldSize, closeOld, err := openOldImage(oldPath, oldExtents)
	if err != nil {
		return err
	}
	defer closeOld()

	s, err := openStreams(patchPath, h)
	if err != nil {
		return err
	}
	defer s.close()

	// The +1 preserves a historical convention (going back to the original
	// BSDIFF implementation) of never allocating a zero-size buffer; it has
	// no other effect since the buffer is always sliced back down to
	// h.newSize before use.
	newBuf := make([]byte, h.newSize+1)[:h.newSize]

	if err := reconstruct(s, oldImage, oldSize, newBuf); err != nil {
		return err
	}
	logger.Debugf("reconstructed %d-byte new image", len(newBuf))

	newImage, closeNew, err := openNewImage(newPath, newExtents)
	if err != nil {
		return err
	}
	defer closeNew()

	if written, err := newImage.Write(newBuf); err != nil {
		return patcherror.WrapPath(err, patcherror.KindIO, "write new image", newPath)
	} else if written != len(newBuf) {
		return patcherror.WrapPath(
			errors.Errorf("wrote %d of %d bytes", written, len(newBuf)),
			patcherror.KindIO, "write new image", newPath,
		)
	}

	logger.Debug("patch applied successfully")
	return nil
}

// readPatchHeader opens patchPath just long enough to read and validate its
// 32-byte header.
func readPatchHeader(patchPath string) (header, error) {
	handle, err := filesystem.Open(patchPath, filesystem.ModeRead)
	if err != nil {
		return header{}, patcherror.WrapPath(err, patcherror.KindIO, "open patch file", patchPath)
	}
	defer handle.Close()

	return readHeader(handle)
}

// openOldImage opens the old image named by oldPath, either as a plain
// random-access file or, if oldExtents is non-empty, as an extent view over
// it, and reports its logical size along with a function that releases
// whatever resources it opened.
func openOldImage(oldPath, oldExtents string) (filesystem.RandomAccessFile, int64, func(), error) {
	handle, err := filesystem.Open(oldPath, filesystem.ModeRead)
	if err != nil {
		return nil, 0, func() {}, patcherror.WrapPath(err, patcherror.KindIO, "open old image", oldPath)
	}

	if oldExtents == "" {
		size, err := handle.Size()
		if err != nil {
			handle.Close()
			return nil, 0, func() {}, patcherror.WrapPath(err, patcherror.KindIO, "stat old image", oldPath)
		}
		return handle, size, func() { handle.Close() }, nil
	}

	extents, _, err := extent.Parse(oldExtents)
	if err != nil {
		handle.Close()
		return nil, 0, func() {}, err
	}

	view, err := extent.Open(handle, extent.ModeRead, extents)
	if err != nil {
		handle.Close()
		return nil, 0, func() {}, err
	}

	return view, view.Length(), func() { view.Close() }, nil
}

// openNewImage opens the new image named by newPath for writing, either as
// a plain random-access file or, if newExtents is non-empty, as an extent
// view over it, along with a function that releases whatever resources it
// opened.
func openNewImage(newPath, newExtents string) (filesystem.RandomAccessFile, func(), error) {
	handle, err := filesystem.Open(newPath, filesystem.ModeWrite)
	if err != nil {
		return nil, func() {}, patcherror.WrapPath(err, patcherror.KindIO, "open new image", newPath)
	}

	if newExtents == "" {
		return handle, func() { handle.Close() }, nil
	}

	extents, _, err := extent.Parse(newExtents)
	if err != nil {
		handle.Close()
		return nil, func() {}, err
	}

	view, err := extent.Open(handle, extent.ModeWrite, extents)
	if err != nil {
		handle.Close()
		return nil, func() {}, err
	}

	return view, func() { view.Close() }, nil
}
