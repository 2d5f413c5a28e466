//go:build !windows

package filesystem

import (
	"golang.org/x/sys/unix"

	"github.com/pkg/errors"
)

// Open opens path for random access with the given Mode, returning a File
// that implements RandomAccessFile. The file must already exist: Open never
// creates it (ModeRead and ModeReadWrite would reject a missing file with
// ENOENT regardless, and ModeWrite deliberately omits O_CREAT so that a typo
// in a target path fails loudly rather than silently fabricating an empty
// file). No mode ever passes O_TRUNC — extent-backed targets may share the
// underlying file with data outside the extent span, and truncating it would
// destroy that data.
func Open(path string, mode Mode) (File, error) {
	var flags int
	switch mode {
	case ModeRead:
		flags = unix.O_RDONLY
	case ModeWrite:
		flags = unix.O_WRONLY
	case ModeReadWrite:
		flags = unix.O_RDWR
	default:
		return -1, errors.Errorf("unknown file mode: %v", mode)
	}

	descriptor, err := openRetryingOnEINTR(path, flags, 0)
	if err != nil {
		return -1, err
	}

	return File(descriptor), nil
}
