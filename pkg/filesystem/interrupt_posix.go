//go:build !windows

package filesystem

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// readRetryingOnEINTR is a wrapper around the read system call that retries
// on EINTR errors and returns on the first successful call or non-EINTR
// error.
func readRetryingOnEINTR(file int, buffer []byte) (int, error) {
	for {
		result, err := unix.Read(file, buffer)
		if errors.Is(err, unix.EINTR) {
			continue
		} else if err == nil && result == 0 {
			return 0, io.EOF
		}
		return result, err
	}
}

// writeRetryingOnEINTR is a wrapper around the write system call that
// retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func writeRetryingOnEINTR(file int, buffer []byte) (int, error) {
	for {
		result, err := unix.Write(file, buffer)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return result, err
	}
}

// seekConsideringEINTR is a direct passthrough to the lseek system call that
// doesn't retry on EINTR. It's only defined to highlight the intentional
// absence of seekRetryingOnEINTR. seekRetryingOnEINTR is left unimplemented
// because POSIX doesn't specify that lseek can return EINTR, and the Go
// standard library and runtime also invoke lseek without retrying on EINTR.
func seekConsideringEINTR(file int, offset int64, whence int) (int64, error) {
	return unix.Seek(file, offset, whence)
}

// closeConsideringEINTR is a direct passthrough to the close system call
// that doesn't retry on EINTR. It's only defined to highlight the
// intentional absence of closeRetryingOnEINTR. POSIX makes no guarantees
// about the state of a file descriptor in the event of an EINTR error, and
// retrying closure could race with file descriptor re-use if the file is, in
// fact, closed. This is the same policy adopted by the Go standard library
// and runtime.
func closeConsideringEINTR(file int) error {
	return unix.Close(file)
}

// openRetryingOnEINTR is a wrapper around the open system call that retries
// on EINTR errors and returns on the first successful call or non-EINTR
// error.
func openRetryingOnEINTR(path string, flags int, mode uint32) (int, error) {
	for {
		result, err := unix.Open(path, flags, mode)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return result, err
	}
}

// fstatRetryingOnEINTR is a wrapper around the fstat system call that
// retries on EINTR errors and returns on the first successful call or
// non-EINTR error.
func fstatRetryingOnEINTR(file int, metadata *unix.Stat_t) error {
	for {
		err := unix.Fstat(file, metadata)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}
