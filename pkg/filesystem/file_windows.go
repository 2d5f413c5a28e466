package filesystem

import (
	"golang.org/x/sys/windows"
)

// File is the random-access file implementation used on Windows systems. It
// wraps a raw handle obtained from windows.CreateFile rather than an
// *os.File so that Open can apply the exact no-create, no-truncate
// semantics that ModeWrite requires.
type File windows.Handle

// Read implements io.Reader.Read.
func (f File) Read(buffer []byte) (int, error) {
	var read uint32
	err := windows.ReadFile(windows.Handle(f), buffer, &read, nil)
	if err != nil {
		return int(read), err
	}
	return int(read), nil
}

// Write implements io.Writer.Write.
func (f File) Write(buffer []byte) (int, error) {
	var written uint32
	err := windows.WriteFile(windows.Handle(f), buffer, &written, nil)
	if err != nil {
		return int(written), err
	}
	return int(written), nil
}

// Seek implements io.Seeker.Seek.
func (f File) Seek(offset int64, whence int) (int64, error) {
	return windows.Seek(windows.Handle(f), offset, whence)
}

// Close implements io.Closer.Close.
func (f File) Close() error {
	return windows.CloseHandle(windows.Handle(f))
}

// Size implements RandomAccessFile.Size.
func (f File) Size() (int64, error) {
	var size int64
	if err := windows.GetFileSizeEx(windows.Handle(f), &size); err != nil {
		return 0, err
	}
	return size, nil
}
