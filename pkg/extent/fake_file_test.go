package extent

import (
	"io"
)

// fakeFile is an in-memory filesystem.RandomAccessFile used to exercise
// View without touching a real file descriptor. Writes past the current
// end of buf grow it (zero-filling any gap), mirroring how a regular file
// behaves when written past its current length.
type fakeFile struct {
	buf    []byte
	pos    int64
	closed bool
}

func newFakeFile(contents []byte) *fakeFile {
	buf := make([]byte, len(contents))
	copy(buf, contents)
	return &fakeFile{buf: buf}
}

func (f *fakeFile) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.buf)) {
		return 0, io.EOF
	}
	n := copy(p, f.buf[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *fakeFile) Write(p []byte) (int, error) {
	end := f.pos + int64(len(p))
	if end > int64(len(f.buf)) {
		grown := make([]byte, end)
		copy(grown, f.buf)
		f.buf = grown
	}
	n := copy(f.buf[f.pos:end], p)
	f.pos += int64(n)
	return n, nil
}

func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.pos + offset
	case io.SeekEnd:
		target = int64(len(f.buf)) + offset
	}
	f.pos = target
	return target, nil
}

func (f *fakeFile) Close() error {
	f.closed = true
	return nil
}

func (f *fakeFile) Size() (int64, error) {
	return int64(len(f.buf)), nil
}
