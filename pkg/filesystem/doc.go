// Package filesystem provides mode-aware opening of a single regular file as
// a random-access byte stream, along with the fd-level read/seek/close
// primitives that back it (on POSIX, read, write, open and fstat retry on
// EINTR; seek and close do not). It does not provide
// directory traversal, symbolic link resolution, or any of the broader
// filesystem-watching facilities that a synchronization tool needs — a
// patch's old/new targets are always a single regular file, opened in one of
// three fixed modes.
package filesystem
