package bsdiff

import (
	"bytes"
	"testing"

	"github.com/dsnet/compress/bzip2"
)

// bzip2Compress compresses data with the best-compression bzip2 writer
// configuration, mirroring the only real BSDIFF40 patch generator present
// in the retrieval pack. The standard library provides no bzip2 encoder, so
// this is the only way to build genuine compressed fixtures for round-trip
// tests.
func bzip2Compress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		t.Fatalf("bzip2.NewWriter failed: %v", err)
	}
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("bzip2 write failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("bzip2 close failed: %v", err)
	}

	return buf.Bytes()
}

// controlTriple encodes a single (x, y, z) control triple in the wire
// format the ctrl sub-stream expects.
func controlTriple(x, y, z int64) []byte {
	var buf bytes.Buffer
	xb := EncodeSignMagnitude(x)
	yb := EncodeSignMagnitude(y)
	zb := EncodeSignMagnitude(z)
	buf.Write(xb[:])
	buf.Write(yb[:])
	buf.Write(zb[:])
	return buf.Bytes()
}

// buildPatch assembles a complete BSDIFF40 patch file from a sequence of
// control triples, diff bytes, and extra bytes, compressing each
// sub-stream independently exactly as the real format requires.
func buildPatch(t *testing.T, ctrl, diff, extra []byte, newSize int64) []byte {
	t.Helper()

	ctrlCompressed := bzip2Compress(t, ctrl)
	diffCompressed := bzip2Compress(t, diff)
	extraCompressed := bzip2Compress(t, extra)

	var out bytes.Buffer
	out.Write(magic)
	xb := EncodeSignMagnitude(int64(len(ctrlCompressed)))
	yb := EncodeSignMagnitude(int64(len(diffCompressed)))
	nb := EncodeSignMagnitude(newSize)
	out.Write(xb[:])
	out.Write(yb[:])
	out.Write(nb[:])
	out.Write(ctrlCompressed)
	out.Write(diffCompressed)
	out.Write(extraCompressed)

	return out.Bytes()
}
