package persistence

import (
	"hash/crc32"
	"io"
)

// ChecksumWriter wraps an io.Writer, accumulating a running CRC-32
// (IEEE) of everything written through it.
type ChecksumWriter struct {
	w   io.Writer
	crc uint32
}

// NewChecksumWriter wraps w.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{w: w}
}

func (c *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.crc = crc32.Update(c.crc, crc32.IEEETable, p[:n])
	return n, err
}

// Sum returns the CRC-32 of every byte written so far.
func (c *ChecksumWriter) Sum() uint32 { return c.crc }

// ChecksumReader wraps an io.Reader, accumulating a running CRC-32
// (IEEE) of everything read through it.
type ChecksumReader struct {
	r   io.Reader
	crc uint32
}

// NewChecksumReader wraps r.
func NewChecksumReader(r io.Reader) *ChecksumReader {
	return &ChecksumReader{r: r}
}

func (c *ChecksumReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.crc = crc32.Update(c.crc, crc32.IEEETable, p[:n])
	return n, err
}

// Sum returns the CRC-32 of every byte read so far.
func (c *ChecksumReader) Sum() uint32 { return c.crc }
