package persistence

// magic identifies a fuzzylink persistence file. It is written as the
// first four bytes of every saved file so Load can fail fast on a
// foreign or truncated file instead of producing a confusing decode
// error further in.
const magic uint32 = 0x464c4e4b // "FLNK"

// formatVersion is bumped whenever the on-disk snapshot shape changes
// in a way old readers cannot tolerate.
const formatVersion uint16 = 1

// FileHeader is the fixed-size prefix of a persistence file, written
// uncompressed so Load can validate it before touching the compressed
// payload.
type FileHeader struct {
	Magic    uint32
	Version  uint16
	Checksum uint32 // CRC-32 (IEEE) of the compressed payload that follows
}

// headerSize is the encoded size of FileHeader in bytes: magic (4) +
// version (2) + checksum (4).
const headerSize = 4 + 2 + 4
