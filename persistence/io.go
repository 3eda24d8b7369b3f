package persistence

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"fuzzylink/backbone"
	"fuzzylink/model"
)

// Save writes a full snapshot of bb and reference to w: gob-encode the
// Snapshot, compress it with zstd, checksum the compressed bytes with
// CRC-32, and prefix the whole thing with a FileHeader so Load can
// validate before decoding (spec.md §4.10).
func Save(w io.Writer, bb *backbone.Backbone, reference model.Table) error {
	snap := BuildSnapshot(bb, reference, uuid.NewString())

	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(snap); err != nil {
		return fmt.Errorf("persistence: encoding snapshot: %w", err)
	}

	var compressed bytes.Buffer
	zw, err := zstd.NewWriter(&compressed)
	if err != nil {
		return fmt.Errorf("persistence: opening compressor: %w", err)
	}

	if _, err := zw.Write(encoded.Bytes()); err != nil {
		zw.Close()
		return fmt.Errorf("persistence: compressing snapshot: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("persistence: closing compressor: %w", err)
	}

	header := FileHeader{
		Magic:    magic,
		Version:  formatVersion,
		Checksum: crc32Of(compressed.Bytes()),
	}

	if err := writeHeader(w, header); err != nil {
		return err
	}

	_, err = w.Write(compressed.Bytes())
	return err
}

// Load reads and validates a snapshot written by Save, decompressing
// and gob-decoding it after confirming the magic number, version, and
// checksum all check out.
func Load(r io.Reader) (Snapshot, error) {
	header, err := readHeader(r)
	if err != nil {
		return Snapshot{}, err
	}

	if header.Magic != magic {
		return Snapshot{}, ErrNotAFile
	}

	if header.Version != formatVersion {
		return Snapshot{}, &ErrVersion{Version: header.Version}
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("persistence: reading payload: %w", err)
	}

	if crc32Of(compressed) != header.Checksum {
		return Snapshot{}, ErrChecksumMismatch
	}

	zr, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return Snapshot{}, fmt.Errorf("persistence: opening decompressor: %w", err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := gob.NewDecoder(zr).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("persistence: decoding snapshot: %w", err)
	}

	return snap, nil
}

func writeHeader(w io.Writer, h FileHeader) error {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint16(buf[4:6], h.Version)
	binary.BigEndian.PutUint32(buf[6:10], h.Checksum)

	_, err := w.Write(buf)
	return err
}

func readHeader(r io.Reader) (FileHeader, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return FileHeader{}, fmt.Errorf("persistence: reading header: %w", err)
	}

	return FileHeader{
		Magic:    binary.BigEndian.Uint32(buf[0:4]),
		Version:  binary.BigEndian.Uint16(buf[4:6]),
		Checksum: binary.BigEndian.Uint32(buf[6:10]),
	}, nil
}

func crc32Of(b []byte) uint32 {
	cw := NewChecksumWriter(io.Discard)
	_, _ = cw.Write(b)
	return cw.Sum()
}
