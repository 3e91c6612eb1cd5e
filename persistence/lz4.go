package persistence

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// SaveFileLZ4 writes the snapshot as an LZ4-framed file. The decompressed
// payload is byte-identical to the plain format, so framed snapshots remain
// convertible to the compatibility layout.
func SaveFileLZ4(filename string, snap *Snapshot) error {
	return saveToFile(filename, func(w io.Writer) error {
		zw := lz4.NewWriter(w)
		if err := Write(zw, snap); err != nil {
			return err
		}
		return zw.Close()
	})
}

// LoadFileLZ4 reads an LZ4-framed snapshot.
func LoadFileLZ4(filename string) (*Snapshot, error) {
	var snap *Snapshot
	err := loadFromFile(filename, func(r io.Reader) error {
		var err error
		snap, err = Read(lz4.NewReader(r))
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
