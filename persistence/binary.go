package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var byteOrder = binary.LittleEndian

// Write serializes the snapshot to w in the exact binary layout.
func Write(w io.Writer, snap *Snapshot) error {
	for _, v := range []uint32{snap.M, snap.L, snap.D, snap.N, snap.S} {
		if err := binary.Write(w, byteOrder, v); err != nil {
			return err
		}
	}

	for t := range snap.Tables {
		rec := &snap.Tables[t]
		if err := binary.Write(w, byteOrder, rec.RndArray); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, uint32(len(rec.Buckets))); err != nil {
			return err
		}
		for code, ids := range rec.Buckets {
			if err := binary.Write(w, byteOrder, code); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, uint32(len(ids))); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, ids); err != nil {
				return err
			}
		}
		for _, projection := range rec.Projections {
			if err := binary.Write(w, byteOrder, projection); err != nil {
				return err
			}
		}
	}
	return nil
}

// Read deserializes a snapshot from r. Lengths inconsistent with the
// remaining bytes are reported as a decode failure wrapping
// ErrMalformedIndex.
func Read(r io.Reader) (*Snapshot, error) {
	snap := &Snapshot{}
	for _, v := range []*uint32{&snap.M, &snap.L, &snap.D, &snap.N, &snap.S} {
		if err := binary.Read(r, byteOrder, v); err != nil {
			return nil, decodeErr("parameter", err)
		}
	}
	if snap.N < 1 || snap.N > 64 {
		return nil, fmt.Errorf("%w: N=%d", ErrInvalidBitWidth, snap.N)
	}

	snap.Tables = make([]TableRecord, snap.L)
	for t := range snap.Tables {
		rec := &snap.Tables[t]

		rec.RndArray = make([]uint32, snap.N)
		if err := binary.Read(r, byteOrder, rec.RndArray); err != nil {
			return nil, decodeErr("random array", err)
		}

		var bucketCount uint32
		if err := binary.Read(r, byteOrder, &bucketCount); err != nil {
			return nil, decodeErr("bucket count", err)
		}
		rec.Buckets = make(map[uint64][]uint32, bucketCount)
		for i := uint32(0); i < bucketCount; i++ {
			var code uint64
			if err := binary.Read(r, byteOrder, &code); err != nil {
				return nil, decodeErr("bucket code", err)
			}
			var length uint32
			if err := binary.Read(r, byteOrder, &length); err != nil {
				return nil, decodeErr("bucket length", err)
			}
			ids := make([]uint32, length)
			if err := binary.Read(r, byteOrder, ids); err != nil {
				return nil, decodeErr("bucket ids", err)
			}
			rec.Buckets[code] = ids
		}

		rec.Projections = make([][]float32, snap.N)
		for i := range rec.Projections {
			rec.Projections[i] = make([]float32, snap.D)
			if err := binary.Read(r, byteOrder, rec.Projections[i]); err != nil {
				return nil, decodeErr("projection", err)
			}
		}
	}
	return snap, nil
}

func decodeErr(section string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedIndex, section, err)
}

// SaveFile writes the snapshot to filename atomically: the data goes to a
// temp file in the same directory which is renamed over the target.
func SaveFile(filename string, snap *Snapshot) error {
	return saveToFile(filename, func(w io.Writer) error {
		return Write(w, snap)
	})
}

// LoadFile reads a snapshot from filename.
func LoadFile(filename string) (*Snapshot, error) {
	var snap *Snapshot
	err := loadFromFile(filename, func(r io.Reader) error {
		var err error
		snap, err = Read(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func saveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

func loadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewReaderSize(f, 256*1024)
	return readFunc(buf)
}
