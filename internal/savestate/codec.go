package savestate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

const (
	// NameSize is the fixed width of a record's name field, NUL padded.
	NameSize = 32
	// RecordSize is the on-disk size of one record: name followed by a little-endian int32.
	RecordSize = NameSize + 4
	// countSize is the width of the leading record count, stored as a little-endian float64.
	countSize = 8
	// MaxRecords bounds the count accepted by Decode.
	MaxRecords = 1 << 16
)

var (
	ErrNameTooLong    = errors.New("savestate: record name too long")
	ErrNameHasNUL     = errors.New("savestate: record name contains NUL")
	ErrTooManyRecords = errors.New("savestate: too many records")
	ErrCorrupt        = errors.New("savestate: corrupt state data")
)

// Record is one named integer of persisted state.
type Record struct {
	Name  string
	Value int32
}

// Encode writes recs as [count float64][count x record] in a single write.
func Encode(w io.Writer, recs []Record) error {
	if len(recs) > MaxRecords {
		return fmt.Errorf("%w: %d, limit %d", ErrTooManyRecords, len(recs), MaxRecords)
	}
	buf := make([]byte, countSize+len(recs)*RecordSize)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(float64(len(recs))))

	off := countSize
	for _, r := range recs {
		if len(r.Name) > NameSize {
			return fmt.Errorf("%w: %q is %d bytes, limit %d", ErrNameTooLong, r.Name, len(r.Name), NameSize)
		}
		// a NUL would end the name early on decode
		if strings.IndexByte(r.Name, 0) >= 0 {
			return fmt.Errorf("%w: %q", ErrNameHasNUL, r.Name)
		}
		copy(buf[off:off+NameSize], r.Name)
		binary.LittleEndian.PutUint32(buf[off+NameSize:], uint32(r.Value))
		off += RecordSize
	}

	_, err := w.Write(buf)
	return err
}

// Decode reads a record list written by Encode. The count is truncated to an integer.
// An empty stream decodes to no records.
func Decode(r io.Reader) ([]Record, error) {
	var hdr [countSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading count: %v", ErrCorrupt, err)
	}

	f := math.Float64frombits(binary.LittleEndian.Uint64(hdr[:]))
	if math.IsNaN(f) || f < 0 || f > MaxRecords {
		return nil, fmt.Errorf("%w: count %v", ErrCorrupt, f)
	}
	n := int(f)

	recs := make([]Record, 0, n)
	var rec [RecordSize]byte
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return nil, fmt.Errorf("%w: record %d of %d: %v", ErrCorrupt, i, n, err)
		}
		recs = append(recs, Record{
			Name:  cstring(rec[:NameSize]),
			Value: int32(binary.LittleEndian.Uint32(rec[NameSize:])),
		})
	}
	return recs, nil
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
