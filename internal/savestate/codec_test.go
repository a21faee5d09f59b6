package savestate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestEncodeLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []Record{{"MouseX", 55}, {"GameLevel", -5}}); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if len(b) != 8+2*RecordSize {
		t.Fatalf("encoded %d bytes, want %d", len(b), 8+2*RecordSize)
	}
	if got := math.Float64frombits(binary.LittleEndian.Uint64(b)); got != 2 {
		t.Errorf("count = %v, want 2", got)
	}
	name := b[8 : 8+NameSize]
	if !bytes.HasPrefix(name, []byte("MouseX\x00")) {
		t.Errorf("name field %q", name)
	}
	if v := int32(binary.LittleEndian.Uint32(b[8+NameSize:])); v != 55 {
		t.Errorf("value = %d, want 55", v)
	}
	if v := int32(binary.LittleEndian.Uint32(b[8+RecordSize+NameSize:])); v != -5 {
		t.Errorf("second value = %d, want -5", v)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 100} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			in := make([]Record, n)
			for i := range in {
				in[i] = Record{Name: fmt.Sprintf("key-%03d", i), Value: int32(i*7 - 300)}
			}
			var buf bytes.Buffer
			if err := Encode(&buf, in); err != nil {
				t.Fatal(err)
			}
			out, err := Decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if len(out) != n {
				t.Fatalf("decoded %d records, want %d", len(out), n)
			}
			for i := range in {
				if in[i] != out[i] {
					t.Errorf("record %d: got %+v, want %+v", i, out[i], in[i])
				}
			}
		})
	}
}

func TestEncodeNameLimit(t *testing.T) {
	var buf bytes.Buffer
	full := strings.Repeat("n", NameSize)
	if err := Encode(&buf, []Record{{full, 1}}); err != nil {
		t.Fatalf("name of exactly %d bytes: %v", NameSize, err)
	}
	out, err := Decode(&buf)
	if err != nil || len(out) != 1 || out[0].Name != full {
		t.Fatalf("full-width name did not survive: %v %v", out, err)
	}

	err = Encode(&buf, []Record{{full + "x", 1}})
	if !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("got %v, want ErrNameTooLong", err)
	}
}

func TestEncodeRejectsNUL(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []Record{{"a\x00b", 1}})
	if !errors.Is(err, ErrNameHasNUL) {
		t.Fatalf("got %v, want ErrNameHasNUL", err)
	}
	if buf.Len() != 0 {
		t.Errorf("rejected encode wrote %d bytes", buf.Len())
	}
}

func TestEncodeTooManyRecords(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, make([]Record, MaxRecords+1))
	if !errors.Is(err, ErrTooManyRecords) {
		t.Fatalf("got %v, want ErrTooManyRecords", err)
	}
	if errors.Is(err, ErrCorrupt) {
		t.Error("oversized input reported as corrupt data")
	}
}

func TestDecodeTruncatesCount(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []Record{{"a", 1}, {"b", 2}}); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	binary.LittleEndian.PutUint64(b, math.Float64bits(1.9))
	out, err := Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Name != "a" {
		t.Fatalf("got %+v, want one record", out)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	count := func(f float64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(f))
		return b
	}
	cases := map[string][]byte{
		"short count":    {1, 2, 3},
		"negative count": count(-1),
		"nan count":      count(math.NaN()),
		"huge count":     count(1e12),
		"missing record": count(2),
		"partial record": append(count(1), make([]byte, RecordSize-1)...),
	}
	for name, data := range cases {
		if _, err := Decode(bytes.NewReader(data)); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: got %v, want ErrCorrupt", name, err)
		}
	}
}

func TestDecodeEmptyStream(t *testing.T) {
	out, err := Decode(bytes.NewReader(nil))
	if err != nil || len(out) != 0 {
		t.Fatalf("got %v %v, want no records and no error", out, err)
	}
}
