// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package csvio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oleg578/swiftcsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Quoting selects the field-quoting mode. The numeric values match the
// -q/--quoting flag.
type Quoting int

const (
	// QuoteMinimal quotes only fields containing the delimiter, the quote
	// character, or a line break.
	QuoteMinimal Quoting = iota
	// QuoteAll quotes every field.
	QuoteAll
	// QuoteNonNumeric quotes every field that does not parse as a number.
	QuoteNonNumeric
	// QuoteNone never quotes and treats the quote character literally.
	QuoteNone
)

// noQuote is a byte that cannot appear in text input. Handing it to the
// parser as the quote character effectively disables quote handling.
const noQuote byte = 0x01

// delimiterCandidates are tried in order against the first input line.
var delimiterCandidates = []byte{'|', '\t', ';', ','}

func (q Quoting) String() string {
	switch q {
	case QuoteAll:
		return "all"
	case QuoteNonNumeric:
		return "non-numeric"
	case QuoteNone:
		return "none"
	default:
		return "minimal"
	}
}

// ParseQuoting validates the numeric flag value.
func ParseQuoting(v int) (Quoting, error) {
	if v < 0 || v > 3 {
		return QuoteMinimal, fmt.Errorf("invalid quoting mode %d: must be 0 (minimal), 1 (all), 2 (non-numeric) or 3 (none)", v)
	}
	return Quoting(v), nil
}

// Dialect describes how a delimited file is tokenized and encoded. The zero
// Delimiter means "sniff from the first line".
type Dialect struct {
	Delimiter byte
	Quoting   Quoting
	Encoding  string
}

// DetectDelimiter sniffs the field delimiter from the first line of r,
// trying pipe, tab, semicolon and comma in that order. Falls back to comma
// when none appears. r should already be decoded to UTF-8.
func DetectDelimiter(r io.Reader) byte {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return ','
	}

	for _, candidate := range delimiterCandidates {
		if strings.IndexByte(line, candidate) >= 0 {
			return candidate
		}
	}
	return ','
}

// Reader is a dialect-aware row source. It satisfies pipeline.RowReader and
// tolerates ragged rows: records are returned with however many fields they
// contain.
type Reader struct {
	cr *swiftcsv.Reader
}

// NewReader wraps r with charset decoding per the dialect and returns a
// configured CSV reader.
func NewReader(r io.Reader, d Dialect) (*Reader, error) {
	decoded, err := DecodeReader(r, d.Encoding)
	if err != nil {
		return nil, err
	}

	cr := swiftcsv.NewReader(decoded)
	if d.Delimiter != 0 {
		cr.Comma = d.Delimiter
	}
	if d.Quoting == QuoteNone {
		cr.Quote = noQuote
	}

	return &Reader{cr: cr}, nil
}

// Read returns the next record. Width enforcement is reset on every call so
// short or long rows pass through; the filtering layer owns out-of-range
// semantics.
func (r *Reader) Read() ([]string, error) {
	r.cr.FieldsPerRecord = 0
	return r.cr.Read()
}

// Writer emits records per the dialect. The minimal and all modes delegate
// to swiftcsv; non-numeric and none have no equivalent in any Go CSV
// library and are written field-wise here, with the same quote-doubling
// escape swiftcsv uses.
type Writer struct {
	dialect Dialect
	sw      *swiftcsv.Writer
	raw     *bufio.Writer
}

// NewWriter wraps w with charset encoding per the dialect and returns a
// configured CSV writer.
func NewWriter(w io.Writer, d Dialect) (*Writer, error) {
	encoded, err := EncodeWriter(w, d.Encoding)
	if err != nil {
		return nil, err
	}
	if d.Delimiter == 0 {
		d.Delimiter = ','
	}

	cw := &Writer{dialect: d}
	switch d.Quoting {
	case QuoteMinimal, QuoteAll:
		cw.sw = swiftcsv.NewWriter(encoded)
		cw.sw.Comma = d.Delimiter
		cw.sw.AlwaysQuote = d.Quoting == QuoteAll
	default:
		cw.raw = bufio.NewWriter(encoded)
	}

	return cw, nil
}

// Write emits a single record terminated with a newline.
func (w *Writer) Write(record []string) error {
	if w.sw != nil {
		return w.sw.Write(record)
	}

	for i, field := range record {
		if i > 0 {
			if err := w.raw.WriteByte(w.dialect.Delimiter); err != nil {
				return err
			}
		}
		if err := w.writeField(field); err != nil {
			return err
		}
	}
	return w.raw.WriteByte('\n')
}

// Flush flushes pending buffered output.
func (w *Writer) Flush() error {
	if w.sw != nil {
		return w.sw.Flush()
	}
	return w.raw.Flush()
}

func (w *Writer) writeField(field string) error {
	quoted := false
	if w.dialect.Quoting == QuoteNonNumeric {
		_, err := strconv.ParseFloat(field, 64)
		quoted = err != nil
	}

	if !quoted {
		_, err := w.raw.WriteString(field)
		return err
	}

	if err := w.raw.WriteByte('"'); err != nil {
		return err
	}
	if _, err := w.raw.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
		return err
	}
	return w.raw.WriteByte('"')
}

// DecodeReader wraps r so its content is decoded from the named IANA
// charset to UTF-8. An empty name or any spelling of UTF-8 passes through.
func DecodeReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return enc.NewDecoder().Reader(r), nil
}

// EncodeWriter wraps w so UTF-8 content written to it is encoded to the
// named IANA charset.
func EncodeWriter(w io.Writer, name string) (io.Writer, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return w, nil
	}
	return enc.NewEncoder().Writer(w), nil
}

// lookupEncoding resolves an IANA charset name. UTF-8 (and the empty name)
// resolve to nil, meaning no transformation is needed.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}
