// Package csv provides stream adapters for CSV encoding and decoding.
// It enables reading and writing CSV data as part of flow pipelines.
package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/lguimbarda/pushflow/flow/core"
	flowio "github.com/lguimbarda/pushflow/flow/io"
)

// ErrFieldCount is returned by ByHeader for records whose length differs
// from the header.
var ErrFieldCount = errors.New("csv: record does not match header")

// ReaderOption configures a CSV reader.
type ReaderOption func(*csv.Reader)

// WithComma sets the field delimiter (default is ',').
func WithComma(comma rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comma = comma
	}
}

// WithComment sets the comment character. Lines beginning with this
// character are ignored.
func WithComment(comment rune) ReaderOption {
	return func(r *csv.Reader) {
		r.Comment = comment
	}
}

// WithFieldsPerRecord sets the expected number of fields per record.
// If positive, each record must have exactly that many fields.
// If 0, the number is set to the first record's field count.
// If negative, no check is made and records may have variable fields.
func WithFieldsPerRecord(n int) ReaderOption {
	return func(r *csv.Reader) {
		r.FieldsPerRecord = n
	}
}

// WithLazyQuotes allows lazy quotes in quoted fields.
func WithLazyQuotes(lazy bool) ReaderOption {
	return func(r *csv.Reader) {
		r.LazyQuotes = lazy
	}
}

// WithTrimLeadingSpace trims leading whitespace from fields.
func WithTrimLeadingSpace(trim bool) ReaderOption {
	return func(r *csv.Reader) {
		r.TrimLeadingSpace = trim
	}
}

// WriterOption configures a CSV writer.
type WriterOption func(*csv.Writer)

// WithWriterComma sets the field delimiter for writing (default is ',').
func WithWriterComma(comma rune) WriterOption {
	return func(w *csv.Writer) {
		w.Comma = comma
	}
}

// WithUseCRLF sets whether to use \r\n as the line terminator.
func WithUseCRLF(useCRLF bool) WriterOption {
	return func(w *csv.Writer) {
		w.UseCRLF = useCRLF
	}
}

func newReader(r io.Reader, opts []ReaderOption) *csv.Reader {
	reader := csv.NewReader(r)
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

func newWriter(w io.Writer, opts []WriterOption) *csv.Writer {
	writer := csv.NewWriter(w)
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// ReadRecords creates a Stream that emits each row from a CSV file as a string slice.
// The file is opened on every invocation. Malformed rows are emitted as
// errors and reading continues with the next row.
func ReadRecords(path string, opts ...ReaderOption) core.Stream[core.Result[[]string]] {
	return ReadRecordsFrom(func() (io.ReadCloser, error) {
		return os.Open(path)
	}, opts...)
}

// ReadRecordsFrom creates a Stream that reads CSV records from the reader
// returned by open, calling it once per invocation.
func ReadRecordsFrom(open flowio.Opener, opts ...ReaderOption) core.Stream[core.Result[[]string]] {
	return func(r core.Consumer[core.Result[[]string]]) bool {
		rc, err := open()
		if err != nil {
			return r(core.Err[[]string](fmt.Errorf("open: %w", err)))
		}
		defer rc.Close()

		return readAll(newReader(rc, opts), r)
	}
}

// readAll pushes every record of reader into r. Parse errors are emitted
// and skipped; any other read error ends the stream.
func readAll(reader *csv.Reader, r core.Consumer[core.Result[[]string]]) bool {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return true
		}
		if err != nil {
			if !r(core.Err[[]string](err)) {
				return false
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return true
		}
		if !r(core.Ok(record)) {
			return false
		}
	}
}

// Decode creates a Transformer that parses CSV records from a stream of
// byte chunks, such as the one returned by io.ReadBytes. Records may span
// chunk boundaries. An upstream error ends decoding and is emitted as is.
func Decode(opts ...ReaderOption) core.Transformer[core.Result[[]byte], core.Result[[]string]] {
	return core.TransformerFunc[core.Result[[]byte], core.Result[[]string]](func(s core.Stream[core.Result[[]byte]]) core.Stream[core.Result[[]string]] {
		return func(r core.Consumer[core.Result[[]string]]) bool {
			next, stop := iter.Pull(core.Seq(s))
			defer stop()

			return readAll(newReader(&chunkReader{next: next}, opts), r)
		}
	})
}

// chunkReader turns pulled byte chunks into an io.Reader.
type chunkReader struct {
	next func() (core.Result[[]byte], bool)
	buf  []byte
}

func (c *chunkReader) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		res, ok := c.next()
		if !ok {
			return 0, io.EOF
		}
		chunk, err := res.Unwrap()
		if err != nil {
			return 0, err
		}
		c.buf = chunk
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

// Encode creates a Transformer that encodes each record as one CSV line.
func Encode(opts ...WriterOption) core.Transformer[[]string, core.Result[[]byte]] {
	return core.TransformerFunc[[]string, core.Result[[]byte]](func(s core.Stream[[]string]) core.Stream[core.Result[[]byte]] {
		return core.Select(s, func(record []string) core.Result[[]byte] {
			var buf bytes.Buffer
			writer := newWriter(&buf, opts)
			if err := writer.Write(record); err != nil {
				return core.Err[[]byte](err)
			}
			writer.Flush()
			if err := writer.Error(); err != nil {
				return core.Err[[]byte](err)
			}
			return core.Ok(buf.Bytes())
		})
	})
}

// WriteRecords writes every record of s to w and returns the number of
// records written. It stops s at the first write error.
func WriteRecords(w io.Writer, s core.Stream[[]string], opts ...WriterOption) (int, error) {
	writer := newWriter(w, opts)
	written := 0
	var writeErr error
	s(func(record []string) bool {
		if err := writer.Write(record); err != nil {
			writeErr = err
			return false
		}
		written++
		return true
	})
	if writeErr != nil {
		return written, writeErr
	}
	writer.Flush()
	return written, writer.Error()
}

// WriteFile writes every record of s to the file at path.
// The file is created if it doesn't exist, or truncated if it does.
func WriteFile(path string, s core.Stream[[]string], opts ...WriterOption) (n int, err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteRecords(file, s, opts...)
}

// WriteRecordsTo creates a Transformer that writes CSV records to w and then
// passes each one on. A failed write is emitted as an error in place of the
// record. Output is flushed when each invocation returns.
func WriteRecordsTo(w io.Writer, opts ...WriterOption) core.Transformer[[]string, core.Result[[]string]] {
	return core.TransformerFunc[[]string, core.Result[[]string]](func(s core.Stream[[]string]) core.Stream[core.Result[[]string]] {
		return func(r core.Consumer[core.Result[[]string]]) bool {
			writer := newWriter(w, opts)
			defer writer.Flush()

			return s(func(record []string) bool {
				if err := writer.Write(record); err != nil {
					return r(core.Err[[]string](err))
				}
				return r(core.Ok(record))
			})
		}
	})
}

// SkipHeader creates a Transformer that skips the first record (header row).
// Errors before the header pass through.
func SkipHeader() core.Transformer[core.Result[[]string], core.Result[[]string]] {
	return core.TransformerFunc[core.Result[[]string], core.Result[[]string]](func(s core.Stream[core.Result[[]string]]) core.Stream[core.Result[[]string]] {
		return func(r core.Consumer[core.Result[[]string]]) bool {
			skipped := false
			return s(func(res core.Result[[]string]) bool {
				if !skipped && res.IsValue() {
					skipped = true
					return true
				}
				return r(res)
			})
		}
	})
}

// ByHeader creates a Transformer that uses the first record as column names
// and emits every following record as a map from column name to field.
// Records with the wrong number of fields become ErrFieldCount errors.
func ByHeader() core.Transformer[core.Result[[]string], core.Result[map[string]string]] {
	return core.TransformerFunc[core.Result[[]string], core.Result[map[string]string]](func(s core.Stream[core.Result[[]string]]) core.Stream[core.Result[map[string]string]] {
		return func(r core.Consumer[core.Result[map[string]string]]) bool {
			var header []string
			return s(func(res core.Result[[]string]) bool {
				record, err := res.Unwrap()
				if err != nil {
					return r(core.Err[map[string]string](err))
				}
				if header == nil {
					header = record
					return true
				}
				if len(record) != len(header) {
					return r(core.Err[map[string]string](fmt.Errorf("%w: got %d fields, want %d", ErrFieldCount, len(record), len(header))))
				}
				row := make(map[string]string, len(header))
				for i, name := range header {
					row[name] = record[i]
				}
				return r(core.Ok(row))
			})
		}
	})
}
