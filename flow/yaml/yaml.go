// Package yaml provides stream adapters for YAML documents.
// A YAML file holding several documents separated by "---" is read as a
// stream with one value per document.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lguimbarda/pushflow/flow/core"
	flowio "github.com/lguimbarda/pushflow/flow/io"
)

// ReadFile creates a Stream that decodes every document of the YAML file at path.
func ReadFile[T any](path string) core.Stream[core.Result[T]] {
	return DecodeDocuments[T](func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// DecodeDocuments creates a Stream that decodes every document from the
// reader returned by open, calling it once per invocation.
// A decoding error is emitted and ends the stream.
func DecodeDocuments[T any](open flowio.Opener) core.Stream[core.Result[T]] {
	return func(r core.Consumer[core.Result[T]]) bool {
		rc, err := open()
		if err != nil {
			return r(core.Err[T](fmt.Errorf("open: %w", err)))
		}
		defer rc.Close()

		decoder := yaml.NewDecoder(rc)
		for {
			var value T
			err := decoder.Decode(&value)
			if errors.Is(err, io.EOF) {
				return true
			}
			if err != nil {
				return r(core.Err[T](err))
			}
			if !r(core.Ok(value)) {
				return false
			}
		}
	}
}

// Decode creates a Transformer that decodes each string as one YAML document.
func Decode[T any]() core.Transformer[string, core.Result[T]] {
	return core.TransformerFunc[string, core.Result[T]](func(s core.Stream[string]) core.Stream[core.Result[T]] {
		return core.Select(s, func(doc string) core.Result[T] {
			var value T
			if err := yaml.Unmarshal([]byte(doc), &value); err != nil {
				return core.Err[T](err)
			}
			return core.Ok(value)
		})
	})
}

// Encode creates a Transformer that encodes each value as a YAML document.
func Encode[T any]() core.Transformer[T, core.Result[string]] {
	return core.TransformerFunc[T, core.Result[string]](func(s core.Stream[T]) core.Stream[core.Result[string]] {
		return core.Select(s, func(v T) (res core.Result[string]) {
			// yaml.v3 panics on values it cannot represent, such as channels.
			defer func() {
				if rec := recover(); rec != nil {
					res = core.Err[string](fmt.Errorf("yaml: %v", rec))
				}
			}()
			data, err := yaml.Marshal(v)
			if err != nil {
				return core.Err[string](err)
			}
			return core.Ok(string(data))
		})
	})
}

// WriteDocuments writes every value of s to w as a separate YAML document
// and returns the number of documents written. It stops s at the first
// encoding error.
func WriteDocuments[T any](w io.Writer, s core.Stream[T]) (int, error) {
	encoder := yaml.NewEncoder(w)
	written := 0
	var encodeErr error
	s(func(v T) bool {
		if err := encodeDocument(encoder, v); err != nil {
			encodeErr = err
			return false
		}
		written++
		return true
	})
	if encodeErr != nil {
		return written, encodeErr
	}
	return written, encoder.Close()
}

func encodeDocument(encoder *yaml.Encoder, v any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("yaml: %v", rec)
		}
	}()
	return encoder.Encode(v)
}
