// Package json provides stream adapters for JSON encoding and decoding.
// It enables parsing JSON data as part of flow pipelines.
//
// Decoding is done with encoding/json; Pluck and Each extract values by
// path with github.com/tidwall/gjson without decoding the whole document.
// Set and Delete edit documents in place with github.com/tidwall/sjson.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lguimbarda/pushflow/flow/core"
	flowio "github.com/lguimbarda/pushflow/flow/io"
)

var (
	// ErrInvalidJSON is returned by Pluck and Each for input that is not valid JSON.
	ErrInvalidJSON = errors.New("json: invalid document")

	// ErrPathNotFound is returned by Pluck when the path matches nothing.
	ErrPathNotFound = errors.New("json: path not found")

	// ErrNotArray is returned by DecodeArray when the document is not a JSON array.
	ErrNotArray = errors.New("json: expected array")
)

// Decode creates a Transformer that decodes JSON strings into typed values.
// Each input string is expected to be a valid JSON document.
// Invalid JSON results in an error Result that passes through the stream.
func Decode[T any]() core.Transformer[string, core.Result[T]] {
	return core.TransformerFunc[string, core.Result[T]](func(s core.Stream[string]) core.Stream[core.Result[T]] {
		return core.Select(s, func(doc string) core.Result[T] {
			return unmarshal[T]([]byte(doc))
		})
	})
}

// DecodeBytes creates a Transformer that decodes JSON byte slices into typed values.
func DecodeBytes[T any]() core.Transformer[[]byte, core.Result[T]] {
	return core.TransformerFunc[[]byte, core.Result[T]](func(s core.Stream[[]byte]) core.Stream[core.Result[T]] {
		return core.Select(s, unmarshal[T])
	})
}

func unmarshal[T any](data []byte) core.Result[T] {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return core.Err[T](err)
	}
	return core.Ok(value)
}

// Encode creates a Transformer that encodes values as JSON strings.
func Encode[T any]() core.Transformer[T, core.Result[string]] {
	return core.TransformerFunc[T, core.Result[string]](func(s core.Stream[T]) core.Stream[core.Result[string]] {
		return core.Select(s, func(v T) core.Result[string] {
			data, err := json.Marshal(v)
			if err != nil {
				return core.Err[string](err)
			}
			return core.Ok(string(data))
		})
	})
}

// EncodeBytes creates a Transformer that encodes values as JSON byte slices.
func EncodeBytes[T any]() core.Transformer[T, core.Result[[]byte]] {
	return core.TransformerFunc[T, core.Result[[]byte]](func(s core.Stream[T]) core.Stream[core.Result[[]byte]] {
		return core.Select(s, func(v T) core.Result[[]byte] {
			data, err := json.Marshal(v)
			if err != nil {
				return core.Err[[]byte](err)
			}
			return core.Ok(data)
		})
	})
}

// ReadFile creates a Stream that decodes newline-delimited JSON from the file at path.
func ReadFile[T any](path string) core.Stream[core.Result[T]] {
	return DecodeStream[T](func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// DecodeStream creates a Stream that reads and decodes JSON values from the
// reader returned by open, calling it once per invocation. The input should
// be a sequence of JSON values such as NDJSON / JSON Lines.
//
// A value that does not fit T is emitted as an error and decoding goes on.
// A syntax error ends the stream, as the decoder cannot resynchronize.
func DecodeStream[T any](open flowio.Opener) core.Stream[core.Result[T]] {
	return func(r core.Consumer[core.Result[T]]) bool {
		rc, err := open()
		if err != nil {
			return r(core.Err[T](fmt.Errorf("open: %w", err)))
		}
		defer rc.Close()

		decoder := json.NewDecoder(rc)
		for {
			var value T
			err := decoder.Decode(&value)
			if err == io.EOF {
				return true
			}
			if err != nil {
				if !r(core.Err[T](err)) {
					return false
				}
				var typeErr *json.UnmarshalTypeError
				if errors.As(err, &typeErr) {
					continue
				}
				return true
			}
			if !r(core.Ok(value)) {
				return false
			}
		}
	}
}

// DecodeArray creates a Stream that reads a JSON array from the reader
// returned by open and emits each element without loading the whole array.
func DecodeArray[T any](open flowio.Opener) core.Stream[core.Result[T]] {
	return func(r core.Consumer[core.Result[T]]) bool {
		rc, err := open()
		if err != nil {
			return r(core.Err[T](fmt.Errorf("open: %w", err)))
		}
		defer rc.Close()

		decoder := json.NewDecoder(rc)
		token, err := decoder.Token()
		if err != nil {
			return r(core.Err[T](err))
		}
		if delim, ok := token.(json.Delim); !ok || delim != '[' {
			return r(core.Err[T](fmt.Errorf("%w, got %v", ErrNotArray, token)))
		}

		for decoder.More() {
			var value T
			if err := decoder.Decode(&value); err != nil {
				if !r(core.Err[T](err)) {
					return false
				}
				var typeErr *json.UnmarshalTypeError
				if errors.As(err, &typeErr) {
					continue
				}
				return true
			}
			if !r(core.Ok(value)) {
				return false
			}
		}

		if _, err := decoder.Token(); err != nil {
			return r(core.Err[T](err))
		}
		return true
	}
}

// Pluck creates a Transformer that extracts the value at path from each
// JSON document, using gjson path syntax such as "user.name" or "items.#".
func Pluck(path string) core.Transformer[string, core.Result[gjson.Result]] {
	return core.TransformerFunc[string, core.Result[gjson.Result]](func(s core.Stream[string]) core.Stream[core.Result[gjson.Result]] {
		return core.Select(s, func(doc string) core.Result[gjson.Result] {
			if !gjson.Valid(doc) {
				return core.Err[gjson.Result](ErrInvalidJSON)
			}
			value := gjson.Get(doc, path)
			if !value.Exists() {
				return core.Err[gjson.Result](fmt.Errorf("%w: %s", ErrPathNotFound, path))
			}
			return core.Ok(value)
		})
	})
}

// Each creates a Transformer that emits every element of the array found at
// path in each document; objects yield their values. An empty path iterates
// the document itself. Documents where path is missing contribute nothing.
func Each(path string) core.Transformer[string, core.Result[gjson.Result]] {
	return core.TransformerFunc[string, core.Result[gjson.Result]](func(s core.Stream[string]) core.Stream[core.Result[gjson.Result]] {
		return func(r core.Consumer[core.Result[gjson.Result]]) bool {
			return s(func(doc string) bool {
				if !gjson.Valid(doc) {
					return r(core.Err[gjson.Result](ErrInvalidJSON))
				}
				target := gjson.Parse(doc)
				if path != "" {
					target = target.Get(path)
				}
				keepGoing := true
				target.ForEach(func(_, value gjson.Result) bool {
					keepGoing = r(core.Ok(value))
					return keepGoing
				})
				return keepGoing
			})
		}
	})
}

// Set creates a Transformer that sets the value at path in every document.
// Missing intermediate objects are created.
func Set(path string, value any) core.Transformer[string, core.Result[string]] {
	return edit(func(doc string) (string, error) {
		return sjson.Set(doc, path, value)
	})
}

// Delete creates a Transformer that removes the value at path from every
// document. A path that matches nothing leaves the document unchanged.
func Delete(path string) core.Transformer[string, core.Result[string]] {
	return edit(func(doc string) (string, error) {
		return sjson.Delete(doc, path)
	})
}

func edit(fn func(string) (string, error)) core.Transformer[string, core.Result[string]] {
	return core.TransformerFunc[string, core.Result[string]](func(s core.Stream[string]) core.Stream[core.Result[string]] {
		return core.Select(s, func(doc string) core.Result[string] {
			if !gjson.Valid(doc) {
				return core.Err[string](ErrInvalidJSON)
			}
			out, err := fn(doc)
			if err != nil {
				return core.Err[string](fmt.Errorf("json: edit: %w", err))
			}
			return core.Ok(out)
		})
	})
}
