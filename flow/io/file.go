// Package io provides stream adapters for file I/O operations.
// It enables reading from and writing to files as part of flow pipelines.
//
// Sources open their file on every invocation and close it before
// returning, so a stream can be run again and stops cleanly when its
// consumer returns false. Read failures are emitted as error Results.
package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lguimbarda/pushflow/flow/core"
)

// Opener opens a fresh reader for one invocation of a stream.
type Opener func() (io.ReadCloser, error)

// ReadLines creates a Stream that emits each line from the given file path.
// Lines are emitted without the trailing newline character.
// If the file cannot be opened, the stream emits a single error.
func ReadLines(path string) core.Stream[core.Result[string]] {
	return ReadLinesFrom(func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// ReadLinesFrom creates a Stream that reads lines from the reader returned
// by open, calling it once per invocation.
// This is useful for reading from network connections, archives, or other readers.
func ReadLinesFrom(open Opener) core.Stream[core.Result[string]] {
	return func(r core.Consumer[core.Result[string]]) bool {
		rc, err := open()
		if err != nil {
			return r(core.Err[string](fmt.Errorf("open: %w", err)))
		}
		defer rc.Close()

		scanner := bufio.NewScanner(rc)
		for scanner.Scan() {
			if !r(core.Ok(scanner.Text())) {
				return false
			}
		}
		if err := scanner.Err(); err != nil {
			return r(core.Err[string](err))
		}
		return true
	}
}

// ReadBytes creates a Stream that reads the file in chunks of the specified size.
// Useful for processing binary files or large files without loading them entirely into memory.
// Every chunk is a new slice; the last one may be shorter than chunkSize.
// Panics if chunkSize <= 0.
func ReadBytes(path string, chunkSize int) core.Stream[core.Result[[]byte]] {
	if chunkSize <= 0 {
		panic("io.ReadBytes: chunkSize must be > 0")
	}
	return func(r core.Consumer[core.Result[[]byte]]) bool {
		file, err := os.Open(path)
		if err != nil {
			return r(core.Err[[]byte](fmt.Errorf("open: %w", err)))
		}
		defer file.Close()

		reader := bufio.NewReader(file)
		for {
			buf := make([]byte, chunkSize)
			n, err := io.ReadFull(reader, buf)
			if n > 0 && !r(core.Ok(buf[:n])) {
				return false
			}
			switch {
			case err == nil:
				continue
			case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
				return true
			default:
				return r(core.Err[[]byte](err))
			}
		}
	}
}

// WriteLines writes each string of s to w, one per line, and returns the
// number of lines written. It stops s at the first write error.
func WriteLines(w io.Writer, s core.Stream[string]) (int, error) {
	writer := bufio.NewWriter(w)
	written := 0
	var writeErr error
	s(func(line string) bool {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			writeErr = err
			return false
		}
		written++
		return true
	})
	if writeErr != nil {
		return written, writeErr
	}
	if err := writer.Flush(); err != nil {
		return written, err
	}
	return written, nil
}

// WriteFile writes each string of s to the file at path, one per line.
// The file is created if it doesn't exist, or truncated if it does.
func WriteFile(path string, s core.Stream[string]) (int, error) {
	return writeFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644, s)
}

// AppendFile appends each string of s to the file at path, one per line.
// The file is created if it doesn't exist.
func AppendFile(path string, s core.Stream[string]) (int, error) {
	return writeFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644, s)
}

func writeFile(path string, flag int, perm os.FileMode, s core.Stream[string]) (n int, err error) {
	file, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteLines(file, s)
}

// WriteTo creates a Transformer that writes each string to w as a line and
// then passes it on as a Result. A failed write is emitted as an error in
// place of the line. Output is flushed when each invocation returns.
func WriteTo(w io.Writer) core.Transformer[string, core.Result[string]] {
	return core.TransformerFunc[string, core.Result[string]](func(s core.Stream[string]) core.Stream[core.Result[string]] {
		return func(r core.Consumer[core.Result[string]]) bool {
			writer := bufio.NewWriter(w)
			defer writer.Flush()

			return s(func(line string) bool {
				if _, err := writer.WriteString(line + "\n"); err != nil {
					return r(core.Err[string](err))
				}
				return r(core.Ok(line))
			})
		}
	})
}
