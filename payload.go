package splash

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Source supplies the raw XRGB8888 pixel payload for the outputs. The
// payload is an opaque byte stream; nothing here interprets it.
type Source interface {
	// Open returns the byte stream for the next output.
	Open() (io.ReadCloser, error)
}

// File returns a Source backed by the file at path. The file is
// reopened for every output, so each one shows the full image.
func File(path string) Source {
	return fileSource(path)
}

type fileSource string

func (s fileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(s))
}

// Stream returns a Source that hands out the same reader on every Open
// call. With several outputs each consumes the stream where the
// previous one left off, which is how a piped stdin feed behaves.
func Stream(r io.Reader) Source {
	return &streamSource{r: r}
}

type streamSource struct {
	r io.Reader
}

func (s *streamSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(s.r), nil
}

// fill reads from r into the framebuffer until the buffer is full or
// the source runs out of data, accumulating short reads. Running out
// early is not an error: full reports whether the buffer was filled,
// and the pixels past the written range keep their previous content.
func fill(fb *Framebuffer, r io.Reader) (n int, full bool, err error) {
	n, err = io.ReadFull(r, fb.Data)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, false, nil
	}
	if err != nil {
		return n, false, fmt.Errorf("read payload: %w", err)
	}
	return n, true, nil
}
