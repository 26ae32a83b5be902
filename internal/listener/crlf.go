package listener

import (
	"bytes"
	"io"
)

// lineEndings adapts a terminal stream to the text session. Inbound CR LF,
// CR NUL and bare CR all become LF; outbound LF becomes CR LF.
type lineEndings struct {
	rw io.ReadWriter
	// afterCR is set when the last byte read was a CR, so a LF or NUL
	// arriving at the start of the next read is dropped.
	afterCR bool
}

func newLineEndings(rw io.ReadWriter) *lineEndings {
	return &lineEndings{rw: rw}
}

func (l *lineEndings) Read(p []byte) (int, error) {
	n, err := l.rw.Read(p)

	out := 0
	for _, b := range p[:n] {
		switch {
		case b == '\r':
			p[out] = '\n'
			out++
			l.afterCR = true
		case l.afterCR && (b == '\n' || b == 0):
			l.afterCR = false
		default:
			p[out] = b
			out++
			l.afterCR = false
		}
	}
	return out, err
}

func (l *lineEndings) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return l.rw.Write(p)
	}
	if _, err := l.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
