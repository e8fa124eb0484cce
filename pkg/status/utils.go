package status

import (
	"bufio"
	"io"
)

// NewLineRedirector returns a writer that calls cb for every non-empty line written to it.
// A lone \r terminates a line as well, so progress output of tools is split into lines.
// Close must be called to release the reader goroutine; the returned channel is closed when all
// lines have been delivered.
func NewLineRedirector(cb func(line string)) (io.WriteCloser, <-chan struct{}) {
	r, w := io.Pipe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		br := bufio.NewReader(r)
		scanner := bufio.NewScanner(&replaceRReader{reader: br})
		for scanner.Scan() {
			msg := scanner.Text()
			if msg == "" {
				continue
			}
			cb(msg)
		}
		if scanner.Err() != nil {
			// keep the writer unblocked, e.g. after an overlong line
			_, _ = io.Copy(io.Discard, br)
		}
		_ = r.Close()
	}()

	return w, done
}

type replaceRReader struct {
	reader *bufio.Reader
	lastR  bool
}

func (r *replaceRReader) Read(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		b, err := r.reader.ReadByte()
		if err != nil {
			if err == io.EOF {
				if written == 0 {
					return 0, err
				}
				return written, nil
			}
			return 0, err
		}

		if b == '\r' {
			p[written] = '\n'
			written++
			r.lastR = true
			break
		} else if b == '\n' {
			if r.lastR {
				r.lastR = false
				continue
			}
			p[written] = '\n'
			written++
			break
		} else {
			p[written] = b
			written++
			r.lastR = false
		}
	}
	return written, nil
}
