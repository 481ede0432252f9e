package core

import (
	"bufio"
	"io"

	log "github.com/sirupsen/logrus"
)

// maxOutputLine bounds a single logged line of application output.
const maxOutputLine = 1024 * 1024

// logOutput logs r line by line at level until EOF. The reader is
// drained to the end even if a line cannot be scanned, so the
// application never blocks or gets SIGPIPE because of its logging.
func logOutput(r io.Reader, entry *log.Entry, level log.Level) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOutputLine)
	for scanner.Scan() {
		entry.Log(level, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		entry.WithField("err", err).Warn("cannot read application output, discarding the rest")
	}
	io.Copy(io.Discard, r)
}
