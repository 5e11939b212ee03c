// Package scan streams uploaded files through clamd before they are stored.
package scan

import (
	"errors"
	"fmt"
	"io"

	clamd "github.com/dutchcoders/go-clamd"
)

// ErrInfected is returned when clamd flags the stream.
var ErrInfected = errors.New("malicious file detected")

// Scanner wraps a clamd instance. A Scanner with an empty address skips
// scanning, which keeps local setups without ClamAV working.
type Scanner struct {
	addr string
}

// NewScanner returns a Scanner for the given clamd address.
func NewScanner(addr string) *Scanner {
	return &Scanner{addr: addr}
}

// Enabled reports whether a clamd address was configured.
func (s *Scanner) Enabled() bool {
	return s != nil && s.addr != ""
}

// ScanReader streams r through clamd. It returns ErrInfected when the
// scan does not come back clean.
func (s *Scanner) ScanReader(r io.Reader) error {
	if !s.Enabled() {
		return nil
	}

	client := clamd.NewClamd(s.addr)

	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := client.ScanStream(r, abortChan)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return ErrInfected
		}
	}
	return nil
}
