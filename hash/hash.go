// Package hash implements the digest helpers used to compare the content of two streams
package hash

import (
	"crypto/sha256"
	"io"
)

// SHA256Reader returns a 32 bytes SHA256 hash of everything read off the reader,
// along with the number of bytes which have been read.
func SHA256Reader(r io.Reader) ([]byte, int64, error) {
	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return nil, n, err
	}
	return h.Sum(nil), n, nil
}
