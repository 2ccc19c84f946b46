package shift

import (
	"bytes"
	"io"

	"github.com/xitonix/xshift/hash"
	"golang.org/x/sync/errgroup"
)

// Verify returns true if the decoded text is identical to the original text
func Verify(original, decoded string) bool {
	return original == decoded
}

// Report represents the outcome of comparing two streams
type Report struct {
	// Match true if both streams have the same content
	Match bool
	// OriginalDigest the SHA256 hash of the original stream
	OriginalDigest []byte
	// DecodedDigest the SHA256 hash of the decoded stream
	DecodedDigest []byte
	// OriginalSize the size of the original stream in bytes
	OriginalSize int64
	// DecodedSize the size of the decoded stream in bytes
	DecodedSize int64
}

// VerifyReaders compares the content of the original and the decoded streams without
// loading them into memory. Both streams are read at the same time.
func VerifyReaders(original, decoded io.Reader) (*Report, error) {
	report := &Report{}
	var g errgroup.Group
	g.Go(func() (err error) {
		report.OriginalDigest, report.OriginalSize, err = hash.SHA256Reader(original)
		return err
	})
	g.Go(func() (err error) {
		report.DecodedDigest, report.DecodedSize, err = hash.SHA256Reader(decoded)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.Match = report.OriginalSize == report.DecodedSize && bytes.Equal(report.OriginalDigest, report.DecodedDigest)
	return report, nil
}
