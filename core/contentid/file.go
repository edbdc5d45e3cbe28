package contentid

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

const bufferSize = 64 * 1024

// HashFile streams the file at path through XXH3-128.
// It returns the hash together with the number of bytes read.
func HashFile(path string) (Hash, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return Hash{}, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return HashReader(f)
}

// HashReader hashes everything readable from r.
func HashReader(r io.Reader) (Hash, int64, error) {
	h := xxh3.New()
	n, err := io.CopyBuffer(h, r, make([]byte, bufferSize))
	if err != nil {
		return Hash{}, n, fmt.Errorf("failed to read content: %w", err)
	}
	sum := h.Sum128()
	return Hash{Hi: sum.Hi, Lo: sum.Lo}, n, nil
}
