package strainpipe

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// decompress gunzips src next to itself, dropping the ".gz" extension,
// and returns the decompressed path. If the output already exists it is
// reused, so re-runs skip work the way the original pipeline did.
func decompress(src string) (string, error) {
	dst := strings.TrimSuffix(src, ".gz")
	if dst == src {
		return src, nil
	}
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %v", src, err)
	}
	defer in.Close()

	zr, err := pgzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("failed to read gzip header of %s: %v", src, err)
	}
	defer zr.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %v", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, zr); err != nil {
		os.Remove(dst) // don't leave a truncated file behind
		return "", fmt.Errorf("failed to decompress %s: %v", src, err)
	}

	return dst, nil
}
