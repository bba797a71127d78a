// Package filex reads local files picked by the user.
package filex

import (
	"fmt"
	"io"
	"os"
)

// ReadLimited reads the whole file at path, refusing anything larger than
// max bytes or anything that is not a regular file.
func ReadLimited(path string, max int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	if fi.Size() > max {
		return nil, fmt.Errorf("%s is %d bytes, the limit is %d", path, fi.Size(), max)
	}

	// the file may grow between Stat and Read
	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%s exceeds the limit of %d bytes", path, max)
	}
	return data, nil
}
