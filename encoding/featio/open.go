package featio

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// Open opens path for reading, transparently decompressing gzipped input.
// The special path "stdin" reads standard input (which is then neither
// seekable nor closed by Close).
func Open(path string) (io.ReadCloser, error) {
	if path == "stdin" {
		return ioutil.NopCloser(os.Stdin), nil
	}
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	r := io.Reader(f.Reader(ctx))
	var gz *gzip.Reader
	if fileio.DetermineType(path) == fileio.Gzip {
		if gz, err = gzip.NewReader(r); err != nil {
			_ = f.Close(ctx)
			return nil, errors.E(err, "not a valid gzip file:", path)
		}
		r = gz
	}
	return &readCloser{r: r, gz: gz, f: f}, nil
}

type readCloser struct {
	r  io.Reader
	gz *gzip.Reader
	f  file.File
}

func (rc *readCloser) Read(p []byte) (int, error) {
	return rc.r.Read(p)
}

func (rc *readCloser) Close() error {
	var err error
	if rc.gz != nil {
		err = rc.gz.Close()
	}
	if cerr := rc.f.Close(vcontext.Background()); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
