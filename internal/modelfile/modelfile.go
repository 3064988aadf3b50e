// Package modelfile moves persisted models between disk and memory.
//
// Plain files are memory mapped while they are imported. The imported Model
// owns a private copy of the container, so the mapping is released before
// Load returns. Files that begin with the xz stream magic are decompressed
// first, whatever their name.
package modelfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/born-ml/graphlite/internal/model"
	"github.com/born-ml/graphlite/internal/status"
)

// File name extensions.
const (
	Ext           = ".glm"
	CompressedExt = ".xz"
)

var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// ErrDigestMismatch is returned by Verify when the contents do not hash to
// the expected digest.
var ErrDigestMismatch = errors.New("digest mismatch: file may be corrupted")

// Options configures reading and writing.
type Options struct {
	// MaxSize bounds the decoded container size (default:
	// model.DefaultMaxModelSize).
	MaxSize int64

	// Compress forces xz output on write. Paths ending in CompressedExt are
	// always compressed.
	Compress bool

	// Logger receives diagnostics (default: the standard logger).
	Logger log.FieldLogger
}

// DefaultOptions returns the default settings.
func DefaultOptions() Options {
	return Options{MaxSize: model.DefaultMaxModelSize}
}

func resolve(opts []Options) Options {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.MaxSize <= 0 {
		opt.MaxSize = model.DefaultMaxModelSize
	}
	if opt.Logger == nil {
		opt.Logger = log.StandardLogger()
	}
	return opt
}

// IsCompressed reports whether path names an xz compressed model file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

// Load reads the model file at path and imports it.
func Load(path string, opts ...Options) (*model.Model, error) {
	opt := resolve(opts)
	var m *model.Model
	err := withContents(path, opt, func(data []byte) error {
		var err error
		m, err = model.Import(data, model.ImportOptions{MaxModelSize: int(opt.MaxSize), Logger: opt.Logger})
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return m, nil
}

// ReadFile returns the decoded container stored at path.
func ReadFile(path string, opts ...Options) ([]byte, error) {
	var out []byte
	err := withContents(path, resolve(opts), func(data []byte) error {
		out = bytes.Clone(data)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return out, nil
}

// Digest returns the BLAKE3 digest of the decoded container stored at path.
// It equals Model.Digest of the imported model.
func Digest(path string, opts ...Options) ([32]byte, error) {
	var sum [32]byte
	err := withContents(path, resolve(opts), func(data []byte) error {
		sum = blake3.Sum256(data)
		return nil
	})
	if err != nil {
		return sum, errors.Wrapf(err, "digest %s", path)
	}
	return sum, nil
}

// Verify checks the file at path against an expected digest.
func Verify(path string, want [32]byte, opts ...Options) error {
	got, err := Digest(path, opts...)
	if err != nil {
		return err
	}
	if got != want {
		return errors.Wrapf(ErrDigestMismatch, "%s", path)
	}
	return nil
}

// Save writes the persisted form of m to path. Imported models are written
// byte for byte; converted models are serialized first.
func Save(path string, m *model.Model, opts ...Options) error {
	opt := resolve(opts)
	var (
		data []byte
		err  error
	)
	if m != nil && m.Exportable() {
		data, err = model.Export(m, nil)
	} else {
		data, err = model.Marshal(m, model.MarshalOptions{Logger: opt.Logger})
	}
	if err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return Write(path, data, opt)
}

// Write stores data at path atomically. The data is xz compressed when
// requested or when path ends in CompressedExt.
func Write(path string, data []byte, opts ...Options) error {
	opt := resolve(opts)
	compress := opt.Compress || IsCompressed(path)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if compress {
		var xw *xz.Writer
		if xw, err = xz.NewWriter(tmp); err != nil {
			return errors.Wrap(err, "create xz stream")
		}
		if _, err = xw.Write(data); err != nil {
			return errors.Wrap(err, "compress model")
		}
		if err = xw.Close(); err != nil {
			return errors.Wrap(err, "finish xz stream")
		}
	} else if _, err = tmp.Write(data); err != nil {
		return errors.Wrap(err, "write model")
	}

	if err = tmp.Sync(); err != nil {
		return errors.Wrap(err, "sync model file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close model file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "rename to %s", path)
	}
	opt.Logger.WithFields(log.Fields{
		"path":       path,
		"bytes":      len(data),
		"compressed": compress,
	}).Debug("model file written")
	return nil
}

// withContents calls fn with the decoded contents of path. The slice passed
// to fn is only valid for the duration of the call.
func withContents(path string, opt Options, fn func([]byte) error) error {
	//nolint:gosec // G304: model paths are user supplied by design of the CLI
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open model file")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "stat model file")
	}
	size := st.Size()

	head := make([]byte, len(xzMagic))
	if n, _ := io.ReadFull(f, head); n == len(xzMagic) && bytes.Equal(head, xzMagic) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return errors.Wrap(err, "rewind model file")
		}
		data, err := decompress(f, opt.MaxSize)
		if err != nil {
			return err
		}
		opt.Logger.WithFields(log.Fields{"path": path, "stored": size, "bytes": len(data)}).
			Debug("decompressed model file")
		return fn(data)
	}

	if size == 0 {
		return fn(nil)
	}
	if size > opt.MaxSize {
		return status.New(status.OutOfMemory, "file holds %d bytes, limit is %d", size, opt.MaxSize)
	}

	data, err := mmapFile(f, size)
	if err != nil {
		opt.Logger.WithError(err).WithField("path", path).Debug("mmap unavailable, reading file")
		data, err = io.ReadAll(io.NewSectionReader(f, 0, size))
		if err != nil {
			return errors.Wrap(err, "read model file")
		}
		return fn(data)
	}
	defer func() {
		if err := munmapFile(data); err != nil {
			opt.Logger.WithError(err).WithField("path", path).Warn("munmap failed")
		}
	}()
	return fn(data)
}

func decompress(r io.Reader, limit int64) ([]byte, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open xz stream")
	}
	data, err := io.ReadAll(io.LimitReader(xr, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "decompress model file")
	}
	if int64(len(data)) > limit {
		return nil, status.New(status.OutOfMemory, "decompressed model exceeds the %d byte limit", limit)
	}
	return data, nil
}
