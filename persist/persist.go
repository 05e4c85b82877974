package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/metailurini/skipindex/codec"
)

// maxLineSize bounds a single record when loading.
const maxLineSize = 16 << 20

// Source is anything that can walk its entries in ascending key order.
type Source[K, V any] interface {
	Range(fn func(key K, value V) bool)
}

// Sink receives decoded entries.
type Sink[K, V any] interface {
	Insert(key K, value V) bool
}

// Result summarizes a Dump or Load.
type Result struct {
	// Records is the number of records written or inserted.
	Records int
	// Flagged counts written records that will not read back unchanged.
	Flagged int
	// Skipped counts lines dropped by Load.
	Skipped int
}

type options struct {
	logger hclog.Logger
}

// Option configures Dump and Load.
type Option func(*options)

// WithLogger sets the logger used to report flagged and skipped records.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts []Option) options {
	o := options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Dump writes every entry of src to w. Records that will not read back
// unchanged are written anyway, logged and counted in Result.Flagged. An
// encode or write failure aborts the dump.
func Dump[K, V any](w io.Writer, src Source[K, V], kc codec.Codec[K], vc codec.Codec[V], opts ...Option) (Result, error) {
	o := newOptions(opts)
	bw := bufio.NewWriter(w)

	var (
		res  Result
		werr error
	)
	src.Range(func(k K, v V) bool {
		ks, err := kc.Encode(k)
		if err != nil {
			werr = fmt.Errorf("encode key %v: %w", k, err)
			return false
		}
		vs, err := vc.Encode(v)
		if err != nil {
			werr = fmt.Errorf("encode value for key %q: %w", ks, err)
			return false
		}
		line, err := EncodeRecord(ks, vs)
		if err != nil {
			res.Flagged++
			o.logger.Warn("record will not round-trip", "key", ks, "error", err)
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			werr = fmt.Errorf("write record: %w", err)
			return false
		}
		res.Records++
		return true
	})
	if werr != nil {
		return res, werr
	}
	if err := bw.Flush(); err != nil {
		return res, fmt.Errorf("flush records: %w", err)
	}
	return res, nil
}

// Load reads records from r and inserts each valid one into dst, in stream
// order, so a repeated key keeps its last value. Lines without a separator
// or whose key or value fails to decode are skipped. Read errors are
// returned.
func Load[K, V any](r io.Reader, dst Sink[K, V], kc codec.Codec[K], vc codec.Codec[V], opts ...Option) (Result, error) {
	o := newOptions(opts)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var res Result
	lineNo := 0
	for sc.Scan() {
		lineNo++
		ks, vs, ok := DecodeRecord(sc.Text())
		if !ok {
			res.Skipped++
			o.logger.Debug("skipping line without separator", "line", lineNo)
			continue
		}
		k, err := kc.Decode(ks)
		if err != nil {
			res.Skipped++
			o.logger.Debug("skipping record with malformed key", "line", lineNo, "error", err)
			continue
		}
		v, err := vc.Decode(vs)
		if err != nil {
			res.Skipped++
			o.logger.Debug("skipping record with malformed value", "line", lineNo, "error", err)
			continue
		}
		dst.Insert(k, v)
		res.Records++
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read records: %w", err)
	}
	return res, nil
}

// DumpFile writes src to path. The records go to a temporary file in the
// same directory which is renamed over path only after it has been fully
// written and synced, so a failed dump leaves any previous file intact.
func DumpFile[K, V any](path string, src Source[K, V], kc codec.Codec[K], vc codec.Codec[V], opts ...Option) (res Result, err error) {
	o := newOptions(opts)

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return res, fmt.Errorf("create dump file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	res, err = Dump(tmp, src, kc, vc, opts...)
	if err != nil {
		return res, fmt.Errorf("dump %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return res, fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return res, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return res, fmt.Errorf("rename %s to %s: %w", tmp.Name(), path, err)
	}

	o.logger.Info("dumped index", "path", path, "records", res.Records, "flagged", res.Flagged)
	return res, nil
}

// LoadFile inserts every valid record stored at path into dst.
func LoadFile[K, V any](path string, dst Sink[K, V], kc codec.Codec[K], vc codec.Codec[V], opts ...Option) (Result, error) {
	o := newOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := Load(f, dst, kc, vc, opts...)
	if err != nil {
		return res, fmt.Errorf("load %s: %w", path, err)
	}

	o.logger.Info("loaded index", "path", path, "records", res.Records, "skipped", res.Skipped)
	return res, nil
}

// IsNotExist reports whether err says the persistence file does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
