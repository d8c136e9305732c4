package util

import (
	"bytes"
	"compress/bzip2"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// STAMP_LAYOUT formats the time at which a batch of files was produced, as
// used in directory names.
const STAMP_LAYOUT = "2006_01_02__15_04_05"

// StampedDir returns the name of a directory within base, identified by a
// prefix and the given time.
func StampedDir(base string, prefix string, now time.Time) string {
	return filepath.Join(base, prefix+now.Format(STAMP_LAYOUT))
}

// ReadInputFile reads the contents of an input file.  Files ending in .bz2
// are decompressed.
func ReadInputFile(filename string) ([]byte, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	// check extension
	switch path.Ext(filename) {
	case ".bz2":
		contents, err = io.ReadAll(bzip2.NewReader(bytes.NewReader(contents)))
		if err != nil {
			return nil, errors.Wrapf(err, "decompressing %s", filename)
		}
	}
	//
	return contents, nil
}

// WriteOutputFile creates a file (and any missing parent directories) and
// fills it using the given writer function.  The file is closed before
// returning.
func WriteOutputFile(filename string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", filename)
	}
	//
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	//
	if err := fill(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", filename)
	} else if err := file.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", filename)
	}
	//
	log.Infof("wrote %s", filename)
	//
	return nil
}
