package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StampedDir_00(t *testing.T) {
	now := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)
	//
	assert.Equal(t, filepath.Join("testbench", "tb_2024_03_07__09_05_03"), StampedDir("testbench", "tb_", now))
}

func Test_Files_00(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "a", "b", "out.txt")
	//
	require.NoError(t, WriteOutputFile(filename, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "spikes")
		return err
	}))
	//
	contents, err := ReadInputFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "spikes", string(contents))
}

func Test_Files_01(t *testing.T) {
	dir := t.TempDir()
	// Failures of the fill function are reported with the file name
	err := WriteOutputFile(filepath.Join(dir, "out.txt"), func(io.Writer) error {
		return os.ErrInvalid
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out.txt")
	//
	_, err = ReadInputFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	// Corrupt compressed input
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json.bz2"), []byte("not bzip2"), 0o644))
	_, err = ReadInputFile(filepath.Join(dir, "bad.json.bz2"))
	assert.Error(t, err)
}

func Test_Random_00(t *testing.T) {
	r1, s1 := NewRandom(42)
	r2, s2 := NewRandom(42)
	//
	assert.Equal(t, uint64(42), s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, r1.Uint64(), r2.Uint64())
	//
	_, s3 := NewRandom(0)
	assert.NotZero(t, s3)
}

func Test_ParExec_00(t *testing.T) {
	var (
		mu    sync.Mutex
		order []uint
	)
	//
	record := func(id uint) func() error {
		return func() error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, id)
			//
			return nil
		}
	}
	// Job 2 waits for both others
	jobs := []Job{NewJob(2, record(2), 0, 1), NewJob(0, record(0)), NewJob(1, record(1), 0)}
	//
	require.NoError(t, ParExec(jobs))
	assert.Equal(t, []uint{0, 1, 2}, order)
}

func Test_ParExec_01(t *testing.T) {
	failed := errors.New("failed")
	ran := false
	//
	jobs := []Job{
		NewJob(0, func() error { return failed }),
		NewJob(1, func() error { ran = true; return nil }, 0),
	}
	//
	assert.ErrorIs(t, ParExec(jobs), failed)
	assert.False(t, ran)
	// Cyclic dependencies never become ready
	assert.Error(t, ParExec([]Job{NewJob(0, record0, 1), NewJob(1, record0, 0)}))
}

func record0() error {
	return nil
}
