// Package output writes generated records to disk. Files are staged in a
// temporary file beside the destination and renamed into place only when the
// whole batch has been written.
package output

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	contextutils "hinglishgen/internal/utils"

	"github.com/google/uuid"
)

const (
	defaultBufSize = 64 * 1024
	// newFilePerm is filtered by the process umask, as with os.Create
	newFilePerm  = 0o666
	tempAttempts = 10
)

// AtomicFile is an io.Writer whose content only appears at the destination
// path after Commit. Abort (or a failed Commit) removes the staging file.
type AtomicFile struct {
	dest    string
	tmp     *os.File
	buf     *bufio.Writer
	done    bool
	written int64
}

// Create opens a staging file in the destination directory. Failing here means
// the destination is not writable and nothing has been generated yet.
func Create(dest string) (*AtomicFile, error) {
	dir := filepath.Dir(dest)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, outputError("output directory is not accessible", dest, err)
	}
	if !info.IsDir() {
		return nil, outputError("output parent is not a directory", dest, nil)
	}
	var existing os.FileInfo
	if fi, err := os.Stat(dest); err == nil {
		if fi.IsDir() {
			return nil, outputError("output path is a directory", dest, nil)
		}
		existing = fi
	}

	tmp, err := createStaging(dir, filepath.Base(dest))
	if err != nil {
		return nil, outputError("cannot create file in output directory", dest, err)
	}
	// A replaced file keeps its permissions
	if existing != nil {
		if err := tmp.Chmod(existing.Mode().Perm()); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return nil, outputError("cannot set output file mode", dest, err)
		}
	}

	return &AtomicFile{
		dest: dest,
		tmp:  tmp,
		buf:  bufio.NewWriterSize(tmp, defaultBufSize),
	}, nil
}

// Write buffers p into the staging file
func (f *AtomicFile) Write(p []byte) (int, error) {
	if f.done {
		return 0, outputError("write after close", f.dest, os.ErrClosed)
	}
	n, err := f.buf.Write(p)
	f.written += int64(n)
	if err != nil {
		return n, outputError("write failed", f.dest, err)
	}
	return n, nil
}

// Written reports the number of bytes accepted so far
func (f *AtomicFile) Written() int64 {
	return f.written
}

// Path returns the destination path
func (f *AtomicFile) Path() string {
	return f.dest
}

// Commit flushes, syncs and renames the staging file onto the destination
func (f *AtomicFile) Commit() error {
	if f.done {
		return outputError("commit after close", f.dest, os.ErrClosed)
	}
	f.done = true
	tmpPath := f.tmp.Name()

	if err := f.buf.Flush(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(tmpPath)
		return outputError("flush failed", f.dest, err)
	}
	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(tmpPath)
		return outputError("sync failed", f.dest, err)
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return outputError("close failed", f.dest, err)
	}
	if err := os.Rename(tmpPath, f.dest); err != nil {
		_ = os.Remove(tmpPath)
		return outputError("rename failed", f.dest, err)
	}
	_ = syncDir(filepath.Dir(f.dest))
	return nil
}

// Abort discards the staging file. It is a no-op after Commit, so it is safe
// to defer right after Create.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}

// createStaging opens a new, uniquely named file beside the destination
func createStaging(dir, base string) (*os.File, error) {
	var err error
	for i := 0; i < tempAttempts; i++ {
		name := filepath.Join(dir, "."+base+".tmp-"+uuid.NewString())
		var f *os.File
		f, err = os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, newFilePerm)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
	}
	return nil, err
}

// syncDir best-effort fsyncs the parent directory to persist the rename
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

func outputError(msg, dest string, cause error) error {
	if cause == nil {
		return contextutils.NewAppError(contextutils.ErrorCodeOutputWrite, contextutils.SeverityFatal, msg, dest)
	}
	return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeOutputWrite, contextutils.SeverityFatal, msg, dest, cause)
}
