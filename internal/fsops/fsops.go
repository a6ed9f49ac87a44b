package fsops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	ensureDirectoryErrorFormat = "create directory for %s: %w"
	writeTemporaryErrorFormat  = "write temporary file for %s: %w"
	replaceFileErrorFormat     = "replace %s: %w"
	temporaryFileSuffix        = ".tmp"
	directoryPermissions       = 0o755
)

// FS is an abstract filesystem used across the app and tests.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error

	// Afero exposes the same filesystem to libraries that accept afero.Fs.
	Afero() afero.Fs

	Join(elem ...string) string
	Dir(name string) string
	Ext(name string) string
}

// ---------- OS-backed implementation ----------

type OS struct{}

func NewOS() OS { return OS{} }

func (OS) ReadFile(name string) ([]byte, error) { return os.ReadFile(filepath.Clean(name)) }
func (OS) WriteFile(name string, b []byte, p os.FileMode) error {
	return os.WriteFile(filepath.Clean(name), b, p)
}
func (OS) Stat(name string) (fs.FileInfo, error)     { return os.Stat(filepath.Clean(name)) }
func (OS) Rename(a, b string) error                  { return os.Rename(a, b) }
func (OS) Remove(name string) error                  { return os.Remove(filepath.Clean(name)) }
func (OS) MkdirAll(path string, p os.FileMode) error { return os.MkdirAll(filepath.Clean(path), p) }
func (OS) Afero() afero.Fs                           { return afero.NewOsFs() }
func (OS) Join(elem ...string) string                { return filepath.Join(elem...) }
func (OS) Dir(name string) string                    { return filepath.Dir(name) }
func (OS) Ext(name string) string                    { return filepath.Ext(name) }

// ---------- In-memory implementation (for tests/integration) ----------

type Mem struct{ Fs afero.Fs }

func NewMem() Mem { return Mem{Fs: afero.NewMemMapFs()} }

func (m Mem) ReadFile(name string) ([]byte, error) { return afero.ReadFile(m.Fs, filepath.Clean(name)) }
func (m Mem) WriteFile(name string, b []byte, p os.FileMode) error {
	return afero.WriteFile(m.Fs, filepath.Clean(name), b, p)
}
func (m Mem) Stat(name string) (fs.FileInfo, error) { return m.Fs.Stat(filepath.Clean(name)) }
func (m Mem) Rename(a, b string) error              { return m.Fs.Rename(a, b) }
func (m Mem) Remove(name string) error              { return m.Fs.Remove(filepath.Clean(name)) }
func (m Mem) MkdirAll(path string, p os.FileMode) error {
	return m.Fs.MkdirAll(filepath.Clean(path), p)
}
func (m Mem) Afero() afero.Fs { return m.Fs }

func (Mem) Join(elem ...string) string { return filepath.Join(elem...) }
func (Mem) Dir(name string) string     { return filepath.Dir(name) }
func (Mem) Ext(name string) string     { return filepath.Ext(name) }

// ---------- High-level façade used by stores and exporters ----------

type Ops struct{ FS FS }

func NewOps(fs FS) Ops { return Ops{FS: fs} }

func (o Ops) EnsureDir(path string) error { return o.FS.MkdirAll(o.FS.Dir(path), directoryPermissions) }
func (o Ops) FileExists(p string) bool    { _, err := o.FS.Stat(p); return err == nil }

// WriteAtomic writes data next to path and renames it into place so readers
// never observe a partially written file.
func (o Ops) WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if err := o.EnsureDir(path); err != nil {
		return fmt.Errorf(ensureDirectoryErrorFormat, path, err)
	}
	temporaryPath := path + temporaryFileSuffix
	if err := o.FS.WriteFile(temporaryPath, data, perm); err != nil {
		return fmt.Errorf(writeTemporaryErrorFormat, path, err)
	}
	if err := o.FS.Rename(temporaryPath, path); err != nil {
		_ = o.FS.Remove(temporaryPath)
		return fmt.Errorf(replaceFileErrorFormat, path, err)
	}
	return nil
}
