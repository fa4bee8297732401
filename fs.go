package gdbsym

import (
	"os"

	"github.com/spf13/afero"
)

// OsFs is the file system used by ParseFile and WriteScriptFile.
var OsFs afero.Fs = afero.NewOsFs()

// lstat returns the FileInfo of path without following a final symbolic link,
// if fs supports it.
func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(path)
		return fi, err
	}
	return fs.Stat(path)
}
