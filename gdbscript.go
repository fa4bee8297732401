package gdbsym

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// WriteScript writes a GDB script to w which sets one convenience variable per
// symbol to the address of the symbol.
//
//    set $my_symbol = 0x0000ABCD
//
// Symbols are written in order, without deduplication. Symbol names are not
// validated as GDB identifiers.
func WriteScript(w io.Writer, syms []*Symbol) error {
	bw := bufio.NewWriter(w)
	for _, sym := range syms {
		if _, err := fmt.Fprintf(bw, "set $%s = 0x%s\n", sym.Name, sym.Addr); err != nil {
			return errors.WithStack(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// WriteScriptFile writes a GDB script for the given symbols to outPath,
// truncating any existing file.
func WriteScriptFile(outPath string, syms []*Symbol) error {
	return WriteScriptFileFs(OsFs, outPath, syms)
}

// WriteScriptFileFs writes a GDB script for the given symbols to outPath of
// fs, truncating any existing file. On failure, the file is removed if it did
// not exist before the call; existing files and device nodes are left as is.
func WriteScriptFileFs(fs afero.Fs, outPath string, syms []*Symbol) error {
	_, serr := lstat(fs, outPath)
	created := os.IsNotExist(serr)
	f, err := fs.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "unable to create script file %q", outPath)
	}
	err = WriteScript(f, syms)
	if cerr := f.Close(); err == nil {
		err = errors.WithStack(cerr)
	}
	if err == nil {
		return nil
	}
	err = errors.Wrapf(err, "unable to write script file %q", outPath)
	if !created {
		return err
	}
	if fi, serr := lstat(fs, outPath); serr != nil || !fi.Mode().IsRegular() {
		return err
	}
	if rerr := fs.Remove(outPath); rerr != nil {
		return multierror.Append(err, errors.Wrapf(rerr, "unable to remove partial script file %q", outPath))
	}
	return err
}
