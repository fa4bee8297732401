// Package gdbsym converts symbol map files produced by linkers into GDB
// scripts which define one convenience variable per symbol.
package gdbsym

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/grafana/regexp"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Note: only the plain "segment:offset symbol" line format is recognized. The
// section and entry point listings of Visual Studio MAP files, as well as the
// Rva+Base and Lib:Object columns of their symbol listings, are not.

// reSymbol matches a symbol line of a map file.
//
//    0001:00093247 _WinMain@16
var reSymbol = regexp.MustCompile(`^\s*([0-9A-Fa-f]+):([0-9A-Fa-f]+)\s+(\S+)$`)

// Symbol is a symbol of a map file.
type Symbol struct {
	// Segment number, as hexadecimal digits (e.g. "0001").
	Seg string
	// Offset in bytes from start of segment, as hexadecimal digits without "0x"
	// prefix (e.g. "0000ABCD"). The case of the digits is preserved.
	Addr string
	// Symbol name.
	Name string
}

// ParseString parses the given symbol map file, reading from s.
func ParseString(s string) ([]*Symbol, error) {
	r := strings.NewReader(s)
	return Parse(r)
}

// ParseBytes parses the given symbol map file, reading from buf.
func ParseBytes(buf []byte) ([]*Symbol, error) {
	r := bytes.NewReader(buf)
	return Parse(r)
}

// ParseFile parses the given symbol map file, reading from mapPath.
func ParseFile(mapPath string) ([]*Symbol, error) {
	return ParseFileFs(OsFs, mapPath)
}

// ParseFileFs parses the given symbol map file, reading from mapPath of fs.
func ParseFileFs(fs afero.Fs, mapPath string) ([]*Symbol, error) {
	f, err := fs.Open(mapPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open map file %q", mapPath)
	}
	defer f.Close()
	syms, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read map file %q", mapPath)
	}
	return syms, nil
}

// Parse parses the given symbol map file, reading from r. Lines which are not
// symbol lines are skipped. Symbols are returned in the order of appearance;
// duplicate symbol names are kept.
func Parse(r io.Reader) ([]*Symbol, error) {
	// Read lines.
	lines, err := readLines(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Example contents of foo.map file:
	//
	//    00:0000ABCD my_symbol
	//      1:ff   another_sym
	//    invalid line without colon
	//    00:1234 sym extra_token
	var syms []*Symbol
	for _, line := range lines {
		sym, ok := parseSymbol(line)
		if !ok {
			continue
		}
		syms = append(syms, sym)
	}
	return syms, nil
}

// parseSymbol parses the string representation of the given symbol. The
// boolean return value reports whether s is a symbol line.
func parseSymbol(s string) (*Symbol, bool) {
	m := reSymbol.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	sym := &Symbol{
		Seg:  m[1],
		Addr: m[2],
		Name: m[3],
	}
	return sym, true
}

// readLines reads and returns the lines of r. Lines are terminated by "\n",
// "\r\n" or "\r", and may be of any length; other white space is kept.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		chunk, err := br.ReadString('\n')
		if len(chunk) > 0 {
			chunk = strings.TrimSuffix(chunk, "\n")
			chunk = strings.TrimSuffix(chunk, "\r")
			// Lone carriage returns terminate lines too.
			//
			//    0:10 foo\r0:20 bar
			lines = append(lines, strings.Split(chunk, "\r")...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return lines, nil
}
