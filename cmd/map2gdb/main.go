// map2gdb generates GDB scripts from symbol map files.
//
// Usage:
//
//    map2gdb [OPTION]... MAP_FILE OUTPUT_FILE
//
// Flags:
//
//    -v    enable verbose output
//
// Each symbol line of the map file ("segment:offset symbol") produces one line
// of the GDB script, which sets a convenience variable to the offset.
//
//    set $symbol = 0xoffset
//
// The script may be loaded with "source OUTPUT_FILE" from within GDB. Paths
// starting with "-" must follow a "--" argument.
//
//    map2gdb -- -old.map old.gdb
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kr/pretty"
	"github.com/mewkiz/pkg/term"
	"github.com/mewrev/gdbsym"
	"github.com/spf13/afero"
)

var (
	// dbg is a logger with the "map2gdb:" prefix which logs debug messages to
	// standard error.
	dbg = log.New(os.Stderr, term.CyanBold("map2gdb:")+" ", 0)
	// warn is a logger with the "map2gdb:" prefix which logs warning messages
	// to standard error.
	warn = log.New(os.Stderr, term.RedBold("map2gdb:")+" ", 0)
)

func usage() {
	const use = `
Generate GDB script from symbol map file.

Usage:

	map2gdb [OPTION]... MAP_FILE OUTPUT_FILE

Flags:
`
	fmt.Fprintln(os.Stderr, use[1:])
	flag.PrintDefaults()
}

func main() {
	// Parse command line arguments.
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "enable verbose output")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	mapPath, outPath := flag.Arg(0), flag.Arg(1)
	if !verbose {
		dbg.SetOutput(io.Discard)
	}

	// Generate GDB script.
	if err := map2gdb(gdbsym.OsFs, mapPath, outPath); err != nil {
		warn.Fatalf("%+v", err)
	}
	fmt.Printf("Generated gdb script: %s\n", outPath)
}

// map2gdb parses the symbol map file mapPath and writes a GDB script for its
// symbols to outPath.
func map2gdb(fs afero.Fs, mapPath, outPath string) error {
	syms, err := gdbsym.ParseFileFs(fs, mapPath)
	if err != nil {
		return err
	}
	dbg.Printf("parsed %d symbols from %q", len(syms), mapPath)
	if dbg.Writer() != io.Discard {
		pretty.Fprintf(dbg.Writer(), "%# v\n", syms)
	}
	return gdbsym.WriteScriptFileFs(fs, outPath, syms)
}
