// Command mdtoc maintains a table of contents inside Markdown files.
//
//	mdtoc render README.md           print a TOC block for any supported file
//	mdtoc insert README.md --line 3  insert a TOC before line 3
//	mdtoc refresh -i docs/           refresh (or insert) TOCs under docs/
//	mdtoc delete README.md           remove the TOC block
//	mdtoc follow README.md --line 9  print where a TOC entry points
//	mdtoc serve                      run the HTTP API
package main

import (
	"fmt"
	"os"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mdtoc:", err)
		os.Exit(1)
	}
}
