package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/krellek/perltidyd/internal/perltidy"
	"github.com/krellek/perltidyd/internal/utils"
	"github.com/spf13/pflag"
)

// tidypipe pipes stdin through the same process pool the server uses. Handy
// for poking at executable resolution and rc-file discovery by hand.
func main() {
	executable := pflag.String("executable", "", "perltidy executable, empty for PATH lookup")
	profile := pflag.String("profile", "", "named perltidy profile")
	rootDir := pflag.String("root", ".", "workspace root directory")
	pflag.Parse()

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: Cannot read stdin")
		os.Exit(1)
	}

	absRoot, err := filepath.Abs(*rootDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	root := perltidy.Root{URI: utils.PathToURI(absRoot), Path: absRoot}

	pool := perltidy.NewPool(perltidy.Settings{
		Executable: *executable,
		Profile:    *profile,
	})
	handle, err := pool.Acquire(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	output, err := handle.Run(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(output)
}
