// Command atomsolve solves, checks and generates atom-type assignment
// instances.
//
//	atomsolve solve -e N100_K4_0 [-p]
//	atomsolve check -e N100_K4_0 -s solution.txt
//	atomsolve generate -t 100 -k 4 -n 3
package main

import "os"

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
