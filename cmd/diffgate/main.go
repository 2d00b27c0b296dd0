// Command diffgate measures the production code a Rust diff touches and gates it on limits.
package main

import (
	"fmt"
	"os"
)

// version is overridden at release time with -ldflags "-X main.version=vX.Y.Z"
var version = "dev"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "diffgate: %v\n", err)
		os.Exit(1)
	}
}
