// keysharp reports character n-gram and word statistics for a text corpus.
package main

import (
	"os"

	"github.com/cognicore/keysharp/cmd/keysharp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
