// contracthash CLI
// Computes StarkNet contract-definition hashes and optionally extracts
// the canonical ABI and bytecode.

package main

import (
	"fmt"
	"os"

	"github.com/starkhash-io/contracthash/pkg/contracthash"
)

func main() {
	if err := contracthash.NewCLI().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
