// Copyright 2025 StarkHash Project
//
// CLI subcommands for hashing and extracting contract definitions.

package contracthash

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

// NewCLI builds the contracthash command tree: "hash" prints a contract's
// hash, "extract" additionally writes out the reserialized ABI and
// bytecode. Both subcommands transparently decompress a ".zst"-suffixed
// input file, since fixtures this large are routinely shipped compressed.
func NewCLI() *cobra.Command {
	root := &cobra.Command{
		Use:   "contracthash",
		Short: "Compute StarkNet contract-definition hashes",
		// main prints the returned error itself; without these cobra
		// would print it a second time and dump the usage block on
		// every runtime failure, not just flag mistakes.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newHashCmd())
	root.AddCommand(newExtractCmd())
	return root
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <contract-definition.json[.zst]>",
		Short: "Print the contract hash for a contract-definition document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDefinition(args[0])
			if err != nil {
				return err
			}
			hash, err := ComputeContractHash(raw)
			if err != nil {
				return fmt.Errorf("compute contract hash: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash.Hex())
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	var abiOut, codeOut string

	cmd := &cobra.Command{
		Use:   "extract <contract-definition.json[.zst]>",
		Short: "Print the contract hash and write out the canonical ABI and bytecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDefinition(args[0])
			if err != nil {
				return err
			}
			abi, code, hash, err := ExtractABICodeHash(raw)
			if err != nil {
				return fmt.Errorf("extract abi/code hash: %w", err)
			}

			if abiOut != "" {
				if err := os.WriteFile(abiOut, abi, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", abiOut, err)
				}
			}
			if codeOut != "" {
				if err := os.WriteFile(codeOut, code, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", codeOut, err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&abiOut, "abi-out", "", "path to write the reserialized ABI JSON to")
	cmd.Flags().StringVar(&codeOut, "code-out", "", "path to write the reserialized bytecode JSON to")
	return cmd
}

// readDefinition reads path, transparently decompressing it if its name
// ends in ".zst". Contract-definition fixtures are routinely shipped
// zstd-compressed since the raw JSON can run to several hundred kilobytes.
func readDefinition(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return raw, nil
	}

	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open zstd reader for %s: %w", path, err)
	}
	defer dec.Close()

	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return out, nil
}
