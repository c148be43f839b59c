// nativetool exercises the native layer from the command line: digests,
// VDF proving/verification, and gas-cost queries against a schedule.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obsidianvm/obsidian/common"
	"github.com/obsidianvm/obsidian/gas"
	"github.com/obsidianvm/obsidian/log"
	"github.com/obsidianvm/obsidian/types"
	"github.com/obsidianvm/obsidian/vdf"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func readInput(hexData, file string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	return hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "nativetool",
		Short: "Obsidian VM native-layer tool",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		logLevel   string
		debug      string
		schedule   string
		vdfParams  string
		alg        string
		hexData    string
		file       string
		iterations uint64
		outputHex  string
		proofHex   string
		opName     string
		inputLen   int
	)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log.level", "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&debug, "debug", "", "comma-separated log modules to enable")

	var hashCmd = &cobra.Command{
		Use:   "hash",
		Short: "Compute a native digest",
		Run: func(cmd *cobra.Command, args []string) {
			log.InitLogger(logLevel)
			log.EnableModules(debug)
			data, err := readInput(hexData, file)
			if err != nil {
				fmt.Printf("Failed to read input: %v\n", err)
				os.Exit(1)
			}
			var h common.Hash
			switch alg {
			case "sha2_256":
				h = common.Sha2_256(data)
			case "sha3_256":
				h = common.Sha3_256(data)
			case "keccak_256":
				h = common.Keccak256(data)
			case "blake2b_256":
				h = common.Blake2b256(data)
			default:
				fmt.Printf("Unknown algorithm %q\n", alg)
				os.Exit(1)
			}
			fmt.Printf("%x\n", h.Bytes())
		},
	}
	hashCmd.Flags().StringVar(&alg, "alg", "sha3_256", "digest algorithm")
	hashCmd.Flags().StringVar(&hexData, "hex", "", "input as hex")
	hashCmd.Flags().StringVar(&file, "file", "", "input file path")

	var vdfCmd = &cobra.Command{
		Use:   "vdf",
		Short: "VDF proving and verification",
	}

	var proveCmd = &cobra.Command{
		Use:   "prove",
		Short: "Run the full delay computation and emit (output, proof)",
		Run: func(cmd *cobra.Command, args []string) {
			log.InitLogger(logLevel)
			log.EnableModules(debug)
			params, err := vdf.ReadParams(vdfParams)
			if err != nil {
				fmt.Printf("Failed to read VDF params %s: %v\n", vdfParams, err)
				os.Exit(1)
			}
			data, err := readInput(hexData, file)
			if err != nil {
				fmt.Printf("Failed to read input: %v\n", err)
				os.Exit(1)
			}
			output, proof, err := vdf.Prove(params, data, iterations)
			if err != nil {
				fmt.Printf("Prove failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("output: %x\n", output)
			fmt.Printf("proof:  %x\n", proof)
		},
	}
	proveCmd.Flags().StringVar(&hexData, "hex", "", "input as hex")
	proveCmd.Flags().StringVar(&file, "file", "", "input file path")
	proveCmd.Flags().Uint64Var(&iterations, "iterations", 1024, "sequential squarings (power of two)")

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify a delay proof",
		Run: func(cmd *cobra.Command, args []string) {
			log.InitLogger(logLevel)
			log.EnableModules(debug)
			params, err := vdf.ReadParams(vdfParams)
			if err != nil {
				fmt.Printf("Failed to read VDF params %s: %v\n", vdfParams, err)
				os.Exit(1)
			}
			data, err := readInput(hexData, file)
			if err != nil {
				fmt.Printf("Failed to read input: %v\n", err)
				os.Exit(1)
			}
			output, err := hex.DecodeString(strings.TrimPrefix(outputHex, "0x"))
			if err != nil {
				fmt.Printf("Failed to decode output: %v\n", err)
				os.Exit(1)
			}
			proof, err := hex.DecodeString(strings.TrimPrefix(proofHex, "0x"))
			if err != nil {
				fmt.Printf("Failed to decode proof: %v\n", err)
				os.Exit(1)
			}
			valid, code := vdf.Verify(params, data, iterations, output, proof)
			if code != types.OK {
				fmt.Printf("abort: %s\n", code)
				os.Exit(1)
			}
			fmt.Printf("valid: %v\n", valid)
		},
	}
	verifyCmd.Flags().StringVar(&hexData, "hex", "", "input as hex")
	verifyCmd.Flags().StringVar(&file, "file", "", "input file path")
	verifyCmd.Flags().Uint64Var(&iterations, "iterations", 1024, "sequential squarings (power of two)")
	verifyCmd.Flags().StringVar(&outputHex, "output", "", "claimed output as hex")
	verifyCmd.Flags().StringVar(&proofHex, "proof", "", "proof as hex")
	vdfCmd.PersistentFlags().StringVar(&vdfParams, "vdf.params", "default", "VDF params id or path")
	vdfCmd.AddCommand(proveCmd, verifyCmd)

	var costCmd = &cobra.Command{
		Use:   "cost",
		Short: "Query the gas schedule",
		Run: func(cmd *cobra.Command, args []string) {
			sched, err := gas.ReadSchedule(schedule)
			if err != nil {
				fmt.Printf("Failed to read schedule %s: %v\n", schedule, err)
				os.Exit(1)
			}
			op, ok := types.ParseNativeOp(opName)
			if !ok {
				fmt.Printf("Unknown op %q\n", opName)
				os.Exit(1)
			}
			if op == types.OpVdfVerify {
				fmt.Printf("%d\n", sched.CostVdf(inputLen, iterations))
			} else {
				fmt.Printf("%d\n", sched.Cost(op, inputLen))
			}
		},
	}
	costCmd.Flags().StringVar(&schedule, "schedule", "default", "gas schedule id or path")
	costCmd.Flags().StringVar(&opName, "op", "sha3_256", "native op name")
	costCmd.Flags().IntVar(&inputLen, "len", 0, "input length in bytes")
	costCmd.Flags().Uint64Var(&iterations, "iterations", 1024, "iterations (vdf_verify only)")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nativetool %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}

	rootCmd.AddCommand(hashCmd, vdfCmd, costCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
