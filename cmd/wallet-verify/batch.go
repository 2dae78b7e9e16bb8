package main

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/marcus-gomes-v/wallet-signature-verify/internal/output"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/walletverify"
)

type batchOptions struct {
	file    string
	format  string
	workers int
	output  string
}

func newBatchCmd(stdout io.Writer) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Verify every record of a JSON, YAML or CSV file",
		Long: "Verify many signatures concurrently. Each record carries wallet, signature,\n" +
			"address and an optional challenge. Exit code is 0 when every record is valid,\n" +
			"1 when any record failed and 2 when the file cannot be read.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, stdout, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "Path to the batch file")
	f.StringVar(&opts.format, "format", "", "File format: json, yaml or csv (default: from extension)")
	f.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = one per CPU)")
	f.StringVarP(&opts.output, "output", "o", "text", "Output format (text or json)")
	return cmd
}

func runBatch(cmd *cobra.Command, stdout io.Writer, opts *batchOptions) error {
	if opts.file == "" {
		return usageError("--file is required")
	}
	if opts.output != "text" && opts.output != "json" {
		return usageError("--output must be text or json, got %q", opts.output)
	}
	parser, err := walletverify.ParserForFormat(opts.format, opts.file)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	client := walletverify.NewClient().WithParser(parser).WithWorkers(opts.workers)
	results, err := client.VerifyBatch(cmd.Context(), opts.file)
	if err != nil {
		return &exitError{code: exitUsage, err: errors.Wrap(err, opts.file)}
	}

	failed := 0
	if opts.output == "json" {
		if err := output.WriteJSON(stdout, results); err != nil {
			return err
		}
		for _, r := range results {
			if !r.Valid() {
				failed++
			}
		}
	} else {
		failed = output.PrintBatch(stdout, results)
	}
	if failed > 0 {
		return &exitError{code: exitInvalid}
	}
	return nil
}
