package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/marcus-gomes-v/wallet-signature-verify/internal/log"
	"github.com/marcus-gomes-v/wallet-signature-verify/internal/output"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/walletverify"
)

// Process exit codes.
const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

// exitError carries an exit code out of a cobra RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func usageError(format string, args ...interface{}) error {
	return &exitError{code: exitUsage, err: errors.Errorf(format, args...)}
}

type verifyOptions struct {
	wallet    string
	signature string
	address   string
	challenge string
	output    string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log.InitFromEnv()

	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitValid
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", ee.err)
		}
		if ee.code == exitUsage {
			fmt.Fprintln(stderr, "Run 'wallet-verify --help' for usage.")
		}
		return ee.code
	}
	// Flag parsing and other cobra errors.
	fmt.Fprintf(stderr, "Error: %s\n", err)
	fmt.Fprintln(stderr, "Run 'wallet-verify --help' for usage.")
	return exitUsage
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &verifyOptions{}
	cmd := &cobra.Command{
		Use:   "wallet-verify",
		Short: "Verify that a wallet address signed a challenge",
		Long: "Wallet Signature Verifier - challenge-response authentication.\n\n" +
			"Exit codes: 0 valid, 1 verification failed, 2 usage or input error.\n\n" +
			"Environment:\n" +
			"  " + log.EnvLevel + "=debug|info|warn|error   log verbosity (default warn; debug prints keys and digests)\n" +
			"  " + log.EnvFormat + "=simple|json\n\n" +
			"Supported wallets:\n" + walletList(),
		Example: "  wallet-verify --wallet xaman --signature <hex_blob> --address <r-address> --challenge <str>\n" +
			"  wallet-verify --wallet web3auth --signature <der_hex> --address <r-address> --challenge <str>\n" +
			"  wallet-verify batch --file requests.yaml",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), stdout, opts, cmd.Flags().Changed("challenge"))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.wallet, "wallet", "w", "", "Wallet type ("+strings.Join(walletverify.SupportedWallets(), ", ")+")")
	f.StringVarP(&opts.signature, "signature", "s", "", "Signature data (hex blob for Xaman, DER hex for Web3Auth, r||s||v hex for EVM, base58 for Solana)")
	f.StringVarP(&opts.address, "address", "a", "", "Expected wallet address")
	f.StringVarP(&opts.challenge, "challenge", "c", "", "Challenge string (optional for Xaman, required otherwise)")
	f.StringVarP(&opts.output, "output", "o", "text", "Output format (text or json)")

	cmd.AddCommand(newBatchCmd(stdout))
	return cmd
}

func walletList() string {
	var sb strings.Builder
	for _, id := range walletverify.SupportedWallets() {
		wt, _ := walletverify.ParseWalletType(id)
		s := walletverify.NewStrategy(wt)
		fmt.Fprintf(&sb, "  %-15s %s\n", id, s.Description())
	}
	return sb.String()
}

func runVerify(ctx context.Context, stdout io.Writer, opts *verifyOptions, hasChallenge bool) error {
	switch {
	case opts.wallet == "":
		return usageError("--wallet is required")
	case opts.signature == "":
		return usageError("--signature is required")
	case opts.address == "":
		return usageError("--address is required")
	}
	if opts.output != "text" && opts.output != "json" {
		return usageError("--output must be text or json, got %q", opts.output)
	}

	wt, err := walletverify.ParseWalletType(opts.wallet)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	in := &walletverify.VerificationInput{
		SignatureData:   opts.signature,
		ExpectedAddress: opts.address,
	}
	if hasChallenge {
		challenge := opts.challenge
		in.Challenge = &challenge
	}

	strategy := walletverify.NewStrategy(wt)
	result, err := walletverify.NewClient().VerifyWith(ctx, strategy, in)
	if err != nil {
		return &exitError{code: exitUsage, err: errors.Wrap(err, strategy.Name()+" verification error")}
	}

	if opts.output == "json" {
		if err := output.WriteJSON(stdout, result); err != nil {
			return err
		}
	} else {
		output.PrintResult(stdout, strategy.Name(), result, in.ExpectedAddress, in.Challenge)
	}
	if !result.IsValid() {
		return &exitError{code: exitInvalid}
	}
	return nil
}
