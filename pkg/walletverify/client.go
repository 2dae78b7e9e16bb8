package walletverify

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/marcus-gomes-v/wallet-signature-verify/internal/log"
	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

// Client provides a high-level API over the strategies, including batch
// verification on a bounded worker pool.
type Client struct {
	parser  InputParser
	workers int
}

// BatchResult is the outcome for one record. Exactly one of Result and Err
// is set.
type BatchResult struct {
	Index  int                 `json:"index" yaml:"index"`
	Record *Record             `json:"record" yaml:"record"`
	Result *VerificationResult `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error               `json:"-" yaml:"-"`
}

// Valid reports whether the record verified without error and passed all checks.
func (b *BatchResult) Valid() bool {
	return b.Err == nil && b.Result.IsValid()
}

// NewClient creates a new client with default settings: JSON input and one
// worker per CPU.
func NewClient() *Client {
	return &Client{
		parser: &JSONParser{},
	}
}

// WithParser sets the parser used by VerifyBatch.
func (c *Client) WithParser(parser InputParser) *Client {
	c.parser = parser
	return c
}

// WithWorkers sets the worker pool size. Zero or less means runtime.NumCPU().
func (c *Client) WithWorkers(n int) *Client {
	c.workers = n
	return c
}

// Verify runs the strategy for wt on a single input.
func (c *Client) Verify(ctx context.Context, wt WalletType, in *VerificationInput) (*VerificationResult, error) {
	strategy := NewStrategy(wt)
	if strategy == nil {
		return nil, verifyerr.Input("walletverify.Client", "%s", UnsupportedWalletError(wt.String()))
	}
	return c.VerifyWith(ctx, strategy, in)
}

// VerifyWith runs in through an already constructed strategy.
func (c *Client) VerifyWith(ctx context.Context, strategy Strategy, in *VerificationInput) (*VerificationResult, error) {
	ctx = log.WithLogField(ctx, "wallet", strategy.Name())
	return strategy.Verify(ctx, in)
}

// VerifyBatch parses records from source and verifies them.
func (c *Client) VerifyBatch(ctx context.Context, source string) ([]*BatchResult, error) {
	records, err := c.parser.ParseRecords(source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse records")
	}
	return c.VerifyRecords(ctx, records)
}

// VerifyRecords verifies in-memory records concurrently. Results are
// returned in input order; per-record failures are kept in BatchResult.Err.
// If ctx is cancelled, records not yet verified carry ctx.Err() and the
// same error is returned.
func (c *Client) VerifyRecords(ctx context.Context, records []*Record) ([]*BatchResult, error) {
	results := make([]*BatchResult, len(records))
	for i, rec := range records {
		results[i] = &BatchResult{Index: i, Record: rec}
	}
	if len(records) == 0 {
		return results, nil
	}

	numWorkers := c.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(records) {
		numWorkers = len(records)
	}

	workChan := make(chan int, numWorkers)
	go func() {
		defer close(workChan)
		for i := range records {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workChan {
				if ctx.Err() != nil {
					return
				}
				results[i].Result, results[i].Err = c.verifyRecord(ctx, i, records[i])
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for _, r := range results {
			if r.Result == nil && r.Err == nil {
				r.Err = err
			}
		}
		return results, err
	}
	return results, nil
}

func (c *Client) verifyRecord(ctx context.Context, index int, rec *Record) (*VerificationResult, error) {
	if rec == nil {
		return nil, verifyerr.Input("walletverify.Client", "record %d is empty", index)
	}
	wt, err := ParseWalletType(rec.Wallet)
	if err != nil {
		return nil, err
	}
	ctx = log.WithLogField(ctx, "record", strconv.Itoa(index))
	result, err := c.Verify(ctx, wt, rec.Input())
	if err != nil {
		log.L(ctx).Debugf("Record failed: %s", err)
	}
	return result, err
}
