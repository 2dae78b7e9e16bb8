package walletverify

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

// Record is one verification request read from a batch file.
type Record struct {
	Wallet    string  `json:"wallet" yaml:"wallet"`
	Signature string  `json:"signature" yaml:"signature"`
	Address   string  `json:"address" yaml:"address"`
	Challenge *string `json:"challenge,omitempty" yaml:"challenge,omitempty"`
}

// Input converts the record into a VerificationInput.
func (r *Record) Input() *VerificationInput {
	return &VerificationInput{
		SignatureData:   r.Signature,
		ExpectedAddress: r.Address,
		Challenge:       r.Challenge,
	}
}

// InputParser reads verification records from a source.
type InputParser interface {
	// ParseRecords parses records from a source and returns them in order.
	ParseRecords(source string) ([]*Record, error)
}

// JSONParser parses records from JSON files.
//
// Expected format:
//
//	[
//	  {"wallet": "xaman", "signature": "7321...", "address": "r...", "challenge": "..."},
//	  {"wallet": "solana", "signature": "5Nx...", "address": "9Wz...", "challenge": "..."}
//	]
type JSONParser struct{}

func (p *JSONParser) ParseRecords(jsonFile string) ([]*Record, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer file.Close()

	var records []*Record
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&records); err != nil {
		return nil, verifyerr.Wrap(verifyerr.KindParse, "walletverify.JSONParser", err, "failed to parse JSON")
	}
	return records, nil
}

// YAMLParser parses records from YAML files holding a sequence of mappings
// with the same keys as the JSON format.
type YAMLParser struct{}

func (p *YAMLParser) ParseRecords(yamlFile string) ([]*Record, error) {
	file, err := os.Open(yamlFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer file.Close()

	var records []*Record
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&records); err != nil && err != io.EOF {
		return nil, verifyerr.Wrap(verifyerr.KindParse, "walletverify.YAMLParser", err, "failed to parse YAML")
	}
	return records, nil
}

// CSVParser parses records from CSV files with a header row.
type CSVParser struct {
	WalletCol    string // Column name for the wallet type (default: "wallet")
	SignatureCol string // Column name for the signature data (default: "signature")
	AddressCol   string // Column name for the expected address (default: "address")
	ChallengeCol string // Column name for the challenge (default: "challenge"); empty cells mean none
}

func (p *CSVParser) ParseRecords(csvFile string) ([]*Record, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, verifyerr.Wrap(verifyerr.KindParse, "walletverify.CSVParser", err, "failed to read header")
	}

	walletIdx := columnIndex(header, orDefault(p.WalletCol, "wallet"))
	sigIdx := columnIndex(header, orDefault(p.SignatureCol, "signature"))
	addrIdx := columnIndex(header, orDefault(p.AddressCol, "address"))
	challengeIdx := columnIndex(header, orDefault(p.ChallengeCol, "challenge"))
	if walletIdx < 0 || sigIdx < 0 || addrIdx < 0 {
		return nil, verifyerr.Parse("walletverify.CSVParser", "missing required columns: wallet, signature and address")
	}

	records := make([]*Record, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, verifyerr.Wrap(verifyerr.KindParse, "walletverify.CSVParser", err, "failed to read record")
		}

		rec := &Record{
			Wallet:    cell(row, walletIdx),
			Signature: cell(row, sigIdx),
			Address:   cell(row, addrIdx),
		}
		if challenge := cell(row, challengeIdx); challenge != "" {
			rec.Challenge = &challenge
		}
		if rec.Wallet == "" && rec.Signature == "" && rec.Address == "" {
			return nil, verifyerr.Parse("walletverify.CSVParser", "line %d: empty record", line)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParserForFormat returns the parser for "json", "yaml"/"yml" or "csv".
// An empty format is inferred from the file extension of source.
func ParserForFormat(format, source string) (InputParser, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(source), ".")
	}
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}, nil
	case "yaml", "yml":
		return &YAMLParser{}, nil
	case "csv":
		return &CSVParser{}, nil
	default:
		return nil, verifyerr.Input("walletverify.ParserForFormat", "unsupported batch format %q (want json, yaml or csv)", format)
	}
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
