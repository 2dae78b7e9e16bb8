package walletverify

import (
	"fmt"
	"strings"

	"github.com/marcus-gomes-v/wallet-signature-verify/pkg/verifyerr"
)

// WalletType identifies a supported wallet.
type WalletType int

const (
	Xaman WalletType = iota + 1
	Web3Auth
	WalletConnect
	Bifrost
	Solana
)

type registration struct {
	wallet  WalletType
	id      string
	aliases []string
	create  func() Strategy
}

var registry = []registration{
	{Xaman, "xaman", []string{"xumm"}, func() Strategy { return &XamanStrategy{} }},
	{Web3Auth, "web3auth", nil, func() Strategy { return &Web3AuthStrategy{} }},
	{WalletConnect, "wallet_connect", []string{"walletconnect"}, func() Strategy { return NewWalletConnectStrategy() }},
	{Bifrost, "bifrost", nil, func() Strategy { return NewBifrostStrategy() }},
	{Solana, "solana", nil, func() Strategy { return &SolanaStrategy{} }},
}

var byName = func() map[string]WalletType {
	m := make(map[string]WalletType)
	for _, r := range registry {
		m[r.id] = r.wallet
		for _, alias := range r.aliases {
			m[alias] = r.wallet
		}
	}
	return m
}()

func lookup(wt WalletType) (registration, bool) {
	for _, r := range registry {
		if r.wallet == wt {
			return r, true
		}
	}
	return registration{}, false
}

// String returns the canonical identifier accepted by ParseWalletType.
func (wt WalletType) String() string {
	if r, ok := lookup(wt); ok {
		return r.id
	}
	return fmt.Sprintf("WalletType(%d)", int(wt))
}

// ParseWalletType resolves a wallet identifier case-insensitively.
// "xumm" and "walletconnect" are accepted as aliases.
func ParseWalletType(name string) (WalletType, error) {
	if wt, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return wt, nil
	}
	return 0, verifyerr.Input("walletverify.ParseWalletType", "%s", UnsupportedWalletError(name))
}

// SupportedWallets lists every canonical wallet identifier.
func SupportedWallets() []string {
	ids := make([]string, 0, len(registry))
	for _, r := range registry {
		ids = append(ids, r.id)
	}
	return ids
}

// NewStrategy returns the strategy for wt, or nil for an unknown type.
func NewStrategy(wt WalletType) Strategy {
	r, ok := lookup(wt)
	if !ok {
		return nil
	}
	return r.create()
}

// UnsupportedWalletError formats the message shown for an unknown wallet,
// listing the supported identifiers.
func UnsupportedWalletError(name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "wallet %q is not supported; supported wallets:", name)
	for _, id := range SupportedWallets() {
		sb.WriteString("\n  - ")
		sb.WriteString(id)
	}
	return sb.String()
}
