package transact

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

const gweiDecimals = 9

// GasPricePolicy decides the legacy gas price attached to every transaction.
// A Fixed policy always uses Min. Otherwise the node's suggestion is used,
// floored at Min.
type GasPricePolicy struct {
	Min   *big.Int
	Fixed bool
}

// FixedGasPrice returns a policy that always pays price.
func FixedGasPrice(price *big.Int) GasPricePolicy {
	return GasPricePolicy{Min: price, Fixed: true}
}

// MinGasPrice returns a policy that follows the node's suggestion but never goes below min.
func MinGasPrice(min *big.Int) GasPricePolicy {
	return GasPricePolicy{Min: min}
}

// Price resolves the gas price for one transaction.
func (p GasPricePolicy) Price(ctx context.Context, pricer ethereum.GasPricer) (*big.Int, error) {
	if p.Fixed {
		if p.Min == nil || p.Min.Sign() <= 0 {
			return nil, errors.New("fixed gas price policy requires a positive price")
		}
		return new(big.Int).Set(p.Min), nil
	}

	suggested, err := pricer.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch gas price suggestion: %w", Classify(err))
	}
	if p.Min != nil && suggested.Cmp(p.Min) < 0 {
		return new(big.Int).Set(p.Min), nil
	}
	return suggested, nil
}

// Apply returns a per-call copy of opts carrying ctx and the resolved gas price.
// The shared signer options are never mutated.
func (p GasPricePolicy) Apply(ctx context.Context, opts *bind.TransactOpts, pricer ethereum.GasPricer) (*bind.TransactOpts, error) {
	if opts == nil {
		return nil, ErrNoTransactOpts
	}

	price, err := p.Price(ctx, pricer)
	if err != nil {
		return nil, err
	}

	callOpts := *opts
	callOpts.Context = ctx
	callOpts.GasPrice = price
	callOpts.GasFeeCap = nil
	callOpts.GasTipCap = nil
	return &callOpts, nil
}

// String renders the policy for logs.
func (p GasPricePolicy) String() string {
	min := "0"
	if p.Min != nil {
		min = FormatGwei(p.Min)
	}
	if p.Fixed {
		return "fixed " + min + " gwei"
	}
	return "suggested, min " + min + " gwei"
}

// ParseGwei converts a decimal gwei amount such as "0.02" to wei without
// floating point rounding.
func ParseGwei(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty gas price")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > gweiDecimals {
		return nil, fmt.Errorf("gas price %q has more than %d decimals", s, gweiDecimals)
	}
	frac += strings.Repeat("0", gweiDecimals-len(frac))

	wei, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok || wei.Sign() < 0 {
		return nil, fmt.Errorf("invalid gas price %q", s)
	}
	return wei, nil
}

// FormatGwei renders a wei amount in gwei with trailing zeros trimmed.
func FormatGwei(wei *big.Int) string {
	digits := new(big.Int).Abs(wei).String()
	if len(digits) <= gweiDecimals {
		digits = strings.Repeat("0", gweiDecimals-len(digits)+1) + digits
	}
	whole, frac := digits[:len(digits)-gweiDecimals], strings.TrimRight(digits[len(digits)-gweiDecimals:], "0")
	out := whole
	if frac != "" {
		out += "." + frac
	}
	if wei.Sign() < 0 {
		out = "-" + out
	}
	return out
}
