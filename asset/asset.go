// Package asset labels tickers with their asset type.
package asset

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Type is the asset type of a ticker.
type Type string

const (
	Stock      Type = "STOCK"
	MutualFund Type = "MUTUAL_FUND"
	ETF        Type = "ETF"
	Unknown    Type = "UNKNOWN"
)

// ParseType parses a label, ignoring case and surrounding space.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case Stock, MutualFund, ETF, Unknown:
		return t, nil
	}
	return Unknown, fmt.Errorf("unknown asset type %q", s)
}

// Set is a set of ticker symbols. A nil Set is empty.
type Set map[string]struct{}

// NewSet returns a set holding tickers.
func NewSet(tickers ...string) Set {
	s := make(Set, len(tickers))
	for _, t := range tickers {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether ticker is in the set.
func (s Set) Has(ticker string) bool {
	_, ok := s[ticker]
	return ok
}

// Add inserts tickers into the set.
func (s Set) Add(tickers ...string) {
	for _, t := range tickers {
		s[t] = struct{}{}
	}
}

// Sorted returns the tickers in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ReadSet reads one ticker per line. Blank lines and lines starting with #
// are skipped; tickers are trimmed and upper-cased.
func ReadSet(r io.Reader) (Set, error) {
	s := Set{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s[strings.ToUpper(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Classify returns the asset type of ticker. The stock set is checked first,
// then mutual funds, then ETFs; the first match wins.
func Classify(ticker string, stocks, funds, etfs Set) Type {
	switch {
	case stocks.Has(ticker):
		return Stock
	case funds.Has(ticker):
		return MutualFund
	case etfs.Has(ticker):
		return ETF
	default:
		return Unknown
	}
}

// Lists bundles the three reference sets.
type Lists struct {
	Stocks      Set
	MutualFunds Set
	ETFs        Set
}

// Classify is Classify with the sets of l.
func (l Lists) Classify(ticker string) Type {
	return Classify(ticker, l.Stocks, l.MutualFunds, l.ETFs)
}

// ClassifyAll returns the label of each ticker, in order.
func (l Lists) ClassifyAll(tickers []string) []Type {
	out := make([]Type, len(tickers))
	for i, t := range tickers {
		out[i] = l.Classify(t)
	}
	return out
}

// Count returns how many tickers fall in each type.
func Count(labels []Type) map[Type]int {
	out := make(map[Type]int, 4)
	for _, l := range labels {
		out[l]++
	}
	return out
}
