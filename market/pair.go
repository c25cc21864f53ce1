// market/pair.go
package market

import "strings"

// SplitPair splits "BTC/USDT" into its base and quote currencies.
// Malformed pairs fall back to the "BASE"/"QUOTE" placeholders so
// display code always has something to print.
func SplitPair(pair string) (base, quote string) {
	parts := strings.SplitN(pair, "/", 2)

	base = "BASE"
	if len(parts) > 0 && parts[0] != "" {
		base = strings.ToUpper(parts[0])
	}

	quote = "QUOTE"
	if len(parts) > 1 && parts[1] != "" {
		quote = strings.ToUpper(parts[1])
	}
	return base, quote
}
