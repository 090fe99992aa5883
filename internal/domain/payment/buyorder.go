package payment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Transbank rejects buy orders longer than 26 characters.
const maxBuyOrderLen = 26

var buyOrderStrip = regexp.MustCompile(`[^0-9A-Za-z-]`)

// BuildBuyOrder packs the customer hint, the amount and the order date into
// a buy order of the form hint_amount_YYYYMMDD. The hint is trimmed first
// when the result would not fit; amount and date always survive so the
// journal can be matched back to a sale order.
func BuildBuyOrder(customerHint string, amount int64, orderDate string) string {
	hint := buyOrderStrip.ReplaceAllString(strings.ReplaceAll(strings.TrimSpace(customerHint), " ", "-"), "")
	hint = strings.Trim(hint, "-")

	amountPart := strconv.FormatInt(amount, 10)
	datePart := strings.ReplaceAll(orderDate, "-", "")

	tail := amountPart + "_" + datePart
	if hint == "" {
		return clipBuyOrder(tail)
	}

	if budget := maxBuyOrderLen - len(tail) - 1; len(hint) > budget {
		if budget <= 0 {
			return clipBuyOrder(tail)
		}
		hint = hint[:budget]
	}

	return hint + "_" + tail
}

func clipBuyOrder(s string) string {
	if len(s) > maxBuyOrderLen {
		return s[:maxBuyOrderLen]
	}

	return s
}

// BuyOrderParts is the journal-side decoding of a buy order.
type BuyOrderParts struct {
	CustomerHint string
	Amount       int64
	OrderDate    string
}

// ParseBuyOrder reverses BuildBuyOrder. Date tokens of eight digits decode
// as YYYY-MM-DD, six digits as 20YY-MM-DD; dashes in the hint turn back
// into spaces. Buy orders minted elsewhere decode to whatever fields can be
// recognized.
func ParseBuyOrder(buyOrder string) (BuyOrderParts, error) {
	parts := strings.Split(buyOrder, "_")
	if buyOrder == "" {
		return BuyOrderParts{}, fmt.Errorf("parse buy order: empty")
	}

	out := BuyOrderParts{}

	if last := parts[len(parts)-1]; isDigits(last) {
		if date, ok := parseDateToken(last); ok {
			out.OrderDate = date
			parts = parts[:len(parts)-1]
		}
	}

	if len(parts) > 0 && isDigits(parts[len(parts)-1]) {
		if v, err := strconv.ParseInt(parts[len(parts)-1], 10, 64); err == nil {
			out.Amount = v
			parts = parts[:len(parts)-1]
		}
	}

	out.CustomerHint = strings.ReplaceAll(strings.Join(parts, "_"), "-", " ")

	return out, nil
}

// parseDateToken accepts YYYYMMDD and YYMMDD tokens. Two-digit years live in
// the 2000s. Tokens that do not decode to a calendar date are not dates.
func parseDateToken(tok string) (string, bool) {
	switch len(tok) {
	case 6:
		tok = "20" + tok
	case 8:
	default:
		return "", false
	}

	t, err := time.Parse("20060102", tok)
	if err != nil {
		return "", false
	}

	return t.Format("2006-01-02"), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
