// Package payment validates card details and simulates charge processing.
// There is no gateway behind it: a successful validation always results in
// a successful charge after a fixed processing delay.
package payment

import (
	"fmt"
	"strings"
	"time"
)

// Supported payment methods.  Only card input is validated; the other
// methods pass straight through to processing.
const (
	MethodCard   = "card"
	MethodPayPal = "paypal"
	MethodApple  = "apple"
	MethodGoogle = "google"
)

// Card carries the raw form input for card payments.
type Card struct {
	Number string `json:"card_number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
	Name   string `json:"cardholder_name"`
}

// ValidationError reports the first failing card field along with the
// message shown to the user.  Validation stops at the first failure so no
// partial submission is possible.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks the card fields in fixed order: number, expiry, CVV,
// name.  Rules match the booking form: at least 16 digits after stripping
// spaces, a 5-character MM/YY expiry, at least 3 CVV digits, and a
// non-blank cardholder name.
func (c Card) Validate() error {
	if digits := strings.ReplaceAll(c.Number, " ", ""); len(digits) < 16 {
		return &ValidationError{Field: "card_number", Message: "Please enter a valid 16-digit card number"}
	}
	if len(c.Expiry) < 5 {
		return &ValidationError{Field: "expiry", Message: "Please enter a valid expiry date (MM/YY)"}
	}
	if len(c.CVV) < 3 {
		return &ValidationError{Field: "cvv", Message: "Please enter a valid CVV"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "cardholder_name", Message: "Please enter the cardholder name"}
	}
	return nil
}

// Last4 returns the last four digits of the card number for receipts.
func (c Card) Last4() string {
	digits := onlyDigits(c.Number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// FormatNumber normalizes raw card input into groups of four digits, e.g.
// "1234567890123456" -> "1234 5678 9012 3456".  Non-digits are dropped.
func FormatNumber(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var parts []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry normalizes raw expiry input into MM/YY shape, e.g. "1225"
// -> "12/25".  Inputs shorter than two digits are returned as-is.
func FormatExpiry(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) >= 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Receipt is the result of a processed charge.
type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	Method        string    `json:"method"`
	CardLast4     string    `json:"card_last4,omitempty"`
	AmountCents   uint32    `json:"amount_cents"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// DefaultDelay approximates gateway latency for the simulated charge.
const DefaultDelay = 3 * time.Second

// Processor simulates charge processing.  Delay is the fixed processing
// time; once a charge starts it cannot be aborted.  The clock is injected
// so tests get stable transaction ids.
type Processor struct {
	Delay time.Duration
	now   func() time.Time
}

// NewProcessor returns a processor with the given delay.
func NewProcessor(delay time.Duration) *Processor {
	return &Processor{Delay: delay, now: time.Now}
}

// Charge validates card input when the method is card, waits out the
// processing delay and returns a receipt with a synthesized transaction
// identifier.  Non-card methods are accepted without validation.
func (p *Processor) Charge(method string, card Card, amountCents uint32) (Receipt, error) {
	rcpt := Receipt{Method: method, AmountCents: amountCents}
	if method == MethodCard {
		if err := card.Validate(); err != nil {
			return Receipt{}, err
		}
		rcpt.CardLast4 = card.Last4()
	}

	// Deliberately a plain sleep: an in-flight payment cannot be aborted.
	time.Sleep(p.Delay)

	done := p.now().UTC()
	rcpt.TransactionID = fmt.Sprintf("TXN%d", done.UnixMilli())
	rcpt.ProcessedAt = done
	return rcpt, nil
}
