package models

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidCardNumber   = errors.New("card number must be 16 digits")
	ErrInvalidExpiryFormat = errors.New("expiry must match MM/YY")
	ErrCardExpired         = errors.New("card is expired")
	ErrInvalidCvv          = errors.New("cvv must be 3 or 4 digits")
	ErrAmountOutOfRange    = errors.New("amount must be between 5 and 500")
)

const (
	MinRechargeAmount = 5.0
	MaxRechargeAmount = 500.0
)

// TransactionType distinguishes top-ups from dish payments.
type TransactionType string

const (
	TransactionRecharge TransactionType = "recharge"
	TransactionPayment  TransactionType = "payment"
)

// Transaction is one entry of the append-only meal-card log. Recharges carry
// a positive amount, payments a negative one; the card balance is the signed
// sum of the log.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// CardResponse is the meal-card view: derived balance plus history,
// most recent first.
type CardResponse struct {
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// TransactionResult is returned after a successful recharge or payment:
// the new log entry plus the balance it produced.
type TransactionResult struct {
	Transaction Transaction `json:"transaction"`
	Balance     float64     `json:"balance"`
}

// RechargeInput is the raw card form submission.
type RechargeInput struct {
	CardNumber string  `json:"card_number"`
	CardHolder string  `json:"card_holder"`
	Expiry     string  `json:"expiry"`
	CVV        string  `json:"cvv"`
	Amount     float64 `json:"amount"`
}

// PaymentInput debits the card for a dish.
type PaymentInput struct {
	DishID string `json:"dish_id" binding:"required"`
}

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	expiryRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvvRe      = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Validate runs the recharge checks in order; the first failure wins and no
// further checks run. now anchors the expiry comparison.
func (in *RechargeInput) Validate(now time.Time) error {
	digits := nonDigitRe.ReplaceAllString(in.CardNumber, "")
	if len(digits) != 16 {
		return ErrInvalidCardNumber
	}

	m := expiryRe.FindStringSubmatch(in.Expiry)
	if m == nil {
		return ErrInvalidExpiryFormat
	}

	// The card stays valid through the end of its expiry month: it is only
	// expired once that month lies strictly before the current one.
	month := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	year := 2000 + int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	expiryMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if expiryMonth.Before(currentMonth) {
		return ErrCardExpired
	}

	if !cvvRe.MatchString(in.CVV) {
		return ErrInvalidCvv
	}

	if in.Amount < MinRechargeAmount || in.Amount > MaxRechargeAmount {
		return ErrAmountOutOfRange
	}

	return nil
}

// Last4 returns the last four digits of the card number.
func (in *RechargeInput) Last4() string {
	digits := nonDigitRe.ReplaceAllString(in.CardNumber, "")
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// LuhnValid runs a Luhn checksum over the digits of value. It is not part of
// the recharge validation pipeline: whether the checksum should gate a
// recharge is an open product decision, and the digit-count check above is
// the only gate today.
func LuhnValid(value string) bool {
	digits := nonDigitRe.ReplaceAllString(value, "")
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return len(digits) >= 12 && sum%10 == 0
}
