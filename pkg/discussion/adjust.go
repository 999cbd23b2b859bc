package discussion

import (
	"fmt"
	"time"
)

// Operation is the direction of a discussion adjustment.
type Operation string

const (
	OperationAdd      Operation = "add"
	OperationSubtract Operation = "subtract"
)

// Amount converts days and hours into hours, at most MaxHours.
func Amount(days, hours int) (int, error) {
	if days < 0 || hours < 0 || days > MaxHours/24 || hours > MaxHours {
		return 0, ErrInvalidAmount
	}
	total := days*24 + hours
	if total == 0 || total > MaxHours {
		return 0, ErrInvalidAmount
	}
	return total, nil
}

// Adjust adds or subtracts days/hours from current total hours. Subtraction clamps at
// zero; an addition past MaxHours fails with ErrPeriodTooLong.
func Adjust(current, days, hours int, op Operation) (int, error) {
	amount, err := Amount(days, hours)
	if err != nil {
		return 0, err
	}
	if current < 0 {
		current = 0
	}
	if current > MaxHours {
		current = MaxHours
	}

	switch op {
	case OperationAdd:
		if current+amount > MaxHours {
			return 0, ErrPeriodTooLong
		}
		return current + amount, nil
	case OperationSubtract:
		next := current - amount
		if next < 0 {
			next = 0
		}
		return next, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}

// CheckReduction rejects a reduction of amountHours that is larger than the time left.
func CheckReduction(amountHours int, left time.Duration) error {
	if amountHours <= 0 || amountHours > MaxHours {
		return ErrInvalidAmount
	}
	if time.Duration(amountHours)*time.Hour > left {
		return ErrExceedsRemaining
	}
	return nil
}
