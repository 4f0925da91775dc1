// Package money holds monetary values as integer paise so that salary
// arithmetic never goes through floating point.
package money

import (
	"fmt"
	"math"
	"strings"
)

// Paise is an amount in the smallest currency unit (1/100 rupee).
type Paise int64

// Rupees converts to rupees for JSON boundaries only.
func (p Paise) Rupees() float64 {
	return float64(p) / 100
}

// FromRupees converts a rupee value to paise, rounding half away from zero.
func FromRupees(r float64) Paise {
	return Paise(math.Round(r * 100))
}

// Amount is a paise value that may be absent. An absent component and an
// explicit zero are different things: absent components are omitted from
// documents, zero components are shown as zero.
type Amount struct {
	Paise   Paise
	Present bool
}

func Some(p Paise) Amount {
	return Amount{Paise: p, Present: true}
}

func None() Amount {
	return Amount{}
}

// FromRupeesPtr maps an optional rupee value, keeping nil as absent.
func FromRupeesPtr(r *float64) Amount {
	if r == nil {
		return None()
	}
	return Some(FromRupees(*r))
}

// FromPaisePtr maps a nullable database column, keeping nil as absent.
func FromPaisePtr(p *int64) Amount {
	if p == nil {
		return None()
	}
	return Some(Paise(*p))
}

// OrZero treats an absent component as zero for arithmetic.
func (a Amount) OrZero() Paise {
	if !a.Present {
		return 0
	}
	return a.Paise
}

// PaisePtr returns the value as a nullable column parameter.
func (a Amount) PaisePtr() *int64 {
	if !a.Present {
		return nil
	}
	v := int64(a.Paise)
	return &v
}

// RupeesPtr returns the value in rupees for JSON, nil when absent.
func (a Amount) RupeesPtr() *float64 {
	if !a.Present {
		return nil
	}
	v := a.Paise.Rupees()
	return &v
}

// FormatRupees renders an amount as "Rs. 1,23,45,678" using Indian digit
// grouping. Fractional paise add a two-digit decimal part; whole-rupee
// amounts render without one.
func FormatRupees(p Paise) string {
	neg := p < 0
	if neg {
		p = -p
	}
	rupees := int64(p) / 100
	frac := int64(p) % 100

	s := groupIndian(fmt.Sprintf("%d", rupees))
	if frac != 0 {
		s = fmt.Sprintf("%s.%02d", s, frac)
	}
	if neg {
		return "Rs. -" + s
	}
	return "Rs. " + s
}

// FormatAmount renders an optional amount, using "-" for absent values.
func FormatAmount(a Amount) string {
	if !a.Present {
		return "-"
	}
	return FormatRupees(a.Paise)
}

// groupIndian inserts separators after the last three digits and then
// every two: "12345678" becomes "1,23,45,678".
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	parts = append(parts, tail)
	return strings.Join(parts, ",")
}
