package kernel

import "fmt"

// Money is an amount in minor currency units (cents). Arithmetic stays integral
// so derived totals never drift.
type Money int64

// Multiply returns m times n.
func (m Money) Multiply(n int) Money {
	return m * Money(n)
}

// String renders the amount with two decimals, e.g. 1999 -> "19.99".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
