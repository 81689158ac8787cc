package order

import (
	"fmt"
	"math/rand/v2"

	"marketplace/internal/pkg/errs"
)

const verificationCodeLength = 6

var errVerificationCodeFormat = errs.NewValueIsInvalidError(
	"verification code must be six digits")

// NewVerificationCode generates a random six-digit hand-off code.
// The code only gates the physical hand-over; it is not a security secret.
func NewVerificationCode() VerificationCode {
	return VerificationCode(fmt.Sprintf("%06d", rand.IntN(1000000))) //nolint:gosec // hand-off code, not a secret
}
