package user

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidRole  = errors.New("invalid role")
)

// Accepts E.164-ish numbers: optional leading +, 6 to 20 digits.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{6,20}$`)

// Phone is the caller identity carried in the token subject.
type Phone struct {
	value string
}

func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if !phoneRegex.MatchString(s) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: s}, nil
}

func (p Phone) Value() string {
	return p.value
}

func (p Phone) String() string {
	return p.value
}
