// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package randomizers

import (
	"fmt"
	"strings"

	"github.com/greenmaskio/greenrand/pkg/generators"
)

const (
	DefaultCreditCardBin    = "421870"
	DefaultCreditCardLength = 16

	isbnPrefix = "978"
)

// CreditCardRandomizer generates card numbers that start with the bank identification number and end
// with a Luhn check digit.
type CreditCardRandomizer struct {
	src    *generators.Source
	bin    string
	length int
	buf    []byte
}

func NewCreditCardRandomizer(src *generators.Source, bin string, length int) (*CreditCardRandomizer, error) {
	if !isDigits(bin) {
		return nil, fmt.Errorf("bin %q must contain only digits: %w", bin, ErrWrongLimits)
	}
	if length < len(bin)+1 {
		return nil, fmt.Errorf("length %d is too short for bin %q and check digit: %w", length, bin, ErrWrongLimits)
	}
	return &CreditCardRandomizer{
		src:    src,
		bin:    bin,
		length: length,
		buf:    make([]byte, 0, length),
	}, nil
}

func (cr *CreditCardRandomizer) Next() string {
	cr.buf = append(cr.buf[:0], cr.bin...)
	for len(cr.buf) < cr.length-1 {
		cr.buf = append(cr.buf, byte('0'+cr.src.IntN(10)))
	}
	cr.buf = append(cr.buf, byte('0'+LuhnCheckDigit(string(cr.buf))))
	return string(cr.buf)
}

// LuhnCheckDigit returns the digit that makes payload+digit pass the Luhn checksum.
func LuhnCheckDigit(payload string) int {
	var sum int
	double := true
	for i := len(payload) - 1; i >= 0; i-- {
		d := int(payload[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// LuhnValid reports whether the number passes the Luhn checksum.
func LuhnValid(number string) bool {
	if len(number) < 2 || !isDigits(number) {
		return false
	}
	return LuhnCheckDigit(number[:len(number)-1]) == int(number[len(number)-1]-'0')
}

// EANRandomizer generates EAN-13 or EAN-8 codes with a valid check digit.
type EANRandomizer struct {
	src    *generators.Source
	length int
	buf    []byte
}

func NewEANRandomizer(src *generators.Source, length int) (*EANRandomizer, error) {
	if length != 8 && length != 13 {
		return nil, fmt.Errorf("unsupported EAN length %d: %w", length, ErrWrongLimits)
	}
	return &EANRandomizer{
		src:    src,
		length: length,
		buf:    make([]byte, 0, length),
	}, nil
}

func (er *EANRandomizer) Next() string {
	er.buf = er.buf[:0]
	for len(er.buf) < er.length-1 {
		er.buf = append(er.buf, byte('0'+er.src.IntN(10)))
	}
	er.buf = append(er.buf, byte('0'+EANCheckDigit(string(er.buf))))
	return string(er.buf)
}

// EANCheckDigit computes the GS1 check digit: weights 3 and 1 alternate starting from the rightmost
// payload digit.
func EANCheckDigit(payload string) int {
	var sum int
	weight := 3
	for i := len(payload) - 1; i >= 0; i-- {
		sum += int(payload[i]-'0') * weight
		weight = 4 - weight
	}
	return (10 - sum%10) % 10
}

// ISBNRandomizer generates ISBN-13 numbers formatted as 978-ddd-ddd-ddd-d.
type ISBNRandomizer struct {
	src *generators.Source
	sb  strings.Builder
}

func NewISBNRandomizer(src *generators.Source) *ISBNRandomizer {
	return &ISBNRandomizer{
		src: src,
	}
}

func (ir *ISBNRandomizer) Next() string {
	digits := make([]byte, 0, 12)
	digits = append(digits, isbnPrefix...)
	for len(digits) < 12 {
		digits = append(digits, byte('0'+ir.src.IntN(10)))
	}
	check := EANCheckDigit(string(digits))

	ir.sb.Reset()
	for i, d := range digits {
		if i > 0 && i%3 == 0 {
			ir.sb.WriteByte('-')
		}
		ir.sb.WriteByte(d)
	}
	ir.sb.WriteByte('-')
	ir.sb.WriteByte(byte('0' + check))
	return ir.sb.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
