package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// FolioPrefix starts every invoice folio.
	FolioPrefix = "FAC-"
	// MaxFolioSeq is the last sequence that fits the six-digit folio.
	MaxFolioSeq = 999999

	folioDigits = 6
)

// ErrFolioExhausted is returned once every six-digit folio has been issued.
var ErrFolioExhausted = errors.New("folio sequence exhausted")

// FormatFolio renders sequence n as FAC-NNNNNN. Callers allocating new
// folios go through FolioFor, which enforces the range.
func FormatFolio(n int64) string {
	return fmt.Sprintf("%s%0*d", FolioPrefix, folioDigits, n)
}

// FolioFor renders the folio of sequence n, which must lie in 1..MaxFolioSeq.
func FolioFor(n int64) (string, error) {
	if n > MaxFolioSeq {
		return "", ErrFolioExhausted
	}
	if n < 1 {
		return "", fmt.Errorf("folio sequence %d out of range", n)
	}
	return FormatFolio(n), nil
}

// ParseFolio extracts the numeric sequence from a folio. Only the exact
// FAC-NNNNNN form is accepted.
func ParseFolio(folio string) (int64, error) {
	digits, ok := strings.CutPrefix(folio, FolioPrefix)
	if !ok || len(digits) != folioDigits {
		return 0, fmt.Errorf("malformed folio %q", folio)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("malformed folio %q", folio)
		}
	}
	return strconv.ParseInt(digits, 10, 64)
}

// NextFolio returns the folio following last; an empty last starts the sequence.
func NextFolio(last string) (string, error) {
	if last == "" {
		return FolioFor(1)
	}
	n, err := ParseFolio(last)
	if err != nil {
		return "", err
	}
	return FolioFor(n + 1)
}
