package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/routemanager/internal/domain/errors"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

const (
	maxNameLength  = 120
	maxNotesLength = 500
)

// NormalizeSKU trims and upper-cases a SKU.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// ValidateSKU reports whether sku is uppercase alphanumeric groups joined by dashes.
func ValidateSKU(sku string) bool {
	return skuPattern.MatchString(sku)
}

func requireName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domainErrors.Validation(field, "must not be empty")
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return "", domainErrors.Validation(field, "is too long")
	}
	return value, nil
}

func validatePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, domainErrors.Validation("price", "must not be negative")
	}
	if !price.Equal(price.Round(2)) {
		return decimal.Zero, domainErrors.Validation("price", "must have at most two decimals")
	}
	return price.Round(2), nil
}
