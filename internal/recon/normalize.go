package recon

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"parakh/internal/domain"
)

// dateLayouts are the accepted textual date patterns (day, month abbreviation,
// year), e.g. "15-May-2023".
var dateLayouts = []string{
	"02-Jan-2006",
	"2-Jan-2006",
}

// NormalizationError indicates a raw field value could not be canonicalized.
// The dispatcher recovers it by recording the field as a mismatch; it never
// aborts a run.
type NormalizationError struct {
	Field domain.FieldKind
	Value string
	Cause error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalizing %s value %q: %v", e.Field, e.Value, e.Cause)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// normalizeAmount strips currency symbols, grouping separators and whitespace
// ("₹ 1,04,000.00" → 104000.00) and parses the remainder as a decimal number.
func normalizeAmount(field domain.FieldKind, raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if !strings.ContainsAny(cleaned, "0123456789") {
		return 0, &NormalizationError{Field: field, Value: raw, Cause: fmt.Errorf("no digits in value")}
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &NormalizationError{Field: field, Value: raw, Cause: err}
	}
	return amount, nil
}

// normalizeDate parses a day–month-abbreviation–year date, exposing the
// calendar components for comparison without requiring exact string equality.
func normalizeDate(field domain.FieldKind, raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &NormalizationError{Field: field, Value: raw, Cause: fmt.Errorf("unparseable date")}
}

// normalizeIdentifier canonicalizes identifier-like fields (GSTIN, HSN, UDYAM,
// document numbers): trimmed, upper-cased, treated as opaque strings.
func normalizeIdentifier(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// normalizeText canonicalizes free-text fields for equality checks only:
// trimmed, inner whitespace collapsed, case-folded. No fuzzy matching.
func normalizeText(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}
