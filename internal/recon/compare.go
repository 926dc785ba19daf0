package recon

import (
	"log"
	"math"

	"parakh/internal/domain"
)

// comparator decides the status of one field whose raw values differ.
type comparator func(p Policy, poVal, invVal string) domain.MatchStatus

// comparators binds exactly one rule to each field kind. Identifiers and
// money tolerate small, explainable drift; legal names, signers and document
// numbers must match exactly, since silent substitution there is the fraud
// signal the comparison exists to catch.
var comparators = map[domain.FieldKind]comparator{
	domain.FieldGSTIN:          compareIdentifier,
	domain.FieldHSNCode:        compareHSN,
	domain.FieldUdyamNumber:    compareUdyam,
	domain.FieldPartyName:      compareText,
	domain.FieldTotalAmount:    compareAmount,
	domain.FieldDocumentNumber: compareIdentifier,
	domain.FieldDocumentDate:   compareDate,
	domain.FieldContactName:    compareText,
}

// Compare applies the rule bound to kind and returns the field's verdict.
// Exact raw equality short-circuits to a match before any rule runs.
func Compare(p Policy, kind domain.FieldKind, poVal, invVal string) domain.FieldComparison {
	fc := domain.FieldComparison{
		Field:        kind,
		POValue:      poVal,
		InvoiceValue: invVal,
	}
	if poVal == invVal {
		fc.Status = domain.StatusMatch
		return fc
	}
	cmp, ok := comparators[kind]
	if !ok {
		// Unknown kinds never pass silently.
		fc.Status = domain.StatusMismatch
		return fc
	}
	fc.Status = cmp(p, poVal, invVal)
	return fc
}

func compareIdentifier(_ Policy, poVal, invVal string) domain.MatchStatus {
	if normalizeIdentifier(poVal) == normalizeIdentifier(invVal) {
		return domain.StatusMatch
	}
	return domain.StatusMismatch
}

// compareUdyam tolerates drift in the trailing characters of a registration
// number (typos in the serial digits) as long as the prefix agrees.
func compareUdyam(p Policy, poVal, invVal string) domain.MatchStatus {
	a := normalizeIdentifier(poVal)
	b := normalizeIdentifier(invVal)
	if a == b {
		return domain.StatusMatch
	}
	n := p.UdyamSuffixLen
	if len(a) > n && len(b) > n && a[:len(a)-n] == b[:len(b)-n] {
		return domain.StatusPartial
	}
	return domain.StatusMismatch
}

// compareHSN treats agreement on the category prefix as a partial match.
func compareHSN(p Policy, poVal, invVal string) domain.MatchStatus {
	a := normalizeIdentifier(poVal)
	b := normalizeIdentifier(invVal)
	if a == b {
		return domain.StatusMatch
	}
	n := p.HSNPrefixLen
	if len(a) >= n && len(b) >= n && a[:n] == b[:n] {
		return domain.StatusPartial
	}
	return domain.StatusMismatch
}

// compareAmount compares monetary amounts with a relative tolerance against
// the invoice amount. Unparseable values degrade to a mismatch.
func compareAmount(p Policy, poVal, invVal string) domain.MatchStatus {
	a, err := normalizeAmount(domain.FieldTotalAmount, poVal)
	if err != nil {
		log.Printf("recon: %v", err)
		return domain.StatusMismatch
	}
	b, err := normalizeAmount(domain.FieldTotalAmount, invVal)
	if err != nil {
		log.Printf("recon: %v", err)
		return domain.StatusMismatch
	}
	if a == b {
		return domain.StatusMatch
	}
	if b == 0 {
		return domain.StatusMismatch
	}
	if math.Abs(a-b)/b < p.AmountTolerance {
		return domain.StatusPartial
	}
	return domain.StatusMismatch
}

// compareDate matches on the full calendar date, with same month and year
// counting as a partial match (day-of-month OCR slips).
func compareDate(_ Policy, poVal, invVal string) domain.MatchStatus {
	a, err := normalizeDate(domain.FieldDocumentDate, poVal)
	if err != nil {
		log.Printf("recon: %v", err)
		return domain.StatusMismatch
	}
	b, err := normalizeDate(domain.FieldDocumentDate, invVal)
	if err != nil {
		log.Printf("recon: %v", err)
		return domain.StatusMismatch
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay == by && am == bm && ad == bd {
		return domain.StatusMatch
	}
	if ay == by && am == bm {
		return domain.StatusPartial
	}
	return domain.StatusMismatch
}

func compareText(_ Policy, poVal, invVal string) domain.MatchStatus {
	if normalizeText(poVal) == normalizeText(invVal) {
		return domain.StatusMatch
	}
	return domain.StatusMismatch
}
