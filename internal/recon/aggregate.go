package recon

import "parakh/internal/domain"

// Aggregate reduces per-field verdicts to one overall status. The policy is
// fail-closed: any mismatch taints the whole run, any partial or unsettled
// field caps it at partial, and only a fully agreeing set (including the
// empty set) reports a clean match. The reduction is order-independent.
func Aggregate(fields map[domain.FieldKind]domain.FieldComparison) domain.MatchStatus {
	overall := domain.StatusMatch
	for _, fc := range fields {
		switch fc.Status {
		case domain.StatusMismatch:
			return domain.StatusMismatch
		case domain.StatusPartial, domain.StatusPending:
			overall = domain.StatusPartial
		}
	}
	return overall
}
