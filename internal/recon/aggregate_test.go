package recon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parakh/internal/domain"
	"parakh/internal/recon"
)

func fieldSetOf(statuses ...domain.MatchStatus) map[domain.FieldKind]domain.FieldComparison {
	fields := make(map[domain.FieldKind]domain.FieldComparison, len(statuses))
	for i, s := range statuses {
		kind := domain.AllFieldKinds[i]
		fields[kind] = domain.FieldComparison{Field: kind, Status: s}
	}
	return fields
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		fields map[domain.FieldKind]domain.FieldComparison
		want   domain.MatchStatus
	}{
		{"empty_set", nil, domain.StatusMatch},
		{"all_match", fieldSetOf(domain.StatusMatch, domain.StatusMatch), domain.StatusMatch},
		{"partial_taints", fieldSetOf(domain.StatusMatch, domain.StatusPartial, domain.StatusMatch), domain.StatusPartial},
		{"pending_counts_as_partial", fieldSetOf(domain.StatusMatch, domain.StatusPending), domain.StatusPartial},
		{"single_mismatch_wins", fieldSetOf(domain.StatusMatch, domain.StatusPartial, domain.StatusMismatch, domain.StatusMatch), domain.StatusMismatch},
		{"mismatch_beats_pending", fieldSetOf(domain.StatusPending, domain.StatusMismatch), domain.StatusMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recon.Aggregate(tt.fields))
		})
	}
}
