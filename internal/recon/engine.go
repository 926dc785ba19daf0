package recon

import (
	"context"
	"log"
	"time"

	"parakh/internal/domain"
	"parakh/internal/port"
)

// Engine compares two extracted field sets and produces a ReconciliationResult.
// It is safe for concurrent use: each run operates only on its own inputs.
type Engine struct {
	registry      port.TaxRegistry
	policy        Policy
	lookupTimeout time.Duration
}

// NewEngine creates a reconciliation engine. registry may be nil, in which
// case tax identifiers are judged on the local comparison alone.
func NewEngine(registry port.TaxRegistry, policy Policy, lookupTimeout time.Duration) *Engine {
	if lookupTimeout <= 0 {
		lookupTimeout = 5 * time.Second
	}
	return &Engine{
		registry:      registry,
		policy:        policy,
		lookupTimeout: lookupTimeout,
	}
}

// Reconcile runs the per-field comparison over every field present in both
// sets, confirms the tax identifier against the registry, and aggregates.
// It never fails: registry problems downgrade to the locally-computed status.
func (e *Engine) Reconcile(ctx context.Context, po, inv domain.FieldSet) *domain.ReconciliationResult {
	fields := make(map[domain.FieldKind]domain.FieldComparison, len(domain.AllFieldKinds))
	for _, kind := range domain.AllFieldKinds {
		poVal, okPO := po[kind]
		invVal, okInv := inv[kind]
		if !okPO || !okInv {
			// Fields present in only one document are excluded, not an error.
			continue
		}
		fields[kind] = Compare(e.policy, kind, poVal, invVal)
	}

	result := &domain.ReconciliationResult{Fields: fields}

	// The registry is a confirming oracle for the tax identifier, never a
	// blocking dependency: on success its canonical value overrides the
	// local verdict, on failure the local verdict stands.
	if fc, ok := fields[domain.FieldGSTIN]; ok && e.registry != nil {
		rec, err := e.lookupGSTIN(ctx, fc.InvoiceValue)
		if err != nil {
			log.Printf("recon.Engine: registry lookup failed, keeping local status %s: %v", fc.Status, err)
		} else {
			if normalizeIdentifier(fc.InvoiceValue) == normalizeIdentifier(rec.GSTIN) {
				fc.Status = domain.StatusMatch
			} else {
				fc.Status = domain.StatusMismatch
			}
			fc.RegistryValue = rec.GSTIN
			fields[domain.FieldGSTIN] = fc
			result.Registry = rec
		}
	}

	result.Overall = Aggregate(fields)
	return result
}

// lookupGSTIN bounds each registry call with the configured timeout and
// retries at most once.
func (e *Engine) lookupGSTIN(ctx context.Context, gstin string) (*domain.RegistryRecord, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		lookupCtx, cancel := context.WithTimeout(ctx, e.lookupTimeout)
		rec, err := e.registry.LookupGSTIN(lookupCtx, normalizeIdentifier(gstin))
		cancel()
		if err == nil {
			return rec, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
