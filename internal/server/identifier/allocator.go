// Package identifier allocates the role-scoped, human readable account
// identifiers (PRIXT-1234, MIXT-5678, ...).
//
// Allocation is check-then-return: the allocator queries the account store
// for each random candidate and hands back the first one nobody holds. It
// never writes; the caller persists the identifier with the account. Two
// concurrent allocations can therefore return the same candidate before
// either is written. The store has no uniqueness constraint on the column
// and none is assumed here.
package identifier

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/infixtech/ixtportal/internal/common"
	"github.com/infixtech/ixtportal/internal/logging"
	"github.com/infixtech/ixtportal/internal/server/models"
)

const (
	// MaxAttempts bounds the number of candidates tried per allocation.
	MaxAttempts = 10

	minNumber  = 1000
	numberSpan = 9000 // 1000..9999
)

// Checker answers whether an identifier is already assigned to an account.
type Checker interface {
	CustomIDExists(ctx context.Context, customID string) (bool, error)
}

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.Intn(n) }

// Allocator hands out role-prefixed identifiers. It is safe for concurrent
// use when its Checker is.
type Allocator struct {
	checker Checker
	source  Source
	logger  logging.Logger
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithSource replaces the random source. It must be safe for concurrent use
// if the allocator is.
func WithSource(s Source) Option {
	return func(a *Allocator) { a.source = s }
}

// WithLogger sets the logger used for per-allocation diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(a *Allocator) { a.logger = l }
}

// NewAllocator returns an Allocator that checks candidates against checker,
// drawing numbers from math/rand unless WithSource says otherwise.
func NewAllocator(checker Checker, opts ...Option) *Allocator {
	a := &Allocator{
		checker: checker,
		source:  globalSource{},
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("module", "identifier_allocator")
	return a
}

// Allocate returns an identifier for role that no account held at the time
// it was checked.
//
// Errors:
//   - common.ErrInvalidRole: role is not one of the four known roles; no query is made.
//   - common.ErrStoreUnavailable: the existence check failed or ctx ended; the
//     cause stays in the chain.
//   - common.ErrAllocationExhausted: MaxAttempts candidates were all taken.
func (a *Allocator) Allocate(ctx context.Context, role models.Role) (string, error) {
	prefix := role.Prefix()
	if prefix == "" {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidRole, role)
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
		}

		candidate := Format(prefix, minNumber+a.source.IntN(numberSpan))

		taken, err := a.checker.CustomIDExists(ctx, candidate)
		if err != nil {
			a.logger.Error(ctx, "identifier existence check failed", "role", role, "attempt", attempt, "error", err)
			return "", fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
		}
		if !taken {
			a.logger.Debug(ctx, "identifier allocated", "role", role, "id", candidate, "attempt", attempt)
			return candidate, nil
		}

		a.logger.Warn(ctx, "identifier collision", "role", role, "candidate", candidate, "attempt", attempt)
	}

	a.logger.Error(ctx, "identifier allocation exhausted", "role", role, "attempts", MaxAttempts)
	return "", fmt.Errorf("%w: role %s after %d attempts", common.ErrAllocationExhausted, role, MaxAttempts)
}
