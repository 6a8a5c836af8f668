package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/vicdotun/payvault/internal/core/ports/repositories"
	"github.com/vicdotun/payvault/internal/middleware"
	"github.com/vicdotun/payvault/internal/utils"
)

const (
	referenceTokenLength   = 10
	referenceMaxAttempts   = 5
	defaultReferencePrefix = "txn"
)

// ErrReferenceExhausted is returned when reference generation keeps colliding.
// With a 10-character alphanumeric token this practically never fires.
var ErrReferenceExhausted = errors.New("could not generate a unique transaction reference")

// ReferenceGenerator mints globally unique transaction references of the form
// {prefix}_{token}. Uniqueness is checked against every row ever written,
// soft-deleted included, so a reference is never reused.
type ReferenceGenerator struct {
	prefix string
	repo   portsrepo.TransactionReader
}

// NewReferenceGenerator creates a ReferenceGenerator. An empty prefix falls
// back to "txn".
func NewReferenceGenerator(prefix string, repo portsrepo.TransactionReader) *ReferenceGenerator {
	if prefix == "" {
		prefix = defaultReferencePrefix
	}
	return &ReferenceGenerator{prefix: prefix, repo: repo}
}

// Generate returns a fresh reference, retrying on the (vanishingly rare)
// collision with an existing row.
func (g *ReferenceGenerator) Generate(ctx context.Context) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		token, err := utils.GenerateAlphanumericToken(referenceTokenLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate reference token: %w", err)
		}
		reference := g.prefix + "_" + token

		exists, err := g.repo.ReferenceExists(ctx, reference)
		if err != nil {
			return "", fmt.Errorf("failed to check reference uniqueness: %w", err)
		}
		if !exists {
			return reference, nil
		}
		logger.Warn("Transaction reference collision, retrying", slog.String("reference", reference), slog.Int("attempt", attempt+1))
	}

	return "", ErrReferenceExhausted
}
