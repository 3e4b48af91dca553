package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

// sqlStates maps the SQLSTATE codes the schema can raise to domain errors.
var sqlStates = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23514": domain.ErrValidation,    // check_violation, username format
	"22P02": domain.ErrCorrupt,       // invalid_text_representation, bad jsonb
}

// mapError annotates err with the row it concerns and, where possible,
// swaps the driver error for a domain sentinel. Context errors and unknown
// driver errors are wrapped unchanged.
func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", entity, key, domainError(err))
}

func domainError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := sqlStates[pgErr.Code]; ok {
			return mapped
		}
	}
	return err
}
