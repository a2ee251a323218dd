package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: receivingAccessKeyConstraint}
	wrapped := fmt.Errorf("insert: %w", dup)

	assert.True(t, isUniqueViolation(dup, receivingAccessKeyConstraint))
	assert.True(t, isUniqueViolation(wrapped, receivingAccessKeyConstraint))
	assert.True(t, isUniqueViolation(dup, ""))
	assert.False(t, isUniqueViolation(dup, "some_other_constraint"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("duplicate key"), ""))
}
