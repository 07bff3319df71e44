package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		code    Code
		appCode string
		message string
	}{
		{
			name:    "unique violation",
			pgErr:   &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "products", ConstraintName: "products_name_key"},
			code:    UniqueViolation,
			appCode: "PRODUCT_ALREADY_EXISTS",
			message: "A Product with this Name already exists",
		},
		{
			name:    "check violation",
			pgErr:   &pgconn.PgError{Code: "23514", TableName: "products", ColumnName: "unit_price"},
			code:    CheckViolation,
			appCode: "PRODUCT_INVALID",
			message: "The Unit Price value does not meet required conditions",
		},
		{
			name:    "not null violation",
			pgErr:   &pgconn.PgError{Code: "23502", TableName: "products", ColumnName: "name"},
			code:    NotNullViolation,
			appCode: "PRODUCT_REQUIRED",
			message: "The Name is required",
		},
		{
			name:    "unclassified",
			pgErr:   &pgconn.PgError{Code: "57014"},
			code:    Other,
			appCode: "RECORD_ERROR",
			message: "An error occurred while processing your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleError(fmt.Errorf("query: %w", tt.pgErr))

			var sqlErr *Error
			require.ErrorAs(t, err, &sqlErr)
			assert.Equal(t, tt.code, sqlErr.Code)
			assert.Equal(t, tt.appCode, sqlErr.AppCode)
			assert.Equal(t, tt.message, sqlErr.UserMessage)
			assert.Equal(t, tt.code, ErrCode(err))
			assert.ErrorIs(t, err, tt.pgErr)
		})
	}
}

func TestHandleErrorPassThrough(t *testing.T) {
	assert.NoError(t, HandleError(nil))
	assert.ErrorIs(t, HandleError(pgx.ErrNoRows), pgx.ErrNoRows)

	plain := errors.New("dial tcp: connection refused")
	assert.Equal(t, plain, HandleError(plain))
	assert.Equal(t, Other, ErrCode(plain))
}

func TestUniqueColumn(t *testing.T) {
	assert.Equal(t, "sku", uniqueColumn("unique_products_sku"))
	assert.Equal(t, "name", uniqueColumn("products_name_key"))
	assert.Empty(t, uniqueColumn("products_pkey"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityUnknown, MapSeverity("LOG"))
}
