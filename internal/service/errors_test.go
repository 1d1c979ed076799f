package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClasificarErrorDB_Nil(t *testing.T) {
	assert.NoError(t, clasificarErrorDB(nil, ""))
	assert.NoError(t, clasificarErrorDB(nil, "B"))
}

func TestClasificarErrorDB_UniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_ventas_numero_comprobante"}

	// During numbering the duplicate means two sales raced on the same number.
	err := clasificarErrorDB(dup, "B")
	var conflicto *ComprobanteEnConflictoError
	require.ErrorAs(t, err, &conflicto)
	assert.Equal(t, "B", conflicto.TipoComprobante)

	// Outside numbering it is somebody else's unique index: pass through.
	err = clasificarErrorDB(dup, "")
	var otro *ComprobanteEnConflictoError
	assert.False(t, errors.As(err, &otro))
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, pgUniqueViolation, pgErr.Code)
}

func TestClasificarErrorDB_GormDuplicatedKey(t *testing.T) {
	err := clasificarErrorDB(fmt.Errorf("create venta: %w", gorm.ErrDuplicatedKey), "F")

	var conflicto *ComprobanteEnConflictoError
	require.ErrorAs(t, err, &conflicto)
	assert.Equal(t, "F", conflicto.TipoComprobante)
}

func TestClasificarErrorDB_Transitorios(t *testing.T) {
	for _, code := range []string{pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable} {
		t.Run(code, func(t *testing.T) {
			original := &pgconn.PgError{Code: code, Message: "could not obtain lock"}
			err := clasificarErrorDB(original, "T")

			var transitorio *TransitorioError
			require.ErrorAs(t, err, &transitorio)
			// The driver error stays reachable for logging.
			var pgErr *pgconn.PgError
			require.ErrorAs(t, errors.Unwrap(transitorio), &pgErr)
			assert.Equal(t, code, pgErr.Code)
		})
	}
}

func TestClasificarErrorDB_Passthrough(t *testing.T) {
	original := errors.New("dial tcp: connection refused")
	assert.Same(t, original, clasificarErrorDB(original, "B"))

	otroPG := &pgconn.PgError{Code: "23503"} // foreign key, not ours to classify
	assert.Equal(t, error(otroPG), clasificarErrorDB(otroPG, "B"))
}
