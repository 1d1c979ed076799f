package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Typed business errors. All are expected failures: the enclosing transaction
// is rolled back before any of them reaches the caller, so no partial stock
// update or half-written sale ever survives. Handlers match them with
// errors.As / errors.Is and translate to HTTP codes.

// ProductoNoEncontradoError indicates a referenced product id does not exist.
type ProductoNoEncontradoError struct {
	ProductoID uuid.UUID
}

func (e *ProductoNoEncontradoError) Error() string {
	return fmt.Sprintf("producto %s no encontrado", e.ProductoID)
}

// StockInsuficienteError indicates an outbound quantity exceeds the available
// stock of one product.
type StockInsuficienteError struct {
	ProductoID uuid.UUID
	Nombre     string
	Solicitado int
	Disponible int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.Nombre, e.Disponible, e.Solicitado)
}

// AjusteInvalidoError indicates a manual adjustment with a negative target.
type AjusteInvalidoError struct {
	Objetivo int
}

func (e *AjusteInvalidoError) Error() string {
	return fmt.Sprintf("ajuste invalido: el stock objetivo no puede ser negativo (%d)", e.Objetivo)
}

// DescuentoInvalidoError indicates a global discount larger than the subtotal.
type DescuentoInvalidoError struct {
	Descuento string
	Subtotal  string
}

func (e *DescuentoInvalidoError) Error() string {
	return fmt.Sprintf("descuento invalido: %s excede el subtotal %s", e.Descuento, e.Subtotal)
}

// VentaNoEncontradaError indicates the sale to void does not exist.
type VentaNoEncontradaError struct {
	VentaID uuid.UUID
}

func (e *VentaNoEncontradaError) Error() string {
	return fmt.Sprintf("venta %s no encontrada", e.VentaID)
}

// VentaYaAnuladaError indicates a second void attempt on the same sale.
type VentaYaAnuladaError struct {
	VentaID uuid.UUID
}

func (e *VentaYaAnuladaError) Error() string {
	return fmt.Sprintf("la venta %s ya esta anulada", e.VentaID)
}

// ComprobanteEnConflictoError indicates two concurrent sales raced on the same
// comprobante number. Retrying the whole sale once is safe.
type ComprobanteEnConflictoError struct {
	TipoComprobante string
}

func (e *ComprobanteEnConflictoError) Error() string {
	return fmt.Sprintf("conflicto de numeracion de comprobante %s; reintente la venta", e.TipoComprobante)
}

// TransitorioError wraps infrastructure failures (lock timeout, serialization
// failure, lost connection). The aborted transaction left no side effect, so
// the caller may retry the whole operation.
type TransitorioError struct {
	Err error
}

func (e *TransitorioError) Error() string { return "fallo transitorio: " + e.Err.Error() }
func (e *TransitorioError) Unwrap() error { return e.Err }

// Postgres error codes worth classifying.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// clasificarErrorDB maps driver-level failures onto the taxonomy above.
// Unique violations on the comprobante index become a numbering conflict;
// lock and serialization failures become retryable transient errors.
// Anything else passes through untouched.
func clasificarErrorDB(err error, tipoComprobante string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if tipoComprobante != "" {
				return &ComprobanteEnConflictoError{TipoComprobante: tipoComprobante}
			}
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return &TransitorioError{Err: err}
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) && tipoComprobante != "" {
		return &ComprobanteEnConflictoError{TipoComprobante: tipoComprobante}
	}
	return err
}
