package service

import (
	"context"
	"testing"

	"github.com/Henry-56/ferreteria/internal/model"
	"github.com/Henry-56/ferreteria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventarioEnv() (InventarioService, *stubProductoRepo, *stubMovRepo) {
	productoRepo := newStubProductoRepo()
	movRepo := newStubMovRepo()
	return NewInventarioService(productoRepo, movRepo), productoRepo, movRepo
}

func TestRegistrarEntrada(t *testing.T) {
	svc, repo, movRepo := newInventarioEnv()
	p := repo.agregar("Martillo", 5, decimal.RequireFromString("25.00"), decimal.Zero)
	usuarioID := uuid.New()

	mov, err := svc.RegistrarMovimiento(context.Background(), MovimientoParams{
		ProductoID: p.ID,
		Tipo:       model.MovimientoEntrada,
		Cantidad:   7,
		UsuarioID:  usuarioID,
		Referencia: model.ReferenciaCompra,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, mov.StockAnterior)
	assert.Equal(t, 12, mov.StockNuevo)
	assert.Equal(t, 7, mov.Cantidad)
	assert.Equal(t, model.MovimientoEntrada, mov.TipoMovimiento)
	assert.Equal(t, usuarioID, mov.UsuarioID)
	assert.Equal(t, 12, repo.productos[p.ID].Stock)
	assert.Len(t, movRepo.movimientos, 1)
}

func TestRegistrarSalida(t *testing.T) {
	svc, repo, _ := newInventarioEnv()
	p := repo.agregar("Destornillador", 10, decimal.RequireFromString("8.50"), decimal.Zero)

	mov, err := svc.RegistrarMovimiento(context.Background(), MovimientoParams{
		ProductoID: p.ID,
		Tipo:       model.MovimientoSalida,
		Cantidad:   4,
		UsuarioID:  uuid.New(),
		Referencia: model.ReferenciaVenta,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 6, mov.StockNuevo)
	assert.Equal(t, 6, repo.productos[p.ID].Stock)
}

func TestRegistrarSalida_StockInsuficiente(t *testing.T) {
	svc, repo, movRepo := newInventarioEnv()
	p := repo.agregar("Taladro", 3, decimal.RequireFromString("150.00"), decimal.Zero)

	_, err := svc.RegistrarMovimiento(context.Background(), MovimientoParams{
		ProductoID: p.ID,
		Tipo:       model.MovimientoSalida,
		Cantidad:   5,
		UsuarioID:  uuid.New(),
		Referencia: model.ReferenciaVenta,
	})

	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Solicitado)
	assert.Equal(t, 3, stockErr.Disponible)
	assert.Equal(t, "Taladro", stockErr.Nombre)

	// Nothing changed, nothing ledgered
	assert.Equal(t, 3, repo.productos[p.ID].Stock)
	assert.Empty(t, movRepo.movimientos)
}

func TestRegistrarMovimiento_CantidadNegativa(t *testing.T) {
	svc, repo, movRepo := newInventarioEnv()
	p := repo.agregar("Bisagra", 8, decimal.RequireFromString("1.20"), decimal.Zero)

	// A negative salida would add stock through the outbound path; a negative
	// entrada would drain it. Both must be rejected before any write.
	for _, tipo := range []string{model.MovimientoEntrada, model.MovimientoSalida} {
		_, err := svc.RegistrarMovimiento(context.Background(), MovimientoParams{
			ProductoID: p.ID,
			Tipo:       tipo,
			Cantidad:   -5,
			UsuarioID:  uuid.New(),
			Referencia: model.ReferenciaAjusteManual,
		})
		require.Error(t, err, "tipo %s", tipo)
	}

	assert.Equal(t, 8, repo.productos[p.ID].Stock)
	assert.Empty(t, movRepo.movimientos)
}

func TestAjustarStock_Recuento(t *testing.T) {
	svc, repo, _ := newInventarioEnv()
	p := repo.agregar("Clavos 2\"", 10, decimal.RequireFromString("0.50"), decimal.Zero)

	mov, err := svc.AjustarStock(context.Background(), p.ID, 4, uuid.New(), "Recuento fisico")
	require.NoError(t, err)

	assert.Equal(t, model.MovimientoAjuste, mov.TipoMovimiento)
	assert.Equal(t, 10, mov.StockAnterior)
	assert.Equal(t, 4, mov.StockNuevo)
	assert.Equal(t, 6, mov.Cantidad) // magnitude of the delta
	assert.Equal(t, model.ReferenciaAjusteManual, mov.Referencia)
	assert.Equal(t, "Recuento fisico", mov.Motivo)
	assert.Equal(t, 4, repo.productos[p.ID].Stock)
}

func TestAjustarStock_Incremento(t *testing.T) {
	svc, repo, _ := newInventarioEnv()
	p := repo.agregar("Tornillos", 10, decimal.RequireFromString("0.20"), decimal.Zero)

	mov, err := svc.AjustarStock(context.Background(), p.ID, 15, uuid.New(), "Aparecieron en deposito")
	require.NoError(t, err)

	assert.Equal(t, 15, mov.StockNuevo)
	assert.Equal(t, 5, mov.Cantidad)
	assert.Equal(t, 15, repo.productos[p.ID].Stock)
}

func TestAjustarStock_NegativoRechazado(t *testing.T) {
	svc, repo, movRepo := newInventarioEnv()
	p := repo.agregar("Lija", 8, decimal.RequireFromString("1.00"), decimal.Zero)

	_, err := svc.AjustarStock(context.Background(), p.ID, -1, uuid.New(), "error de tipeo")

	var ajusteErr *AjusteInvalidoError
	require.ErrorAs(t, err, &ajusteErr)
	assert.Equal(t, -1, ajusteErr.Objetivo)
	assert.Equal(t, 8, repo.productos[p.ID].Stock)
	assert.Empty(t, movRepo.movimientos)
}

func TestAjustarStock_ProductoNoExiste(t *testing.T) {
	svc, _, _ := newInventarioEnv()

	_, err := svc.AjustarStock(context.Background(), uuid.New(), 10, uuid.New(), "recuento")

	var notFound *ProductoNoEncontradoError
	require.ErrorAs(t, err, &notFound)
}

// The ledger must chain: each movement starts where the previous one ended.
func TestLedgerEncadenado(t *testing.T) {
	svc, repo, movRepo := newInventarioEnv()
	p := repo.agregar("Cemento", 0, decimal.RequireFromString("12.00"), decimal.Zero)
	usuarioID := uuid.New()
	ctx := context.Background()

	_, err := svc.RegistrarMovimiento(ctx, MovimientoParams{
		ProductoID: p.ID, Tipo: model.MovimientoEntrada, Cantidad: 10,
		UsuarioID: usuarioID, Referencia: model.ReferenciaCompra,
	})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimiento(ctx, MovimientoParams{
		ProductoID: p.ID, Tipo: model.MovimientoSalida, Cantidad: 3,
		UsuarioID: usuarioID, Referencia: model.ReferenciaVenta,
	})
	require.NoError(t, err)
	_, err = svc.AjustarStock(ctx, p.ID, 20, usuarioID, "recuento")
	require.NoError(t, err)

	require.Len(t, movRepo.movimientos, 3)
	for i := 1; i < len(movRepo.movimientos); i++ {
		assert.Equal(t, movRepo.movimientos[i-1].StockNuevo, movRepo.movimientos[i].StockAnterior)
	}
	assert.Equal(t, 20, movRepo.movimientos[2].StockNuevo)
	assert.Equal(t, 20, repo.productos[p.ID].Stock)
}

func TestHistorialMovimientos_FiltroPorProducto(t *testing.T) {
	svc, repo, _ := newInventarioEnv()
	a := repo.agregar("Pintura", 5, decimal.RequireFromString("30.00"), decimal.Zero)
	b := repo.agregar("Rodillo", 5, decimal.RequireFromString("6.00"), decimal.Zero)
	usuarioID := uuid.New()
	ctx := context.Background()

	for _, id := range []uuid.UUID{a.ID, b.ID, a.ID} {
		_, err := svc.RegistrarMovimiento(ctx, MovimientoParams{
			ProductoID: id, Tipo: model.MovimientoEntrada, Cantidad: 1,
			UsuarioID: usuarioID, Referencia: model.ReferenciaCompra,
		})
		require.NoError(t, err)
	}

	resp, err := svc.HistorialMovimientos(ctx, repository.MovInventarioFilter{ProductoID: &a.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	for _, m := range resp.Data {
		assert.Equal(t, a.ID.String(), m.ProductoID)
	}
}

func TestResumenInventario(t *testing.T) {
	svc, repo, _ := newInventarioEnv()
	// 10 × 4.00 = 40.00 inventory value at average cost
	repo.agregar("Alambre", 10, decimal.RequireFromString("7.00"), decimal.RequireFromString("4.00"))
	// below minimum (stock 2 <= minimo 5)
	repo.agregar("Cinta", 2, decimal.RequireFromString("3.00"), decimal.RequireFromString("1.50"))
	// out of stock (also counts as below minimum)
	repo.agregar("Guantes", 0, decimal.RequireFromString("5.00"), decimal.Zero)

	resp, err := svc.ResumenInventario(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, resp.TotalProductos)
	assert.Equal(t, 2, resp.ProductosBajoStock)
	assert.Equal(t, 1, resp.ProductosAgotados)
	assert.True(t, resp.ValorTotal.Equal(decimal.RequireFromString("43.00")),
		"valor total = %s", resp.ValorTotal)
}
