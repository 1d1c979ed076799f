package service

import (
	"context"
	"testing"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompraEnv() (CompraService, *stubProductoRepo, *stubMovRepo, *stubCompraRepo) {
	productoRepo := newStubProductoRepo()
	movRepo := newStubMovRepo()
	compraRepo := newStubCompraRepo()
	inventarioSvc := NewInventarioService(productoRepo, movRepo)
	svc := NewCompraService(compraRepo, productoRepo, inventarioSvc)
	return svc, productoRepo, movRepo, compraRepo
}

func TestCrearCompra_ActualizaStockYCostos(t *testing.T) {
	svc, repo, movRepo, _ := newCompraEnv()
	p := repo.agregar("Cable 2.5mm", 10, decimal.RequireFromString("8.00"), decimal.RequireFromString("4.00"))

	resp, err := svc.CrearCompra(context.Background(), dto.CrearCompraRequest{
		ProveedorID: uuid.NewString(),
		Detalles: []dto.DetalleCompraRequest{{
			ProductoID:     p.ID.String(),
			Cantidad:       10,
			PrecioUnitario: decimal.RequireFromString("6.00"),
		}},
	}, uuid.New())
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("60.00")), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("60.00")))
	assert.Equal(t, model.EstadoCompletada, resp.Estado)

	actualizado := repo.productos[p.ID]
	assert.Equal(t, 20, actualizado.Stock)
	// (10 × 4.00 + 10 × 6.00) / 20 = 5.00
	assert.True(t, actualizado.CostoPromedio.Equal(decimal.RequireFromString("5.00")),
		"costo promedio = %s", actualizado.CostoPromedio)
	assert.True(t, actualizado.PrecioCompra.Equal(decimal.RequireFromString("6.00")))

	entradas := movRepo.porReferencia(model.ReferenciaCompra)
	require.Len(t, entradas, 1)
	assert.Equal(t, model.MovimientoEntrada, entradas[0].TipoMovimiento)
	assert.Equal(t, 10, entradas[0].Cantidad)
	assert.Equal(t, 10, entradas[0].StockAnterior)
	assert.Equal(t, 20, entradas[0].StockNuevo)
	require.NotNil(t, entradas[0].ReferenciaID)
	assert.Equal(t, resp.ID, entradas[0].ReferenciaID.String())
}

func TestCrearCompra_VariasLineas(t *testing.T) {
	svc, repo, movRepo, _ := newCompraEnv()
	a := repo.agregar("Caño PVC", 0, decimal.RequireFromString("5.00"), decimal.Zero)
	b := repo.agregar("Codo PVC", 3, decimal.RequireFromString("1.50"), decimal.Zero)

	resp, err := svc.CrearCompra(context.Background(), dto.CrearCompraRequest{
		ProveedorID: uuid.NewString(),
		Detalles: []dto.DetalleCompraRequest{
			{ProductoID: a.ID.String(), Cantidad: 20, PrecioUnitario: decimal.RequireFromString("3.00")},
			{ProductoID: b.ID.String(), Cantidad: 50, PrecioUnitario: decimal.RequireFromString("0.80")},
		},
	}, uuid.New())
	require.NoError(t, err)

	// 20 × 3.00 + 50 × 0.80 = 100.00
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal = %s", resp.Subtotal)
	assert.Equal(t, 20, repo.productos[a.ID].Stock)
	assert.Equal(t, 53, repo.productos[b.ID].Stock)
	assert.Len(t, movRepo.porReferencia(model.ReferenciaCompra), 2)
}

func TestCrearCompra_ProductoNoExiste(t *testing.T) {
	svc, _, _, _ := newCompraEnv()

	_, err := svc.CrearCompra(context.Background(), dto.CrearCompraRequest{
		ProveedorID: uuid.NewString(),
		Detalles: []dto.DetalleCompraRequest{{
			ProductoID:     uuid.NewString(),
			Cantidad:       5,
			PrecioUnitario: decimal.RequireFromString("2.00"),
		}},
	}, uuid.New())

	var notFound *ProductoNoEncontradoError
	require.ErrorAs(t, err, &notFound)
}

func TestCrearCompra_PrecioNegativo(t *testing.T) {
	svc, repo, _, _ := newCompraEnv()
	p := repo.agregar("Remaches", 10, decimal.RequireFromString("0.30"), decimal.Zero)

	_, err := svc.CrearCompra(context.Background(), dto.CrearCompraRequest{
		ProveedorID: uuid.NewString(),
		Detalles: []dto.DetalleCompraRequest{{
			ProductoID:     p.ID.String(),
			Cantidad:       5,
			PrecioUnitario: decimal.RequireFromString("-1.00"),
		}},
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 10, repo.productos[p.ID].Stock)
}

func TestObtenerCompra_ConProveedorPrecargado(t *testing.T) {
	svc, repo, _, compraRepo := newCompraEnv()
	p := repo.agregar("Electrodo 6013", 0, decimal.RequireFromString("9.00"), decimal.Zero)

	compra := &model.Compra{
		UsuarioID:   uuid.New(),
		ProveedorID: uuid.New(),
		Proveedor:   &model.Proveedor{RazonSocial: "Aceros del Sur SRL"},
		Subtotal:    decimal.RequireFromString("45.00"),
		Total:       decimal.RequireFromString("45.00"),
		Estado:      model.EstadoCompletada,
		Detalles: []model.DetalleCompra{{
			ProductoID:     p.ID,
			Producto:       p,
			Cantidad:       5,
			PrecioUnitario: decimal.RequireFromString("9.00"),
			Subtotal:       decimal.RequireFromString("45.00"),
		}},
	}
	require.NoError(t, compraRepo.CreateTx(nil, compra))

	resp, err := svc.ObtenerCompra(context.Background(), compra.ID)
	require.NoError(t, err)

	assert.Equal(t, "Aceros del Sur SRL", resp.Proveedor)
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, "Electrodo 6013", resp.Detalles[0].Producto)
}

func TestCostoPromedioPonderado(t *testing.T) {
	casos := []struct {
		nombre   string
		stock    int
		costo    string
		cantidad int
		precio   string
		want     string
	}{
		{"mezcla simple", 10, "4.00", 10, "6.00", "5.00"},
		{"sin stock previo", 0, "0", 5, "7.50", "7.50"},
		{"redondeo", 3, "2.00", 7, "3.00", "2.70"},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			p := &model.Producto{
				Stock:         tc.stock,
				CostoPromedio: decimal.RequireFromString(tc.costo),
			}
			got := costoPromedioPonderado(p, tc.cantidad, decimal.RequireFromString(tc.precio))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "costo = %s", got)
		})
	}
}
