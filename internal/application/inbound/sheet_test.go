package inbound_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inbound"
)

// ──────────────────────────────────────────────────────────────────────────────
// ResolveHeaders: coincidencia difusa de encabezados
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveHeaders_VariantesReales(t *testing.T) {
	cases := []struct {
		name   string
		header []string
		want   inbound.HeaderMap
	}{
		{
			"plantilla canónica",
			[]string{"SKU", "BIN LOCATION", "QUANTITY"},
			inbound.HeaderMap{Sku: 0, Bin: 1, Quantity: 2},
		},
		{
			"variantes con ruido",
			[]string{"Sku Code", "Bin No.", "Balance Qty"},
			inbound.HeaderMap{Sku: 0, Bin: 1, Quantity: 2},
		},
		{
			"orden distinto",
			[]string{"qty", "sku", "bin"},
			inbound.HeaderMap{Sku: 1, Bin: 2, Quantity: 0},
		},
		{
			"columnas extra ignoradas",
			[]string{"Fecha", "SKU", "Proveedor", "BIN", "QUANTITY"},
			inbound.HeaderMap{Sku: 1, Bin: 3, Quantity: 4},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hm, err := inbound.ResolveHeaders(tc.header)
			require.NoError(t, err)
			assert.Equal(t, tc.want, hm)
		})
	}
}

func TestResolveHeaders_PrimeraColumnaGana(t *testing.T) {
	// Dos columnas coinciden con "quantity": la primera resuelve el rol.
	hm, err := inbound.ResolveHeaders([]string{"SKU", "BIN", "Qty Received", "Qty On Hand"})
	require.NoError(t, err)
	assert.Equal(t, 2, hm.Quantity)
}

func TestResolveHeaders_EncabezadosFaltantes(t *testing.T) {
	_, err := inbound.ResolveHeaders([]string{"SKU", "Almacén"})
	require.Error(t, err)

	var mh *inbound.MissingHeadersError
	require.True(t, errors.As(err, &mh))
	assert.Len(t, mh.Missing, 2, "faltan bin y cantidad")
	assert.Contains(t, mh.Found, "SKU")
	assert.Contains(t, mh.Found, "Almacén")
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseGrid: numeración de filas y descarte de vacías
// ──────────────────────────────────────────────────────────────────────────────

func TestParseGrid_NumeraFilasDelArchivo(t *testing.T) {
	grid := [][]string{
		{"SKU", "BIN", "QUANTITY"},
		{"SKU-A", "BIN-1", "10"},
		{"", "", ""}, // fila vacía: se descarta pero la numeración no se corre
		{"SKU-B", "BIN-2", "5"},
	}
	rows, err := inbound.ParseGrid(grid)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "SKU-A", rows[0].Sku)
	// La fila vacía era la 3: la siguiente con datos conserva su número real.
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, "SKU-B", rows[1].Sku)
}

func TestParseGrid_FilaCorta(t *testing.T) {
	// Una fila con menos celdas que el encabezado no debe
	// hacer panic: las celdas ausentes se leen como vacías.
	grid := [][]string{
		{"SKU", "BIN", "QUANTITY"},
		{"SKU-A"},
	}
	rows, err := inbound.ParseGrid(grid)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SKU-A", rows[0].Sku)
	assert.Equal(t, "", rows[0].Bin)
	assert.Equal(t, "", rows[0].Quantity)
}

func TestParseGrid_HojaVacia(t *testing.T) {
	_, err := inbound.ParseGrid(nil)
	assert.ErrorIs(t, err, inbound.ErrEmptySheet)

	_, err = inbound.ParseGrid([][]string{{"SKU", "BIN", "QUANTITY"}})
	assert.ErrorIs(t, err, inbound.ErrEmptySheet)

	// Solo filas vacías tras el encabezado también cuenta como hoja vacía.
	_, err = inbound.ParseGrid([][]string{
		{"SKU", "BIN", "QUANTITY"},
		{"", "", ""},
	})
	assert.ErrorIs(t, err, inbound.ErrEmptySheet)
}

func TestParseGrid_EncabezadoInvalidoEsFatal(t *testing.T) {
	_, err := inbound.ParseGrid([][]string{
		{"Columna1", "Columna2"},
		{"SKU-A", "BIN-1"},
	})
	var mh *inbound.MissingHeadersError
	require.True(t, errors.As(err, &mh))
}
