package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
)

// buildWorkbook arma un .xlsx en memoria con las filas dadas.
func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadGrid_DevuelveLaPrimeraHoja(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"SKU", "BIN LOCATION", "QUANTITY"},
		{"SKU-A", "BIN-1", 10},
		{"SKU-B", "BIN-2", "5"},
	})

	grid, err := excel.ReadGrid(buf)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"SKU", "BIN LOCATION", "QUANTITY"}, grid[0])
	// Las celdas numéricas llegan como string: el motor las interpreta después.
	assert.Equal(t, "SKU-A", grid[1][0])
	assert.Equal(t, "10", grid[1][2])
	assert.Equal(t, "5", grid[2][2])
}

func TestReadGrid_ArchivoCorrupto(t *testing.T) {
	_, err := excel.ReadGrid(bytes.NewReader([]byte("esto no es un xlsx")))
	require.Error(t, err)
}

func TestBuildInboundTemplate_EncabezadosCanonicos(t *testing.T) {
	buf, err := excel.BuildInboundTemplate()
	require.NoError(t, err)

	grid, err := excel.ReadGrid(buf)
	require.NoError(t, err)
	require.NotEmpty(t, grid)
	assert.Equal(t, []string{"SKU", "BIN LOCATION", "QUANTITY"}, grid[0])
}

func TestBuildCorrectionFile_RondaCompleta(t *testing.T) {
	failed := []dto.FailedEntry{
		{Row: 3, Sku: "SKU-B", Bin: "BIN-X", Quantity: "5", Reason: "la ubicación no existe"},
		{Row: 4, Sku: "SKU-C", Bin: "BIN-1", Quantity: "-3", Reason: "cantidad inválida"},
	}
	buf, err := excel.BuildCorrectionFile(failed)
	require.NoError(t, err)

	grid, err := excel.ReadGrid(buf)
	require.NoError(t, err)
	require.Len(t, grid, 3)

	assert.Equal(t, []string{"SKU", "BIN LOCATION", "QUANTITY", "REASON"}, grid[0])
	// Los valores originales se conservan tal cual para corregir a mano.
	assert.Equal(t, []string{"SKU-B", "BIN-X", "5", "la ubicación no existe"}, grid[1])
	assert.Equal(t, []string{"SKU-C", "BIN-1", "-3", "cantidad inválida"}, grid[2])
}

func TestBuildCorrectionFile_SinFilas(t *testing.T) {
	buf, err := excel.BuildCorrectionFile(nil)
	require.NoError(t, err)

	grid, err := excel.ReadGrid(buf)
	require.NoError(t, err)
	require.Len(t, grid, 1, "solo la fila de encabezado")
}
