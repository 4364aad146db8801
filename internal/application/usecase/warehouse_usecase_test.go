package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

func newWarehouseUC(db *memDB) *usecase.WarehouseUseCase {
	return usecase.NewWarehouseUseCase(&areaRepo{db: db}, &locationRepo{db: db}, &productRepo{db: db}, db, 100, logger.Nop())
}

func seedArea(t *testing.T, uc *usecase.WarehouseUseCase) string {
	t.Helper()
	a, err := uc.CreateArea(context.Background(), dto.AreaRequest{Name: "Zona A", Type: entity.AreaTypeStorage, Width: 200, Height: 100})
	require.NoError(t, err)
	return a.ID
}

func TestCreateArea_ValoresPorDefecto(t *testing.T) {
	uc := newWarehouseUC(newMemDB())
	a, err := uc.CreateArea(context.Background(), dto.AreaRequest{Name: "Recepción", Type: entity.AreaTypeReceiving})
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	assert.Equal(t, "#3B82F6", a.Color)

	_, err = uc.CreateArea(context.Background(), dto.AreaRequest{Name: "X", Type: "garage"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListAreas_SoloActivas(t *testing.T) {
	uc := newWarehouseUC(newMemDB())
	inactive := false
	_, err := uc.CreateArea(context.Background(), dto.AreaRequest{Name: "B", Type: entity.AreaTypeOffice, IsActive: &inactive})
	require.NoError(t, err)
	seedArea(t, uc)

	all, err := uc.ListAreas(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := uc.ListAreas(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Zona A", active[0].Name)
}

func TestCreateLocation_CapacidadPorDefectoYCodigoNormalizado(t *testing.T) {
	uc := newWarehouseUC(newMemDB())
	areaID := seedArea(t, uc)

	l, err := uc.CreateLocation(context.Background(), dto.LocationRequest{AreaID: areaID, RowNumber: 1, ColumnNumber: 2, LocationCode: "a-01-02"})
	require.NoError(t, err)
	assert.Equal(t, 100, l.Capacity)
	assert.Equal(t, "A-01-02", l.LocationCode)

	_, err = uc.CreateLocation(context.Background(), dto.LocationRequest{AreaID: "nope", RowNumber: 1, ColumnNumber: 1, LocationCode: "Z"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateLocation(context.Background(), dto.LocationRequest{AreaID: areaID, RowNumber: 1, ColumnNumber: 3, LocationCode: "A-01-02"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDeleteArea_BorraUbicaciones(t *testing.T) {
	db := newMemDB()
	uc := newWarehouseUC(db)
	areaID := seedArea(t, uc)
	for i, code := range []string{"A-1", "A-2", "A-3"} {
		_, err := uc.CreateLocation(context.Background(), dto.LocationRequest{AreaID: areaID, RowNumber: 1, ColumnNumber: i + 1, LocationCode: code})
		require.NoError(t, err)
	}

	deleted, err := uc.DeleteArea(context.Background(), areaID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Empty(t, db.locations)
	assert.Empty(t, db.areas)
}

func TestDeleteArea_ConProductosEsConflicto(t *testing.T) {
	db := newMemDB()
	uc := newWarehouseUC(db)
	areaID := seedArea(t, uc)
	loc, err := uc.CreateLocation(context.Background(), dto.LocationRequest{AreaID: areaID, RowNumber: 1, ColumnNumber: 1, LocationCode: "A-1"})
	require.NoError(t, err)
	db.products["p-1"] = &entity.Product{ID: "p-1", SKU: "P", Name: "P", LocationID: &loc.ID}

	_, err = uc.DeleteArea(context.Background(), areaID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, db.locations, 1, "no se borra nada")
	assert.Len(t, db.areas, 1)

	err = uc.DeleteLocation(context.Background(), loc.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteLocation(t *testing.T) {
	db := newMemDB()
	uc := newWarehouseUC(db)
	areaID := seedArea(t, uc)
	loc, err := uc.CreateLocation(context.Background(), dto.LocationRequest{AreaID: areaID, RowNumber: 1, ColumnNumber: 1, LocationCode: "A-1"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteLocation(context.Background(), loc.ID))
	assert.ErrorIs(t, uc.DeleteLocation(context.Background(), loc.ID), domain.ErrNotFound)
}

func TestUpdateArea_Inexistente(t *testing.T) {
	uc := newWarehouseUC(newMemDB())
	_, err := uc.UpdateArea(context.Background(), "nope", dto.AreaRequest{Name: "x", Type: entity.AreaTypeStorage})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
