package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGeofence_Create(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewGeofenceService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(3, "Meenakshi", "5550001"))
	// 还没有围栏，走创建分支
	mock.ExpectQuery("SELECT \\* FROM `geofence`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "elderly_id", "latitude", "longitude", "radius"}))
	mock.ExpectExec("INSERT INTO `geofence`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := service.SetGeofence(3, 11.0168, 76.9558, 200)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetGeofence_Update(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewGeofenceService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(3, "Meenakshi", "5550001"))
	mock.ExpectQuery("SELECT \\* FROM `geofence`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "elderly_id", "latitude", "longitude", "radius"}).
			AddRow(1, 3, 11.0168, 76.9558, 200))
	// 已有围栏，原地更新中心与半径
	mock.ExpectExec("UPDATE `geofence` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := service.SetGeofence(3, 11.0200, 76.9600, 350)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetGeofence_ElderlyNotFound(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewGeofenceService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}))

	_, err := service.SetGeofence(99, 11.0168, 76.9558, 200)
	assert.ErrorIs(t, err, ErrElderlyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGeofence(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewGeofenceService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `geofence`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "elderly_id", "latitude", "longitude", "radius"}).
			AddRow(1, 3, 11.0168, 76.9558, 200))

	fence, err := service.GetGeofence(3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), fence.ElderlyID)
	assert.Equal(t, 200.0, fence.Radius)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGeofence_NotFound(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewGeofenceService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `geofence`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "elderly_id", "latitude", "longitude", "radius"}))

	_, err := service.GetGeofence(3)
	assert.ErrorIs(t, err, ErrGeofenceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
