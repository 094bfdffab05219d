package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumra-http-service/models"
)

func TestCreateRequest_Success(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	// 按手机号定位老人
	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(3, "Meenakshi", "5550001"))
	// 任意状态下均不允许重复请求
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian_requests`").
		WithArgs(5, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `guardian_requests`").
		WillReturnResult(sqlmock.NewResult(11, 1))

	request, err := service.CreateRequest(5, "5550001")
	require.NoError(t, err)
	assert.Equal(t, uint(11), request.ID)
	assert.Equal(t, uint(5), request.GuardianID)
	assert.Equal(t, uint(3), request.ElderlyID)
	assert.Equal(t, models.RequestStatusRequested, request.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest_ElderlyNotFound(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}))

	_, err := service.CreateRequest(5, "0000000")
	assert.ErrorIs(t, err, ErrElderlyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest_Duplicate(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(3, "Meenakshi", "5550001"))
	// 已拒绝的历史记录同样计入，拒绝是终态
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian_requests`").
		WithArgs(5, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := service.CreateRequest(5, "5550001")
	assert.ErrorIs(t, err, ErrRequestDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequest_ConcurrentDuplicateInsert(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(3, "Meenakshi", "5550001"))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian_requests`").
		WithArgs(5, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	// 预检查通过后另一请求抢先插入，唯一索引兜底
	mock.ExpectExec("INSERT INTO `guardian_requests`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry '5-3' for key 'idx_guardian_elderly'"})

	_, err := service.CreateRequest(5, "5550001")
	assert.ErrorIs(t, err, ErrRequestDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPendingRequests(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectQuery("SELECT .+ FROM `guardian_requests` JOIN guardian").
		WithArgs(3, models.RequestStatusRequested).
		WillReturnRows(sqlmock.NewRows([]string{"request_id", "guardian_id", "guardian_name", "status"}).
			AddRow(11, 5, "Karthika", "requested").
			AddRow(12, 6, "Arjun", "requested"))

	requests, err := service.ListPendingRequests(3)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, uint(11), requests[0].RequestID)
	assert.Equal(t, "Karthika", requests[0].GuardianName)
	assert.Equal(t, "requested", requests[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToRequest_Accept(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	// 带状态条件的原子UPDATE，恰好命中一行
	mock.ExpectExec("UPDATE `guardian_requests` SET").
		WithArgs(models.RequestStatusAccepted, sqlmock.AnyArg(), 11, 3, models.RequestStatusRequested).
		WillReturnResult(sqlmock.NewResult(0, 1))

	status, err := service.RespondToRequest(11, 3, "accept")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToRequest_Reject(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectExec("UPDATE `guardian_requests` SET").
		WithArgs(models.RequestStatusRejected, sqlmock.AnyArg(), 11, 3, models.RequestStatusRequested).
		WillReturnResult(sqlmock.NewResult(0, 1))

	status, err := service.RespondToRequest(11, 3, "reject")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToRequest_AlreadyProcessed(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	// UPDATE 没有命中行：请求存在但已是终态
	mock.ExpectExec("UPDATE `guardian_requests` SET").
		WithArgs(models.RequestStatusAccepted, sqlmock.AnyArg(), 11, 3, models.RequestStatusRequested).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `guardian_requests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "guardian_id", "elderly_id", "status"}).
			AddRow(11, 5, 3, models.RequestStatusRejected))

	_, err := service.RespondToRequest(11, 3, "accept")
	assert.ErrorIs(t, err, ErrRequestProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToRequest_NotFound(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectExec("UPDATE `guardian_requests` SET").
		WithArgs(models.RequestStatusAccepted, sqlmock.AnyArg(), 99, 3, models.RequestStatusRequested).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT \\* FROM `guardian_requests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "guardian_id", "elderly_id", "status"}))

	_, err := service.RespondToRequest(99, 3, "accept")
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToRequest_WrongElderly(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectExec("UPDATE `guardian_requests` SET").
		WithArgs(models.RequestStatusAccepted, sqlmock.AnyArg(), 11, 4, models.RequestStatusRequested).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// 请求属于另一位老人，不泄露其存在
	mock.ExpectQuery("SELECT \\* FROM `guardian_requests`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "guardian_id", "elderly_id", "status"}).
			AddRow(11, 5, 3, models.RequestStatusRequested))

	_, err := service.RespondToRequest(11, 4, "accept")
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToRequest_InvalidAction(t *testing.T) {
	sqlDB, _, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	_, err := service.RespondToRequest(11, 3, "approve")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestListAcceptedElderlies(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectQuery("SELECT .+ FROM `guardian_requests` JOIN elderly").
		WithArgs(5, models.RequestStatusAccepted).
		WillReturnRows(sqlmock.NewRows([]string{"elderly_id", "elderly_name", "phone"}).
			AddRow(3, "Meenakshi", "5550001"))

	elderlies, err := service.ListAcceptedElderlies(5)
	require.NoError(t, err)
	require.Len(t, elderlies, 1)
	assert.Equal(t, uint(3), elderlies[0].ElderlyID)
	assert.Equal(t, "5550001", elderlies[0].Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAcceptedGuardians_CapAtSeven(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	rows := sqlmock.NewRows([]string{"guardian_id", "guardian_name", "relation"})
	for i := 1; i <= 9; i++ {
		rows.AddRow(i, "Guardian", "relative")
	}
	mock.ExpectQuery("SELECT .+ FROM `guardian_requests` JOIN guardian").
		WithArgs(3, models.RequestStatusAccepted).
		WillReturnRows(rows)

	guardians, err := service.ListAcceptedGuardians(3)
	require.NoError(t, err)
	// 超出上限的连接会被截断
	assert.Len(t, guardians, MaxGuardiansPerElderly)
	assert.Equal(t, uint(1), guardians[0].GuardianID)
	assert.Equal(t, uint(7), guardians[6].GuardianID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsGuardianAccepted(t *testing.T) {
	sqlDB, mock, gormDB := setupMockDB(t)
	defer sqlDB.Close()

	service := NewRequestService(gormDB, testConfig())

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian_requests`").
		WithArgs(5, 3, models.RequestStatusAccepted).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	accepted, err := service.IsGuardianAccepted(5, 3)
	require.NoError(t, err)
	assert.True(t, accepted)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian_requests`").
		WithArgs(6, 3, models.RequestStatusAccepted).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	accepted, err = service.IsGuardianAccepted(6, 3)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
