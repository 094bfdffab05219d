package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumra-http-service/models"
	"lumra-http-service/utils"
)

func TestSignupElderly_Success(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	mock.ExpectExec("INSERT INTO `elderly`").
		WillReturnResult(sqlmock.NewResult(7, 1))

	elderly := &models.Elderly{
		Name:     "Lakshmi Devi",
		Age:      72,
		Gender:   "female",
		Phone:    "5550001",
		Address:  "12 Lake View Road",
		Guardian: "Karthika",
		Password: "secret123",
	}
	err := svc.SignupElderly(elderly, "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(7), elderly.ID)
	// 密码在创建钩子中被哈希，不以明文入库
	assert.NotEqual(t, "secret123", elderly.Password)
	assert.True(t, utils.CheckPasswordHash("secret123", elderly.Password))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupElderly_PasswordMismatch(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	elderly := &models.Elderly{Name: "Lakshmi", Phone: "5550001", Password: "secret123"}
	err := svc.SignupElderly(elderly, "different")

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	// 校验失败时不应有任何数据库操作
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupElderly_PhoneTaken(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	// 手机号唯一性由存储层唯一索引强制执行，重复键错误映射为业务错误
	mock.ExpectExec("INSERT INTO `elderly`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry '5550001' for key 'idx_elderly_phone'"})

	elderly := &models.Elderly{Name: "Lakshmi", Phone: "5550001", Password: "secret123"}
	err := svc.SignupElderly(elderly, "secret123")

	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupGuardian_Success(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian`").
		WithArgs("karthika@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian`").
		WithArgs("5559999").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `guardian`").
		WillReturnResult(sqlmock.NewResult(3, 1))

	guardian := &models.Guardian{
		Name:     "Karthika S",
		Email:    "karthika@example.com",
		Phone:    "5559999",
		Address:  "45 Hill Street",
		Relation: "daughter",
		Password: "secret123",
	}
	err := svc.SignupGuardian(guardian, "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(3), guardian.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupGuardian_EmailTaken(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian`").
		WithArgs("karthika@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	guardian := &models.Guardian{Email: "karthika@example.com", Phone: "5559999", Password: "secret123"}
	err := svc.SignupGuardian(guardian, "secret123")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupGuardian_PhoneTaken(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian`").
		WithArgs("karthika@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian`").
		WithArgs("5559999").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	guardian := &models.Guardian{Email: "karthika@example.com", Phone: "5559999", Password: "secret123"}
	err := svc.SignupGuardian(guardian, "secret123")

	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupGuardian_ConcurrentDuplicateInsert(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	// 预检查通过但并发注册抢先插入时，唯一索引仍然拒绝第二次写入
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `guardian`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `guardian`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	guardian := &models.Guardian{Email: "karthika@example.com", Phone: "5559999", Password: "secret123"}
	err := svc.SignupGuardian(guardian, "secret123")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_ElderlyFirst(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "password"}).
			AddRow(1, "5550001", hash))

	role, userID, err := svc.Login("5550001", "secret123")

	require.NoError(t, err)
	assert.Equal(t, RoleElderly, role)
	assert.Equal(t, uint(1), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_GuardianFallback(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "password"}))
	mock.ExpectQuery("SELECT \\* FROM `guardian`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "password"}).
			AddRow(3, "5559999", hash))

	role, userID, err := svc.Login("5559999", "secret123")

	require.NoError(t, err)
	assert.Equal(t, RoleGuardian, role)
	assert.Equal(t, uint(3), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	sqlDB, mock, gdb := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAccountService(gdb, testConfig())

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	// 老人账号匹配但密码错误时继续尝试监护人账号
	mock.ExpectQuery("SELECT \\* FROM `elderly`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "password"}).
			AddRow(1, "5550001", hash))
	mock.ExpectQuery("SELECT \\* FROM `guardian`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone", "password"}))

	role, userID, err := svc.Login("5550001", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, role)
	assert.Zero(t, userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
