package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lumra-http-service/config"
)

// setupMockDB 构造一个由sqlmock驱动的gorm连接。
// SkipDefaultTransaction 让单条写入不再包裹事务，期望序列更直接；
// TranslateError 与生产配置一致，重复键错误翻译为 gorm.ErrDuplicatedKey。
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return sqlDB, mock, gdb
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret",
	}
}
