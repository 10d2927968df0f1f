package gormpersistence

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"team-project-api/internal/repository"
)

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
)

// translateError 把驱动层错误归类为仓库层错误，其余错误原样返回。
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case isDuplicateEntryError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicateEntry, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return err
}

// isDuplicateEntryError 检查唯一约束冲突 (MySQL / PostgreSQL / SQLite)。
func isDuplicateEntryError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolate {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}

// isConnectionError 检查连接类错误，这类错误对调用方表现为服务不可用。
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
