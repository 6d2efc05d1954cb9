package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Driver-neutral constraint errors. Match with errors.Is.
var (
	ErrDuplicado    = errors.New("registro duplicado")
	ErrReferenciado = errors.New("registro referenciado por otros datos")
)

// ClassifyError maps PostgreSQL and MySQL constraint violations onto
// ErrDuplicado / ErrReferenciado. Any other error is returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrDuplicado, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrReferenciado, pgErr.ConstraintName)
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062: // ER_DUP_ENTRY
			return fmt.Errorf("%w: %s", ErrDuplicado, myErr.Message)
		case 1451, 1452: // ER_ROW_IS_REFERENCED_2, ER_NO_REFERENCED_ROW_2
			return fmt.Errorf("%w: %s", ErrReferenciado, myErr.Message)
		}
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicado, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrReferenciado, err)
	}
	return err
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// likeTerm builds a LIKE pattern for a case-insensitive contains match,
// escaping the wildcard characters of the user term.
func likeTerm(term string) string {
	esc := make([]rune, 0, len(term)+2)
	for _, r := range term {
		if r == '%' || r == '_' || r == '\\' {
			esc = append(esc, '\\')
		}
		esc = append(esc, r)
	}
	return "%" + string(esc) + "%"
}
