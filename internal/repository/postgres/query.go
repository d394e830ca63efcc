package postgres

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/bookdragons/storefront/pkg/errors"
)

// Postgres SQLSTATE codes we translate into domain errors
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// whereClause accumulates AND-ed conditions with positional arguments.
// Each condition format carries one %d for its placeholder number.
type whereClause struct {
	conds []string
	args  []interface{}
}

func (w *whereClause) add(format string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// next returns the placeholder number following the current arguments
func (w *whereClause) next() int {
	return len(w.args) + 1
}

// translateWriteError maps constraint violations to domain errors
func translateWriteError(err error, resource string) error {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return &errors.ErrConflict{Message: fmt.Sprintf("%s already exists (%s)", resource, pqErr.Constraint)}
	case pqForeignKeyViolation:
		field := pqErr.Column
		if field == "" {
			field = pqErr.Constraint
		}
		return &errors.ErrValidation{
			Message: "validation failed",
			Fields:  map[string]string{field: "references a record that does not exist"},
		}
	case pqCheckViolation:
		return &errors.ErrValidation{
			Message: "validation failed",
			Fields:  map[string]string{pqErr.Constraint: "is invalid"},
		}
	}
	return err
}
