package postgres

import (
	stderrors "errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdragons/storefront/pkg/errors"
)

func TestWhereClause(t *testing.T) {
	var w whereClause
	assert.Equal(t, "", w.String())
	assert.Equal(t, 1, w.next())

	w.add("slug = $%d", "it")
	w.add("featured = $%d", true)

	assert.Equal(t, " WHERE slug = $1 AND featured = $2", w.String())
	assert.Equal(t, []interface{}{"it", true}, w.args)
	assert.Equal(t, 3, w.next())
}

func TestTranslateWriteError(t *testing.T) {
	err := translateWriteError(&pq.Error{Code: pqUniqueViolation, Constraint: "orders_order_number_key"}, "order")
	var conflict *errors.ErrConflict
	require.True(t, stderrors.As(err, &conflict))
	assert.Contains(t, conflict.Error(), "orders_order_number_key")

	err = translateWriteError(&pq.Error{Code: pqForeignKeyViolation, Constraint: "order_items_book_id_fkey"}, "order")
	var verr *errors.ErrValidation
	require.True(t, stderrors.As(err, &verr))
	assert.Contains(t, verr.Fields, "order_items_book_id_fkey")

	plain := stderrors.New("connection reset")
	assert.Equal(t, plain, translateWriteError(plain, "order"))
}

func TestTranslateOrderError(t *testing.T) {
	fk := &pq.Error{Code: pqForeignKeyViolation, Constraint: "order_items_book_id_fkey"}

	err := translateOrderError(fk, "ORD-1", 2)
	var verr *errors.ErrValidation
	require.True(t, stderrors.As(err, &verr))
	assert.Equal(t, map[string]string{"items.2.book": "references a book that does not exist"}, verr.Fields)

	err = translateOrderError(fk, "ORD-1", -1)
	require.True(t, stderrors.As(err, &verr))
	assert.Contains(t, verr.Fields, "order_items_book_id_fkey")

	err = translateOrderError(&pq.Error{Code: pqUniqueViolation}, "ORD-1", -1)
	var conflict *errors.ErrConflict
	require.True(t, stderrors.As(err, &conflict))
	assert.Equal(t, "order number already exists: ORD-1", conflict.Message)
}
