package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlbuild/dialect"
	"github.com/Konsultn-Engineering/sqlbuild/internal/testutil"
	"github.com/Konsultn-Engineering/sqlbuild/query"
)

func newMockDatabase(t *testing.T, opts ...Option) (*SqlDatabase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	sdb, err := NewSqlDatabase(db, dialect.NewStandardDialect(), opts...)
	require.NoError(t, err)
	return sdb, mock
}

func TestExecInsert(t *testing.T) {
	sdb, mock := newMockDatabase(t)

	stmt := query.Must(query.Must(query.Insert("t1", "a", "b")).AddRows(query.Values{1, 2}, query.Record{"b": 3}))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO t1 (a, b) VALUES (?, ?), (DEFAULT, ?)")).
		WithArgs(1, 2, 3).
		WillReturnResult(sqlmock.NewResult(0, 2))

	res, err := Exec(context.Background(), sdb, stmt)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuerySelect(t *testing.T) {
	sdb, mock := newMockDatabase(t)

	stmt := query.Must(query.Must(query.Select("t2", "x", "y")).Where(query.Where("x", query.Gt(50))))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT t2.x, t2.y FROM t2 WHERE t2.x > ?")).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"x", "y"}).AddRow(51, "a").AddRow(60, "b"))

	rows, err := Query(context.Background(), sdb, stmt)
	require.NoError(t, err)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, cols)

	var got []int
	for rows.Next() {
		var x int
		var y string
		require.NoError(t, rows.Scan(&x, &y))
		got = append(got, x)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int{51, 60}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecCompileErrorSkipsDatabase(t *testing.T) {
	sdb, mock := newMockDatabase(t)

	_, err := Exec(context.Background(), sdb, query.Must(query.Insert("t1", "a")))
	var ee *query.EmptyStatementError
	assert.ErrorAs(t, err, &ee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecWrapsDriverError(t *testing.T) {
	sdb, mock := newMockDatabase(t)
	stmt := query.Must(query.Must(query.Insert("t1", "a")).AddRow(query.Values{1}))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO t1 (a) VALUES (?)")).
		WithArgs(1).
		WillReturnError(assert.AnError)

	_, err := Exec(context.Background(), sdb, stmt)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "exec t1")
}

func TestStatementCacheReusesPrepared(t *testing.T) {
	sdb, mock := newMockDatabase(t, WithStatementCache(4), WithQueryCache(8))

	sqlText := "INSERT INTO t1 (a) VALUES (?)"
	prep := mock.ExpectPrepare(regexp.QuoteMeta(sqlText))
	prep.ExpectExec().WithArgs(1).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(2).WillReturnResult(sqlmock.NewResult(2, 1))
	prep.WillBeClosed()
	mock.ExpectClose()

	base := query.Must(query.Insert("t1", "a"))
	for _, v := range []int{1, 2} {
		_, err := Exec(context.Background(), sdb, query.Must(base.AddRow(query.Values{v})))
		require.NoError(t, err)
	}

	require.NoError(t, sdb.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewSqlDatabaseRejectsNil(t *testing.T) {
	_, err := NewSqlDatabase(nil, nil)
	assert.Error(t, err)

	_, err = NewPgxDatabase(nil)
	assert.Error(t, err)
}

func TestPgxResult(t *testing.T) {
	res := NewPgxResult(pgconn.NewCommandTag("INSERT 0 3"))

	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = res.LastInsertId()
	assert.ErrorIs(t, err, ErrLastInsertIDUnsupported)
}
