package todos

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-replisync/internal/mock"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/internal/store/memstore"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newMockSQLTx returns a mocked SQLTx whose querier is a sqlmock
// transaction using PostgreSQL placeholders.
func newMockSQLTx(t *testing.T) (*mock.MockSQLTx, sqlmock.Sqlmock) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlMock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	stx := mock.NewMockSQLTx(ctrl)
	stx.EXPECT().Querier().Return(tx).AnyTimes()
	stx.EXPECT().Builder().Return(sq.StatementBuilder.PlaceholderFormat(sq.Dollar)).AnyTimes()

	return stx, sqlMock
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(func() time.Time { return testNow })

	t.Run("rows", func(t *testing.T) {
		stx, sqlMock := newMockSQLTx(t)
		sqlMock.ExpectQuery(`SELECT id, list_id, text, done, sort_order, updated_at, version, deleted FROM todos WHERE list_id = \$1 ORDER BY id`).
			WithArgs("l1").
			WillReturnRows(sqlmock.NewRows(todoColumns).
				AddRow("a", "l1", "milk", false, 2, testNow, 1, false).
				AddRow("b", "l1", "eggs", true, 1, testNow, 4, true))

		records, err := repo.list(ctx, stx, "l1")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, Todo{ID: "a", ListID: "l1", Text: "milk", SortOrder: 2, UpdatedAt: testNow}, records[0].Todo)
		assert.Equal(t, int64(1), records[0].Version)
		assert.True(t, records[1].Deleted)
		assert.Equal(t, int64(4), records[1].Version)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		stx, sqlMock := newMockSQLTx(t)
		sqlMock.ExpectQuery("SELECT (.+) FROM todos").WillReturnError(errors.New("connection reset"))

		_, err := repo.list(ctx, stx, "l1")
		assert.ErrorIs(t, err, store.ErrExecutingQuery)
	})
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(func() time.Time { return testNow })
	args := CreateTodoArgs{ID: "a", ListID: "l1", Text: "milk", SortOrder: 3}

	tests := []struct {
		name        string
		affected    int64
		wantCreated bool
	}{
		{name: "inserted", affected: 1, wantCreated: true},
		{name: "id taken", affected: 0, wantCreated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stx, sqlMock := newMockSQLTx(t)
			sqlMock.ExpectExec(`INSERT INTO todos \(id,list_id,text,done,sort_order,updated_at,version,deleted\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8\) ON CONFLICT \(id\) DO NOTHING`).
				WithArgs("a", "l1", "milk", false, int64(3), testNow, 1, false).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			created, err := repo.create(ctx, stx, args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(func() time.Time { return testNow })

	done := true
	stx, sqlMock := newMockSQLTx(t)
	sqlMock.ExpectExec(`UPDATE todos SET version = version \+ 1, updated_at = \$1, done = \$2 WHERE deleted = \$3 AND id = \$4`).
		WithArgs(testNow, true, false, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.update(ctx, stx, UpdateTodoArgs{ID: "a", ListID: "l1", Done: &done})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(func() time.Time { return testNow })

	t.Run("tombstone", func(t *testing.T) {
		stx, sqlMock := newMockSQLTx(t)
		sqlMock.ExpectExec(`UPDATE todos SET deleted = \$1, version = version \+ 1, updated_at = \$2 WHERE deleted = \$3 AND id = \$4`).
			WithArgs(true, testNow, false, "a").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.delete(ctx, stx, "a")
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		stx, sqlMock := newMockSQLTx(t)
		sqlMock.ExpectExec("UPDATE todos").WillReturnError(sql.ErrConnDone)

		_, err := repo.delete(ctx, stx, "a")
		assert.ErrorIs(t, err, store.ErrExecutingStatement)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestAsSQLTx_RejectsOtherStores(t *testing.T) {
	_, err := asSQLTx(&memstore.Tx{})
	assert.ErrorIs(t, err, ErrUnsupportedTx)
}
