package cache

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db, nil), mock
}

func TestStore_DriverErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		call      func(s *Store) error
		errMsg    string
	}{
		{
			name: "get query fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT lints FROM results").WillReturnError(assert.AnError)
			},
			call: func(s *Store) error {
				_, _, err := s.Get(ctx, "a.md", "k")
				return err
			},
			errMsg: "failed to read cached result for a.md",
		},
		{
			name: "get corrupt row",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT lints FROM results").
					WillReturnRows(sqlmock.NewRows([]string{"lints"}).AddRow("{not json"))
			},
			call: func(s *Store) error {
				_, _, err := s.Get(ctx, "a.md", "k")
				return err
			},
			errMsg: "failed to decode cached result for a.md",
		},
		{
			name: "put exec fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO results").WillReturnError(assert.AnError)
			},
			call: func(s *Store) error {
				return s.Put(ctx, "a.md", "k", sampleLints())
			},
			errMsg: "failed to store result for a.md",
		},
		{
			name: "begin run fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO runs").WillReturnError(assert.AnError)
			},
			call: func(s *Store) error {
				_, err := s.BeginRun(ctx, "fp")
				return err
			},
			errMsg: "failed to create run",
		},
		{
			name: "complete run fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE runs").WillReturnError(assert.AnError)
			},
			call: func(s *Store) error {
				return s.CompleteRun(ctx, &Run{ID: "x"})
			},
			errMsg: "failed to complete run",
		},
		{
			name: "clear fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM results").WillReturnError(assert.AnError)
			},
			call:   func(s *Store) error { return s.Clear(ctx) },
			errMsg: "failed to clear cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setupMock(mock)

			err := tt.call(store)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_PutArgs(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO results").
		WithArgs("a.md", "k", "[]", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Put(context.Background(), "a.md", "k", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
