package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEnsureTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSchemaRepository(db)
	def := logTableDef(t)

	mock.ExpectExec(regexp.QuoteMeta(def.CreateDDL())).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.EnsureTable(context.Background(), def))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTablePassesErrorThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSchemaRepository(db)
	def := logTableDef(t)

	dbErr := errors.New("permission denied for schema public")
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnError(dbErr)

	assert.ErrorIs(t, repo.EnsureTable(context.Background(), def), dbErr)
}
