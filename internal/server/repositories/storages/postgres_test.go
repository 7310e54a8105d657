package storages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookshelf/internal/server/pagination"
	"github.com/dmitrijs2005/bookshelf/internal/server/storage"
	"github.com/google/uuid"
)

const (
	qInsert   = `(?s)^INSERT\s+INTO\s+storages\s*\(id,\s*name,\s*settings\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`
	qListHead = `(?s)^SELECT\s+id,\s*name,\s*settings\s+FROM\s+storages\s+ORDER\s+BY\s+id\s+LIMIT\s+\$1\s*$`
	qListFrom = `(?s)^SELECT\s+id,\s*name,\s*settings\s+FROM\s+storages\s+WHERE\s+id\s*>\s*\$1\s+ORDER\s+BY\s+id\s+LIMIT\s+\$2\s*$`
	qGet      = `(?s)^SELECT\s+id,\s*name,\s*settings\s+FROM\s+storages\s+WHERE\s+id\s*=\s*\$1\s*$`
	qUpdate   = `(?s)^UPDATE\s+storages\s+SET\s+name\s*=\s*\$2,\s*settings\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,\s*name,\s*settings\s*$`
	qDelete   = `(?s)^DELETE\s+FROM\s+storages\s+WHERE\s+id\s*=\s*\$1\s*$`

	fsJSON = `{"type":"fs","base_path":"/data/books"}`
)

var columns = []string{"id", "name", "settings"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func mustName(t *testing.T, raw string) storage.Name {
	t.Helper()
	n, err := storage.NewName(raw)
	if err != nil {
		t.Fatalf("NewName(%q): %v", raw, err)
	}
	return n
}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(qInsert).
		WithArgs(id, "books", fsJSON).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), InsertDTO{
		ID:       id,
		Name:     mustName(t, "books"),
		Settings: storage.FSSettings{BasePath: "/data/books"},
	})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qInsert).WillReturnError(errors.New("duplicate key"))

	err := repo.Insert(context.Background(), InsertDTO{
		ID:       uuid.New(),
		Name:     mustName(t, "books"),
		Settings: storage.FSSettings{BasePath: "/data/books"},
	})
	if err == nil || !regexp.MustCompile(`db error: .*duplicate key`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestInsert_NilSettings(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	if err := repo.Insert(context.Background(), InsertDTO{ID: uuid.New(), Name: mustName(t, "books")}); err == nil {
		t.Fatal("expected error for nil settings")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("query must not be issued: %v", err)
	}
}

func TestList_FullPageEmitsCursor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(columns)
	var last uuid.UUID
	for i := 0; i < pagination.Limit; i++ {
		last = uuid.New()
		rows.AddRow(last.String(), fmt.Sprintf("storage-%02d", i), fsJSON)
	}
	mock.ExpectQuery(qListHead).WithArgs(pagination.Limit).WillReturnRows(rows)

	page, err := repo.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(page.Data) != pagination.Limit {
		t.Fatalf("want %d rows, got %d", pagination.Limit, len(page.Data))
	}
	if page.Cursor == nil || page.Cursor.LastID == nil || *page.Cursor.LastID != last {
		t.Fatalf("cursor must point at last row, got %+v", page.Cursor)
	}
	if got := page.Data[0].Settings; got != (storage.FSSettings{BasePath: "/data/books"}) {
		t.Fatalf("unexpected settings: %#v", got)
	}
}

func TestList_FromShortPage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	from := uuid.New()
	rows := sqlmock.NewRows(columns).AddRow(uuid.New().String(), "books", fsJSON)
	mock.ExpectQuery(qListFrom).WithArgs(from, pagination.Limit).WillReturnRows(rows)

	page, err := repo.List(context.Background(), &from)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(page.Data) != 1 || page.Cursor != nil {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestList_EmptyHasNonNilData(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qListHead).WillReturnRows(sqlmock.NewRows(columns))

	page, err := repo.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if page.Data == nil || len(page.Data) != 0 || page.Cursor != nil {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestList_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(qListHead).WillReturnError(errors.New("db down"))
		if _, err := repo.List(context.Background(), nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("rows", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		rows := sqlmock.NewRows(columns).
			AddRow(uuid.New().String(), "books", fsJSON).
			RowError(0, errors.New("broken row"))
		mock.ExpectQuery(qListHead).WillReturnRows(rows)
		if _, err := repo.List(context.Background(), nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("bad settings", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		rows := sqlmock.NewRows(columns).AddRow(uuid.New().String(), "books", `{"type":"ftp"}`)
		mock.ExpectQuery(qListHead).WillReturnRows(rows)
		if _, err := repo.List(context.Background(), nil); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(qGet).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "books", fsJSON))

	got, err := repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil || got.ID != id || got.Name.String() != "books" {
		t.Fatalf("unexpected storage: %+v", got)
	}
}

func TestGet_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(qGet).WithArgs(id).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.Get(context.Background(), id)
	if err != nil || got != nil {
		t.Fatalf("want nil, nil; got %+v, %v", got, err)
	}
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).WillReturnError(errors.New("db err"))

	_, err := repo.Get(context.Background(), uuid.New())
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate_ReturnsNewRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	newJSON := `{"type":"fs","base_path":"/srv/new"}`
	mock.ExpectQuery(qUpdate).
		WithArgs(id, "renamed", newJSON).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "renamed", newJSON))

	got, err := repo.Update(context.Background(), id, UpdateDTO{
		Name:     mustName(t, "renamed"),
		Settings: storage.FSSettings{BasePath: "/srv/new"},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got == nil || got.Name.String() != "renamed" || got.Settings != (storage.FSSettings{BasePath: "/srv/new"}) {
		t.Fatalf("unexpected storage: %+v", got)
	}
}

func TestUpdate_NoRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qUpdate).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.Update(context.Background(), uuid.New(), UpdateDTO{
		Name:     mustName(t, "renamed"),
		Settings: storage.FSSettings{BasePath: "/srv/new"},
	})
	if err != nil || got != nil {
		t.Fatalf("want nil, nil; got %+v, %v", got, err)
	}
}

func TestUpdate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qUpdate).WillReturnError(errors.New("db err"))

	_, err := repo.Update(context.Background(), uuid.New(), UpdateDTO{
		Name:     mustName(t, "renamed"),
		Settings: storage.FSSettings{BasePath: "/srv/new"},
	})
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(qDelete).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDelete).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

	for i := 0; i < 2; i++ {
		if err := repo.Delete(context.Background(), id); err != nil {
			t.Fatalf("Delete #%d error: %v", i+1, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qDelete).WillReturnError(errors.New("db err"))

	if err := repo.Delete(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error")
	}
}
