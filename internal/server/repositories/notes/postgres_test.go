package notes

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ipeonte/usernotes/internal/common"
	"github.com/ipeonte/usernotes/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	q := `(?s)^INSERT\s+INTO\s+notes\s*\(id,\s*owner,\s*body\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+created_at\s*$`

	mock.ExpectQuery(q).
		WithArgs("n-1", "alice", "test123").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	note := &models.Note{ID: "n-1", Owner: "alice", Body: "test123"}
	got, err := repo.Create(context.Background(), note)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "n-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+notes`).
		WithArgs("n-1", "alice", "test123").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Note{ID: "n-1", Owner: "alice", Body: "test123"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()

	mock.ExpectQuery(`SELECT\s+id,\s*owner,\s*body,\s*created_at\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner", "body", "created_at"}).
			AddRow("n-1", "alice", "test123", created))

	mock.ExpectQuery(`SELECT\s+user_name\s+FROM\s+note_shares\s+WHERE\s+note_id\s*=\s*\$1`).
		WithArgs("n-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_name"}).AddRow("bob").AddRow("carol"))

	got, err := repo.FindByID(context.Background(), "n-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Owner != "alice" || len(got.SharedWith) != 2 || got.SharedWith[0] != "bob" {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*owner,\s*body,\s*created_at\s+FROM\s+notes`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestFindForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()

	mock.ExpectQuery(`(?s)SELECT\s+DISTINCT\s+n\.id.*WHERE\s+n\.owner\s*=\s*\$1\s+OR\s+s\.user_name\s*=\s*\$1`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner", "body", "created_at"}).
			AddRow("n-2", "alice", "Lorem ipsum dolor sit amet", created))

	got, err := repo.FindForUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("FindForUser error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "n-2" {
		t.Fatalf("unexpected notes: %+v", got)
	}
}

func TestFindMatchingText(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()

	mock.ExpectQuery(`(?s)SELECT\s+DISTINCT\s+n\.id.*strpos\(n\.body,\s*\$2\)\s*>\s*0`).
		WithArgs("alice", "test").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner", "body", "created_at"}).
			AddRow("n-1", "alice", "test123", created))

	got, err := repo.FindMatchingText(context.Background(), "alice", "test")
	if err != nil {
		t.Fatalf("FindMatchingText error: %v", err)
	}
	if len(got) != 1 || got[0].Body != "test123" {
		t.Fatalf("unexpected notes: %+v", got)
	}
}

func TestUpdateText(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+notes\s+SET\s+body\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("n-1", "test456").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateText(context.Background(), "n-1", "test456"); err != nil {
		t.Fatalf("UpdateText error: %v", err)
	}
}

func TestUpdateText_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+notes\s+SET\s+body`).
		WithArgs("ghost", "x").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateText(context.Background(), "ghost", "x")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestAddSharedUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT\s+INTO\s+note_shares.*ON\s+CONFLICT\s+DO\s+NOTHING`

	mock.ExpectExec(q).
		WithArgs("n-1", "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddSharedUser(context.Background(), "n-1", "bob"); err != nil {
		t.Fatalf("AddSharedUser error: %v", err)
	}

	// re-sharing hits the conflict clause and affects no rows
	mock.ExpectExec(q).
		WithArgs("n-1", "bob").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.AddSharedUser(context.Background(), "n-1", "bob"); err != nil {
		t.Fatalf("repeat AddSharedUser error: %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+notes\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByID(context.Background(), "n-1"); err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
}

func TestDeleteByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+notes`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDeleteSharesByNoteID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+note_shares\s+WHERE\s+note_id\s*=\s*\$1`).
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.DeleteSharesByNoteID(context.Background(), "n-1"); err != nil {
		t.Fatalf("DeleteSharesByNoteID error: %v", err)
	}
}
