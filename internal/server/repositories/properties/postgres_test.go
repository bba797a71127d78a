package properties

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "title", "type", "price", "location", "bedrooms", "bathrooms", "area", "image", "description", "active", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleDraft() catalog.Draft {
	return catalog.Draft{
		Title:       "Kitnet para Estudantes",
		Category:    catalog.CategoryStudio,
		Price:       800,
		Location:    "Próximo UNIFAL",
		Bedrooms:    1,
		Bathrooms:   1,
		Area:        35,
		Image:       "https://cdn.example/k.jpg",
		Description: "Mobiliada",
		Active:      true,
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	t1 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	q := `(?s)^SELECT\s+id,\s*title,.*FROM\s+properties\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC$`
	rows := sqlmock.NewRows(columns).
		AddRow(int64(2), "Casa", "House", 3200.0, "Jardim Europa", 4, 3, 250.0, "", "", true, t2, t2).
		AddRow(int64(1), "Sala", "Commercial", 5000.0, "Centro", 0, 2, 200.0, "", "", false, t1, t1)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, catalog.CategoryHouse, got[0].Category)
	assert.Equal(t, 3200.0, got[0].Price)
	assert.False(t, got[1].Active)
	assert.Equal(t, t1, got[1].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+properties`).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+properties`).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestList_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(columns).
		AddRow(int64(1), "A", "House", 1.0, "", 1, 1, 1.0, "", "", true, now, now).
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery(`FROM\s+properties`).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken row")
}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	d := sampleDraft()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	q := `(?s)^INSERT\s+INTO\s+properties\s*\(title,\s*type,\s*price,\s*location,\s*bedrooms,\s*bathrooms,\s*area,\s*image,\s*description,\s*active\)\s*VALUES\s*\(\$1,.*\$10\)\s*RETURNING\s+id,\s*created_at,\s*updated_at$`
	mock.ExpectQuery(q).
		WithArgs(d.Title, "Studio", d.Price, d.Location, d.Bedrooms, d.Bathrooms, d.Area, d.Image, d.Description, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	p, err := repo.Insert(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, d, p.Draft)
	assert.Equal(t, now, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+properties`).WillReturnError(errors.New("constraint"))

	_, err := repo.Insert(context.Background(), sampleDraft())
	if err == nil || !regexp.MustCompile(`db error: .*constraint`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	d := sampleDraft()
	d.Price = 900
	d.Active = false
	now := time.Now().UTC()

	q := `(?s)^UPDATE\s+properties\s+SET\s+title\s*=\s*\$2,.*description\s*=\s*\$10,\s*active\s*=\s*\$11,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,`
	mock.ExpectQuery(q).
		WithArgs(int64(7), d.Title, "Studio", 900.0, d.Location, d.Bedrooms, d.Bathrooms, d.Area, d.Image, d.Description, false).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(7), d.Title, "Studio", 900.0, d.Location, 1, 1, 35.0, d.Image, d.Description, false, now, now))

	p, err := repo.Update(context.Background(), 7, d)
	require.NoError(t, err)
	assert.Equal(t, 900.0, p.Price)
	assert.False(t, p.Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+properties`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 7, sampleDraft())
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetActive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `^UPDATE\s+properties\s+SET\s+active\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs(int64(5), false).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(6), true).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs(int64(7), true).WillReturnError(errors.New("db err"))

	require.NoError(t, repo.SetActive(context.Background(), 5, false))
	assert.ErrorIs(t, repo.SetActive(context.Background(), 6, true), common.ErrorNotFound)

	err := repo.SetActive(context.Background(), 7, true)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `^DELETE\s+FROM\s+properties\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT\s+COUNT\(\*\)\s+FROM\s+properties$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
