package vehicle

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

// Бренды собираются одним DISTINCT-запросом только по активным автомобилям
func TestListBrands(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT DISTINCT brand FROM vehicles WHERE is_active = \$1 ORDER BY brand`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"brand"}).
			AddRow("Ferrari").
			AddRow("Lamborghini").
			AddRow("Rolls-Royce"))

	brands, err := repo.ListBrands(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Ferrari", "Lamborghini", "Rolls-Royce"}, brands)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBrands_Empty(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT DISTINCT brand FROM vehicles`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"brand"}))

	brands, err := repo.ListBrands(context.Background())

	require.NoError(t, err)
	assert.Empty(t, brands)
	require.NoError(t, mock.ExpectationsWereMet())
}
