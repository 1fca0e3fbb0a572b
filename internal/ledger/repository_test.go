package ledger

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return id
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGetReservedSeats(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	rows := sqlmock.NewRows([]string{"seat_code"}).
		AddRow("10-04").
		AddRow("10-06")
	mock.ExpectQuery(`SELECT "seat_code" FROM "reserved_seats"`).
		WillReturnRows(rows)

	codes, err := repo.GetReservedSeats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10-04", "10-06"}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSeatsAvailable(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	rows := sqlmock.NewRows([]string{"seat_code"}).AddRow("10-04")
	mock.ExpectQuery(`SELECT "seat_code" FROM "reserved_seats"`).
		WillReturnRows(rows)

	taken, err := repo.CheckSeatsAvailable(context.Background(), []string{"10-04", "10-06"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10-04"}, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSeatsAvailableEmptyInput(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	// No query should hit the database for an empty request.
	taken, err := repo.CheckSeatsAvailable(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSeatsForBooking(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	bookingID := mustUUID(t)
	rows := sqlmock.NewRows([]string{"seat_code", "status", "email"}).
		AddRow("07-10", string(StatusConfirmed), "shopper@example.com").
		AddRow("07-12", string(StatusConfirmed), "shopper@example.com")
	mock.ExpectQuery(`SELECT \* FROM "reserved_seats"`).
		WillReturnRows(rows)

	seats, err := repo.GetSeatsForBooking(context.Background(), bookingID)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, "07-10", seats[0].SeatCode)
	assert.Equal(t, StatusConfirmed, seats[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
