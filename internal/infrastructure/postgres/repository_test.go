package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/memory"
)

var attendanceCols = []string{"id", "user_id", "work_date", "marked_at", "status"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepo_List(t *testing.T) {
	mock := newMock(t)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "name", "email", "position", "role", "status", "created_at", "updated_at"}).
		AddRow("admin-1", "Laura", "laura@empresa.co", "Gerente", entity.RoleAdmin, entity.UserStatusActive, now, now).
		AddRow("emp-1", "Andrés", "andres@empresa.co", "Bodeguero", entity.RoleEmployee, entity.UserStatusTerminated, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users ORDER BY created_at, id`)).WillReturnRows(rows)

	users, err := NewUserRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
	assert.False(t, users[1].IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs("nadie").
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserRepository(mock).GetByID(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET`)).
		WithArgs("x", "X", "", "", entity.RoleEmployee, entity.UserStatusActive).
		WillReturnError(pgx.ErrNoRows)

	_, err := NewUserRepository(mock).Update(context.Background(), &entity.User{
		ID: "x", Name: "X", Role: entity.RoleEmployee, Status: entity.UserStatusActive,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepo_Create(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2024, 7, 27, 13, 0, 0, 0, time.UTC)
	rec := &entity.AttendanceRecord{ID: "a1", UserID: "emp-1", Date: "2024-07-27", Timestamp: ts, Status: entity.AttendancePending}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO attendance_records`)).
		WithArgs("a1", "emp-1", "2024-07-27", ts, entity.AttendancePending).
		WillReturnRows(pgxmock.NewRows(attendanceCols).AddRow("a1", "emp-1", "2024-07-27", ts, entity.AttendancePending))

	out, err := NewAttendanceRepository(mock).Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-27", out.Date)
	assert.Equal(t, entity.AttendancePending, out.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepo_Create_TraduceErrores(t *testing.T) {
	cases := map[string]struct {
		code string
		want error
	}{
		"mismo día":           {codeUniqueViolation, domain.ErrAlreadyMarked},
		"usuario inexistente": {codeForeignKeyViolation, domain.ErrNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO attendance_records`)).
				WillReturnError(&pgconn.PgError{Code: tc.code})

			_, err := NewAttendanceRepository(mock).Create(context.Background(), &entity.AttendanceRecord{
				ID: "a2", UserID: "emp-1", Date: "2024-07-27", Timestamp: time.Now(), Status: entity.AttendancePending,
			})
			assert.ErrorIs(t, err, tc.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendanceRepo_UpdateStatus(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2024, 7, 27, 13, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE attendance_records SET status = $2 WHERE id = $1`)).
		WithArgs("a1", entity.AttendanceApproved).
		WillReturnRows(pgxmock.NewRows(attendanceCols).AddRow("a1", "emp-1", "2024-07-27", ts, entity.AttendanceApproved))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE attendance_records SET status = $2 WHERE id = $1`)).
		WithArgs("zz", entity.AttendanceRejected).
		WillReturnError(pgx.ErrNoRows)

	repo := NewAttendanceRepository(mock)
	out, err := repo.UpdateStatus(context.Background(), "a1", entity.AttendanceApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.AttendanceApproved, out.Status)

	_, err = repo.UpdateStatus(context.Background(), "zz", entity.AttendanceRejected)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Import_Commit(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2024, 7, 26, 13, 0, 0, 0, time.UTC)
	data := memory.Dataset{
		Users:      []*entity.User{{ID: "emp-1", Name: "Andrés", Role: entity.RoleEmployee, Status: entity.UserStatusActive}},
		Attendance: []*entity.AttendanceRecord{{ID: "a1", UserID: "emp-1", Date: "2024-07-26", Timestamp: ts, Status: entity.AttendanceApproved}},
		Inventory: []*entity.InventoryItem{{
			ID: "inv-1", SKU: "PAP-001", Name: "Papel", Category: "Papelería",
			Quantity: decimal.NewFromInt(40), UnitPrice: decimal.NewFromInt(18500),
		}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("emp-1", "Andrés", "", "", entity.RoleEmployee, entity.UserStatusActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO attendance_records`)).
		WithArgs("a1", "emp-1", "2024-07-26", ts, entity.AttendanceApproved).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO inventory_items`)).
		WithArgs("inv-1", "PAP-001", "Papel", "Papelería", decimal.NewFromInt(40), decimal.NewFromInt(18500)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, NewStore(mock).Import(context.Background(), data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Import_RollbackAnteError(t *testing.T) {
	mock := newMock(t)
	data := memory.Dataset{
		Users: []*entity.User{{ID: "emp-1", Name: "Andrés", Role: entity.RoleEmployee, Status: entity.UserStatusActive}},
		Attendance: []*entity.AttendanceRecord{
			{ID: "a1", UserID: "emp-1", Date: "2024-07-26", Status: entity.AttendancePending},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO attendance_records`)).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})
	mock.ExpectRollback()

	err := NewStore(mock).Import(context.Background(), data)
	assert.ErrorIs(t, err, domain.ErrAlreadyMarked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embebidas(t *testing.T) {
	entries, err := Migrations.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	up, err := Migrations.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "attendance_records (user_id, work_date)")
}

func TestStore_CreateAttendance_CompletaBorrador(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2024, 7, 27, 13, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO attendance_records`)).
		WithArgs(pgxmock.AnyArg(), "emp-1", "2024-07-27", ts, entity.AttendancePending).
		WillReturnRows(pgxmock.NewRows(attendanceCols).AddRow("gen-1", "emp-1", "2024-07-27", ts, entity.AttendancePending))

	out, err := NewStore(mock).CreateAttendance(context.Background(), &entity.AttendanceRecord{
		UserID: "emp-1", Date: "2024-07-27", Timestamp: ts, Status: entity.AttendanceApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", out.ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = NewStore(mock).CreateAttendance(context.Background(), &entity.AttendanceRecord{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
