package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cvassist/task-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestUpdateStatus_ConditionalWrite(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// The WHERE clause must pin both the task ID and the observed status;
	// that shows up as the trailing two bind arguments.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET").
		WithArgs(models.TaskStatusInProgress, sqlmock.AnyArg(), uint64(7), models.TaskStatusNotStarted).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(7, models.TaskStatusNotStarted, map[string]interface{}{
		"status": models.TaskStatusInProgress,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_StaleObservation(t *testing.T) {
	repo, mock := setupMockRepo(t)

	// Zero matched rows means another writer moved the task first.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET").
		WithArgs(models.TaskStatusCompleted, sqlmock.AnyArg(), uint64(7), models.TaskStatusInReview).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(7, models.TaskStatusInReview, map[string]interface{}{
		"status": models.TaskStatusCompleted,
	})
	require.ErrorIs(t, err, ErrStaleStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}
