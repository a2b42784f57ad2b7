package content

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"course-platform/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	database.DB = gdb
	t.Cleanup(func() {
		database.DB = nil
		db.Close()
	})
	return mock
}

func putJSON(handler gin.HandlerFunc, params gin.Params, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = params
	c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestReorderModulesWritesOnlyMovedRows(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "modules"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).
			AddRow("mod-a", 1).
			AddRow("mod-b", 2).
			AddRow("mod-c", 3))

	// [A B C] -> [C A B]: all three move
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "modules" SET "position"=$1`)).
		WithArgs(1, sqlmock.AnyArg(), "mod-c").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "modules" SET "position"=$1`)).
		WithArgs(2, sqlmock.AnyArg(), "mod-a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "modules" SET "position"=$1`)).
		WithArgs(3, sqlmock.AnyArg(), "mod-b").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := putJSON(ReorderModules, nil, `{"ordered_ids":["mod-c","mod-a","mod-b"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderModulesNoopCommitsWithoutUpdates(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "modules"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).
			AddRow("mod-a", 1).
			AddRow("mod-b", 2))
	mock.ExpectCommit()

	w := putJSON(ReorderModules, nil, `{"ordered_ids":["mod-a","mod-b"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderModulesConflictRollsBack(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "modules"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).
			AddRow("mod-a", 1).
			AddRow("mod-b", 2))
	mock.ExpectRollback()

	// client still holds a three-module view
	w := putJSON(ReorderModules, nil, `{"ordered_ids":["mod-a","mod-b","mod-x"]}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderModulesRejectsMissingBody(t *testing.T) {
	setupMockDB(t)

	w := putJSON(ReorderModules, nil, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReorderLessonsLocksSiblingsOfOneModule(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "modules" WHERE id = $1`)).
		WithArgs("mod-a", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}).AddRow("mod-a", 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "lessons" WHERE module_id = $1`)).
		WithArgs("mod-a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "module_id", "position"}).
			AddRow("les-1", "mod-a", 1).
			AddRow("les-2", "mod-a", 2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "lessons" SET "position"=$1`)).
		WithArgs(1, sqlmock.AnyArg(), "les-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "lessons" SET "position"=$1`)).
		WithArgs(2, sqlmock.AnyArg(), "les-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	params := gin.Params{{Key: "id", Value: "mod-a"}}
	w := putJSON(ReorderLessons, params, `{"ordered_ids":["les-2","les-1"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReorderLessonsUnknownModuleIs404(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "modules" WHERE id = $1`)).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "position"}))
	mock.ExpectRollback()

	params := gin.Params{{Key: "id", Value: "missing"}}
	w := putJSON(ReorderLessons, params, `{"ordered_ids":["les-1"]}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
