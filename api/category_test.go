package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"budget/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

var categoryColumns = []string{"id", "name", "budget", "color", "created_at", "updated_at"}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func categoryRouter() *gin.Engine {
	h := NewCategoryHandler()
	router := gin.New()
	router.GET("/categories", h.List)
	router.POST("/categories", h.Create)
	router.PUT("/categories/:id", h.Update)
	router.DELETE("/categories/:id", h.Delete)
	return router
}

func TestCategoryHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories` ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(1, "餐饮", "300.00", "#4CAF50", time.Now(), time.Now()).
			AddRow(2, "房租", "1000.00", "#2196F3", time.Now(), time.Now()))

	w := doJSON(categoryRouter(), "GET", "/categories", "")
	assert.Equal(t, 200, w.Code)
	resp := decodeResponse(t, w)
	list, ok := resp["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `categories`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := doJSON(categoryRouter(), "POST", "/categories", `{"name":" 餐饮 ","budget":300}`)
	assert.Equal(t, 200, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "创建成功", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "餐饮", data["name"])
	assert.Equal(t, "#4CAF50", data["color"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Create_Invalid(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := categoryRouter()
	cases := []string{
		`{"name":"","budget":100}`,
		`{"name":"   ","budget":100}`,
		`{"name":"餐饮","budget":0}`,
		`{"name":"餐饮","budget":-5}`,
		`{"name":"餐饮","budget":"abc"}`,
		`{"name":"餐饮","budget":0.004}`,
		`{"name":"餐饮","budget":123456789}`,
	}
	for _, body := range cases {
		w := doJSON(router, "POST", "/categories", body)
		assert.Equal(t, 400, w.Code, body)
	}
	// 校验失败不访问数据库
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Update(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(3, "餐饮", "300.00", "#4CAF50", time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `categories` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(categoryRouter(), "PUT", "/categories/3", `{"name":"吃饭","budget":"0","color":"#000000"}`)
	assert.Equal(t, 200, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "吃饭", data["name"])
	assert.Equal(t, "0", data["budget"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Update_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	w := doJSON(categoryRouter(), "PUT", "/categories/99", `{"name":"吃饭","budget":10}`)
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "类别不存在", decodeResponse(t, w)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(3, "餐饮", "300.00", "#4CAF50", time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `categories`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(categoryRouter(), "DELETE", "/categories/3", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "删除成功", decodeResponse(t, w)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Delete_InvalidID(t *testing.T) {
	w := doJSON(categoryRouter(), "DELETE", "/categories/abc", "")
	assert.Equal(t, 400, w.Code)
}
