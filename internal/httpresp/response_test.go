package httpresp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recorder() (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, c
}

func TestList_NilIsEmptyArray(t *testing.T) {
	w, c := recorder()
	List[string](c, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())
}

func TestPage(t *testing.T) {
	w, c := recorder()
	Page(c, []int{1, 2}, 2, 2, 7)

	assert.JSONEq(t, `{"data":[1,2],"page":2,"limit":2,"total":7}`, w.Body.String())
}
