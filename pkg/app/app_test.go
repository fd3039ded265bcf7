package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindParams struct {
	Title string `json:"title" form:"title" binding:"required"`
}

func TestResponse_ToResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NewResponse(c).ToResponse(code.Success.WithData(map[string]string{"id": "n1"}))

	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, true, res["status"])
	assert.Equal(t, map[string]interface{}{"id": "n1"}, res["data"])
	assert.NotContains(t, res, "details")
}

func TestBindAndValid(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?title=x", nil)
	valid, errs := BindAndValid(c, &bindParams{})
	assert.True(t, valid)
	assert.Empty(t, errs)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	valid, errs = BindAndValid(c, &bindParams{})
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Contains(t, errs.MapsToString(), "Title")
	assert.NotEmpty(t, errs.ErrorsToString())
}
