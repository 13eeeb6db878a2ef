package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	Setup()
}

type queryReq struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,max=500"`
}

type bodyReq struct {
	FullName string `json:"fullName" binding:"required"`
}

func newContext(method, target, body string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c
}

func TestBindQuery(t *testing.T) {
	var ok queryReq
	assert.Nil(t, BindQuery(newContext(http.MethodGet, "/?q=rahul&limit=5", ""), &ok))
	assert.Equal(t, "rahul", ok.Q)

	var bad queryReq
	fields := BindQuery(newContext(http.MethodGet, "/?limit=900", ""), &bad)
	assert.Contains(t, fields, "q")
	assert.Contains(t, fields, "limit")
	assert.Contains(t, fields["q"], "required")
}

func TestBind(t *testing.T) {
	var req bodyReq
	fields := Bind(newContext(http.MethodPost, "/", `{}`), &req)
	assert.Contains(t, fields, "fullName")

	fields = Bind(newContext(http.MethodPost, "/", `{`), &req)
	assert.Contains(t, fields, "detail")
}
