package api

import (
	"net/http"
	"testing"

	"caisse/models"
	"caisse/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter(env *testEnv) *gin.Engine {
	log, _ := test.NewNullLogger()
	h := NewUserHandler(service.NewUserDirectory(env.db, env.creds, log), log)
	r := gin.New()
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.PUT("/users/:id", h.Update)
	return r
}

func TestUserHandler_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	r := userRouter(env)

	w := doJSON(r, "POST", "/users", `{"username":"tresorier","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.UserView
	decodeData(t, w, &created)
	assert.Equal(t, "tresorier", created.Username)
	assert.NotContains(t, w.Body.String(), "password")

	// 重名
	w = doJSON(r, "POST", "/users", `{"username":"tresorier","password":"another1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, "GET", "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.UserView
	decodeData(t, w, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "tresorier", users[1].Username)
}

func TestUserHandler_Update(t *testing.T) {
	env := newTestEnv(t)
	r := userRouter(env)

	// 不传密码时保留原密码
	w := doJSON(r, "PUT", "/users/1", `{"username":"administrateur"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.UserView
	decodeData(t, w, &updated)
	assert.Equal(t, "administrateur", updated.Username)

	var user models.User
	require.NoError(t, env.db.First(&user, 1).Error)
	assert.True(t, env.creds.Verify("admin123", user.Password))

	w = doJSON(r, "PUT", "/users/42", `{"username":"x","password":"secret1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "PUT", "/users/1", `{"username":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
