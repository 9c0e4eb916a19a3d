package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fc_shop_v1/internal/api/dto"
	"fc_shop_v1/internal/middleware"
)

func performRequestWithCookie(r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatalf("响应中没有 %s cookie", middleware.SessionCookieName)
	return nil
}

func TestLoginEndpoint(t *testing.T) {
	store, r := setupTestRouter(t)
	seedAdminUser(t, store, "admin", "secret123")

	w := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := sessionCookie(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var resp dto.AuthStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	require.NotNil(t, resp.User)
	assert.Equal(t, "admin", resp.User.Username)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	store, r := setupTestRouter(t)
	seedAdminUser(t, store, "admin", "secret123")

	w := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 不存在的账号返回同一个错误，避免账号枚举
	w = performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "ghost",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthStatusEndpoint(t *testing.T) {
	store, r := setupTestRouter(t)
	seedAdminUser(t, store, "admin", "secret123")

	// 未登录时不报错，authenticated=false
	w := performRequest(r, http.MethodGet, "/api/auth/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AuthStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)

	// 登录后带 cookie 查询
	login := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin", "password": "secret123",
	})
	cookie := sessionCookie(t, login)

	w = performRequestWithCookie(r, http.MethodGet, "/api/auth/status", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	resp = dto.AuthStatusResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
}

func TestAdminRouteRequiresSession(t *testing.T) {
	store, r := setupTestRouter(t)
	seedAdminUser(t, store, "admin", "secret123")

	// 无 cookie 直接 401
	w := performRequest(r, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 登录后放行
	login := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin", "password": "secret123",
	})
	cookie := sessionCookie(t, login)

	w = performRequestWithCookie(r, http.MethodGet, "/api/orders", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestLogoutEndpointClosesSession(t *testing.T) {
	store, r := setupTestRouter(t)
	seedAdminUser(t, store, "admin", "secret123")

	login := performRequest(r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin", "password": "secret123",
	})
	cookie := sessionCookie(t, login)

	w := performRequestWithCookie(r, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// 旧 token 在服务端已注销，不能再用
	w = performRequestWithCookie(r, http.MethodGet, "/api/orders", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 重复注销幂等
	w = performRequestWithCookie(r, http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}
