package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ReturnsTokenAndUser(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "alice@example.com", "password": "pw", "full_name": "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			Email    string  `json:"email"`
			FullName *string `json:"full_name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	require.NotNil(t, resp.User.FullName)
	assert.Equal(t, "Alice", *resp.User.FullName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestRouter(t)

	register(t, r, "alice@example.com", "pw")

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "alice@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "not-an-email", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Success(t *testing.T) {
	r := newTestRouter(t)

	register(t, r, "alice@example.com", "pw")

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_SameResponseForBothFailures(t *testing.T) {
	r := newTestRouter(t)

	register(t, r, "alice@example.com", "pw")

	unknown := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "pw",
	})
	wrongPw := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "bad",
	})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestMe(t *testing.T) {
	r := newTestRouter(t)

	token := register(t, r, "alice@example.com", "pw")

	w := doJSON(r, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestMe_RequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
