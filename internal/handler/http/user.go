package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/superfruitcenter/fruitmart/internal/models"
	"github.com/superfruitcenter/fruitmart/internal/service"
)

// UserService is interface for user registration
type UserService interface {
	Register(ctx context.Context, login, password string) (*models.User, error)
}

// AuthService is interface for user authentication
type AuthService interface {
	Login(ctx context.Context, login, password string) (string, error)
}

// UserHandler represents HTTP handler for user-related requests
type UserHandler struct {
	us    UserService
	token service.TokenService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(us UserService, token service.TokenService) *UserHandler {
	return &UserHandler{
		us:    us,
		token: token,
	}
}

type credentialsReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterUser registers new user and signs them in
// 200 — user registered and authenticated;
// 400 — malformed request;
// 409 — login is already taken;
// 500 — internal error.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := credentialsReq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		user, err := uh.us.Register(r.Context(), req.Login, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidCredentials):
				http.Error(w, "bad request", http.StatusBadRequest)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "login is already taken", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		token, err := uh.token.CreateToken(user)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		setAuthCookie(w, token)
		w.WriteHeader(http.StatusOK)
	}
}

// AuthHandler represents HTTP handler for authentication requests
type AuthHandler struct {
	svc AuthService
}

// NewAuthHandler creates new AuthHandler instance
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// LoginUser authenticates user with login and password
// 200 — user authenticated;
// 400 — malformed request;
// 401 — invalid login or password;
// 500 — internal error.
func (ah *AuthHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := credentialsReq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		token, err := ah.svc.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				http.Error(w, "invalid login or password", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		setAuthCookie(w, token)
		w.WriteHeader(http.StatusOK)
	}
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
