package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"todo-tracker/internal/models"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		h.Log.WithField("ip", clientIP).Warn("rate limit exceeded for login")
		sendError(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Bad JSON", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		sendError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		h.Log.WithError(err).Error("looking up user failed")
		sendError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if user == nil {
		sendError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		sendError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	tokenString, err := h.generateToken(user.ID.String())
	if err != nil {
		h.Log.WithError(err).Error("generating token failed")
		sendError(w, "Cannot create token", http.StatusInternalServerError)
		return
	}

	h.Log.WithField("email", user.Email).Info("user logged in")
	sendJSON(w, http.StatusOK, loginResponse{Token: tokenString, User: user})
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) generateToken(sub string) (string, error) {
	if len(h.JWTSecret) == 0 {
		return "", fmt.Errorf("jwt secret is not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	tokenString, err := token.SignedString(h.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return tokenString, nil
}
