package handlers

import (
	"net/http"
	"regexp"
	"time"

	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todo-tracker/internal/models"
)

const defaultRole = "employee"

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		h.Log.WithField("ip", clientIP).Warn("rate limit exceeded for register")
		sendError(w, "Too many register attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Bad JSON", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		sendError(w, "name is required", http.StatusBadRequest)
		return
	}
	if !isValidEmail(input.Email) {
		sendError(w, "Invalid email", http.StatusBadRequest)
		return
	}
	if len(input.Password) < 6 {
		sendError(w, "Password must be at least 6 characters long", http.StatusBadRequest)
		return
	}
	if input.Role == "" {
		input.Role = defaultRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.WithError(err).Error("hashing password failed")
		sendError(w, "Cannot hash password", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.UserRepo.Create(r.Context(), user); err != nil {
		h.Log.WithError(err).Error("saving user failed")
		sendError(w, "Cannot save user", http.StatusInternalServerError)
		return
	}

	h.Log.WithField("email", user.Email).Info("user registered")
	sendJSON(w, http.StatusCreated, user)
}

func isValidEmail(email string) bool {
	const emailRegex = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	re := regexp.MustCompile(emailRegex)
	return re.MatchString(email)
}
