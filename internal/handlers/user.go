package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"talenttrack-backend/internal/middleware"
	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// UserHandler handles account and profile HTTP requests
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
	uploadsDir  string
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, uploadsDir string) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
		uploadsDir:  uploadsDir,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Age      *int   `json:"age"`
	Location string `json:"location"`
	Sport    string `json:"sport"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

type userSummary struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

type updateProfileRequest struct {
	Bio      *string `json:"bio"`
	Sport    *string `json:"sport"`
	Location *string `json:"location"`
	VideoURL *string `json:"videoUrl"`
	Phone    *string `json:"phone"`
	Age      *int    `json:"age"`
}

// Register handles POST /api/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := h.userService.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.ParseRole(req.Role),
		Phone:    req.Phone,
		Age:      req.Age,
		Location: req.Location,
		Sport:    req.Sport,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(w, "User already exists", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		respondError(w, "Server error during registration", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Account created successfully"})
}

// Login handles POST /api/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, tok, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownUser):
			respondError(w, "Invalid Credentials", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidCredentials):
			respondError(w, "Invalid Credentials", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("Login failed")
			respondError(w, "Login error", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token: tok,
		User:  userSummary{ID: user.ID, Name: user.Name, Role: user.Role},
	})
}

// Feed handles GET /api/feed
func (h *UserHandler) Feed(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Feed(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load feed")
		respondError(w, "Failed to load feed", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// Me handles GET /api/user/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	user, err := h.userService.GetByID(r.Context(), identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to load own profile")
		respondError(w, "Fetch failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetByID handles GET /api/user/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondMsg(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", id).Msg("Failed to load user")
		respondError(w, "Server Error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/user/update
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), identity.UserID, models.ProfileUpdate{
		Bio:      req.Bio,
		Sport:    req.Sport,
		Location: req.Location,
		VideoURL: req.VideoURL,
		Phone:    req.Phone,
		Age:      req.Age,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Profile update failed")
		respondError(w, "Update failed", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UploadPhoto handles POST /api/user/upload-photo. The photo is written to
// the local uploads directory and served back under /uploads/.
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	file, header, err := r.FormFile("profilePic")
	if err != nil {
		respondMsg(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Timestamp prefix keeps concurrent uploads from colliding on disk.
	filename := fmt.Sprintf("profile-%d%s", time.Now().UnixMilli(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(h.uploadsDir, filename))
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to create upload file")
		respondError(w, "Server Error", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to write upload file")
		respondError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	filePath := "/uploads/" + filename
	if err := h.userService.SetProfilePic(r.Context(), identity.UserID, filePath); err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to store profile pic path")
		respondError(w, "Server Error", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", identity.UserID).
		Str("file_path", filePath).
		Msg("Profile photo updated")

	respondJSON(w, http.StatusOK, map[string]string{
		"msg":      "Photo updated!",
		"filePath": filePath,
	})
}
