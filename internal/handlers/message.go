package handlers

import (
	"encoding/json"
	"net/http"

	"talenttrack-backend/internal/middleware"
	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// MessageHandler handles direct-messaging HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
	validate       *validator.Validate
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validate:       validator.New(),
	}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

// Send handles POST /api/messages/send
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := h.messageService.Send(r.Context(), identity.UserID, req.ReceiverID, req.Text)
	if err != nil {
		log.Error().Err(err).
			Str("sender_id", identity.UserID).
			Str("receiver_id", req.ReceiverID).
			Msg("Failed to send message")
		respondError(w, "Failed to send", http.StatusInternalServerError)
		return
	}

	respondMsg(w, "Message sent!", http.StatusOK)
}

// Thread handles GET /api/messages/{otherUserId}
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	otherUserID := chi.URLParam(r, "otherUserId")

	msgs, err := h.messageService.Thread(r.Context(), identity.UserID, otherUserID)
	if err != nil {
		log.Error().Err(err).
			Str("user_id", identity.UserID).
			Str("other_user_id", otherUserID).
			Msg("Failed to load thread")
		respondError(w, "Fetch failed", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	respondJSON(w, http.StatusOK, msgs)
}
