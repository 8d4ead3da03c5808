package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/models"
	"mindmate-backend/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func requestUserID(r *http.Request) *uuid.UUID {
	id := middleware.GetUserID(r.Context())
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	identity := middleware.GetIdentity(r.Context())
	reply, err := h.chatService.Send(r.Context(), identity, requestUserID(r), req.Message)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	turns, err := h.chatService.History(r.Context(), identity, requestUserID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if turns == nil {
		turns = []models.ChatTurn{}
	}

	writeJSON(w, http.StatusOK, models.ChatHistoryResponse{
		Greeting: h.chatService.Greeting(),
		Turns:    turns,
	})
}

func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if err := h.chatService.Clear(r.Context(), identity, requestUserID(r)); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Conversation cleared"})
}
