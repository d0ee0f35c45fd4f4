package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mentorhub/mentorhub/pkg/models"
	"github.com/mentorhub/mentorhub/pkg/repository"
)

type MessagesHandler struct {
	messages repository.MessageRepo
	users    repository.UserRepo
}

func NewMessagesHandler(mr repository.MessageRepo, ur repository.UserRepo) *MessagesHandler {
	return &MessagesHandler{messages: mr, users: ur}
}

func queryUserID(r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func (h *MessagesHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(r, "user_id")
	if !ok {
		writeError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	limit, offset := pagination(r)

	items, err := h.messages.ListInbox(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, "failed to list inbox", http.StatusInternalServerError)
		return
	}
	unread, err := h.messages.CountUnread(r.Context(), userID)
	if err != nil {
		writeError(w, "failed to count unread", http.StatusInternalServerError)
		return
	}

	if items == nil {
		items = []models.Message{}
	}

	writeJSON(w, map[string]any{
		"unread": unread,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	}, http.StatusOK)
}

func (h *MessagesHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userA, okA := queryUserID(r, "user_a")
	userB, okB := queryUserID(r, "user_b")
	if !okA || !okB {
		writeError(w, "user_a and user_b are required", http.StatusBadRequest)
		return
	}
	limit, offset := pagination(r)

	items, err := h.messages.ListConversation(r.Context(), userA, userB, limit, offset)
	if err != nil {
		writeError(w, "failed to list conversation", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.Message{}
	}

	writeJSON(w, map[string]any{"items": items}, http.StatusOK)
}

type sendMessageRequest struct {
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body"`
}

func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.SenderID <= 0 || req.RecipientID <= 0 || req.Body == "" {
		writeError(w, "sender_id, recipient_id and body are required", http.StatusBadRequest)
		return
	}

	recipient, err := h.users.GetByID(r.Context(), req.RecipientID)
	if err != nil {
		writeError(w, "failed to load recipient", http.StatusInternalServerError)
		return
	}
	if recipient == nil {
		writeError(w, "recipient not found", http.StatusNotFound)
		return
	}

	m := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}
	if err := h.messages.CreateMessage(r.Context(), m); err != nil {
		writeError(w, "failed to send message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"id": m.ID}, http.StatusCreated)
}

type markReadRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *MessagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		writeError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	updated, err := h.messages.MarkRead(r.Context(), id, req.UserID)
	if err != nil {
		writeError(w, "failed to mark message read", http.StatusInternalServerError)
		return
	}
	if !updated {
		writeError(w, "message not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]bool{"read": true}, http.StatusOK)
}
