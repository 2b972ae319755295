package handler

import (
	"github.com/labstack/echo/v4"

	"trazot/internal/usecase"
	"trazot/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	ListingID  string `json:"listing_id" validate:"required"`
	ReceiverID string `json:"receiver_id" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	senderID := c.Get("uid").(string)

	message, err := h.messageUseCase.Send(c.Request().Context(), senderID, usecase.SendMessageInput{
		ListingID:  req.ListingID,
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.messageUseCase.Conversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, conversations)
}

func (h *MessageHandler) GetThread(c echo.Context) error {
	userID := c.Get("uid").(string)

	thread, err := h.messageUseCase.Thread(c.Request().Context(), userID, c.Param("counterpartId"), c.Param("listingId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, thread)
}
