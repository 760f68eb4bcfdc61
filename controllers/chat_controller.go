package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n8hotnews-a11y/Smart-Frigde/services"
)

type ChatController struct {
	Session *services.ChatSession
}

func NewChatController(session *services.ChatSession) *ChatController {
	return &ChatController{Session: session}
}

type chatInput struct {
	Message string `json:"message" binding:"required"`
}

// GET /chat/history
func (cc *ChatController) History(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Session.History())
}

// POST /chat — streams the model reply as server-sent events, one event per
// fragment, so the client can append as the text arrives. Terminated by a
// "done" event carrying the full reply, or an "error" event with the
// apology text.
func (cc *ChatController) Send(c *gin.Context) {
	var input chatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	writeEvent := func(event string, payload any) {
		data, _ := json.Marshal(payload)
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	final, err := cc.Session.SendTurn(c.Request.Context(), input.Message, func(fragment string) {
		writeEvent("fragment", gin.H{"text": fragment})
	})
	if err != nil {
		if errors.Is(err, services.ErrTurnInFlight) {
			// nothing was streamed yet, a normal JSON error still works
			c.JSON(http.StatusConflict, gin.H{"error": "một tin nhắn khác đang được xử lý"})
			return
		}
		// fragments may already be out; finish the stream with the same
		// apology the transcript now holds
		writeEvent("error", gin.H{"text": "Xin lỗi, tôi đang gặp sự cố. Vui lòng thử lại sau."})
		return
	}

	writeEvent("done", gin.H{"text": final})
}
