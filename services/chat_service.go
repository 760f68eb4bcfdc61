package services

import (
	"context"
	"errors"
	"sync"

	"github.com/n8hotnews-a11y/Smart-Frigde/models"
)

// ErrTurnInFlight is returned when a turn is sent while another is still
// streaming. Turns are serialized, not interleaved.
var ErrTurnInFlight = errors.New("chat: a turn is already streaming")

// chatSystemInstruction is set once per session and never re-sent per turn.
const chatSystemInstruction = "Bạn là một trợ lý dinh dưỡng AI thân thiện và hữu ích. " +
	"Bạn có thể cung cấp công thức nấu ăn, thông tin dinh dưỡng và trả lời các câu hỏi về ăn uống lành mạnh. " +
	"Câu trả lời của bạn phải rõ ràng, súc tích và mang tính khích lệ. Hãy trả lời bằng tiếng Việt."

// chatApology replaces a partially streamed model turn when the stream dies.
const chatApology = "Xin lỗi, tôi đang gặp sự cố. Vui lòng thử lại sau."

// ChatStreamer is the streaming side of the AI endpoint.
type ChatStreamer interface {
	StreamGenerateContent(ctx context.Context, history []models.ChatMessage, systemInstruction string, onFragment func(string) error) error
}

// ChatSession is one multi-turn conversation. It owns the transcript: the
// user turn goes in before the request is issued, a placeholder model turn
// before the first fragment lands, and only the streaming path appends to
// that last entry. The session lives for the process lifetime only.
type ChatSession struct {
	streamer ChatStreamer

	mu       sync.Mutex
	history  []models.ChatMessage
	inFlight bool
}

func NewChatSession(streamer ChatStreamer) *ChatSession {
	return &ChatSession{streamer: streamer}
}

// SendTurn streams one model reply for userText. Each fragment is appended
// to the in-progress transcript entry and also handed to onFragment (may be
// nil) so callers can render as the text arrives. On stream failure the
// partial entry is replaced with an apology and the session stays usable.
// Returns the final accumulated reply.
func (c *ChatSession) SendTurn(ctx context.Context, userText string, onFragment func(fragment string)) (string, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return "", ErrTurnInFlight
	}
	c.inFlight = true

	c.history = append(c.history, models.ChatMessage{
		Role:  models.ChatRoleUser,
		Parts: []models.MessagePart{{Text: userText}},
	})
	// Request context: everything up to and including the user turn.
	request := make([]models.ChatMessage, len(c.history))
	copy(request, c.history)

	// Placeholder the fragments accumulate into.
	c.history = append(c.history, models.ChatMessage{
		Role:  models.ChatRoleModel,
		Parts: []models.MessagePart{{Text: ""}},
	})
	idx := len(c.history) - 1
	c.mu.Unlock()

	err := c.streamer.StreamGenerateContent(ctx, request, chatSystemInstruction, func(frag string) error {
		c.mu.Lock()
		c.history[idx].Parts[0].Text += frag
		c.mu.Unlock()
		if onFragment != nil {
			onFragment(frag)
		}
		return nil
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.history[idx] = models.ChatMessage{
			Role:  models.ChatRoleModel,
			Parts: []models.MessagePart{{Text: chatApology}},
		}
		return "", err
	}
	return c.history[idx].Parts[0].Text, nil
}

// History returns a snapshot of the transcript.
func (c *ChatSession) History() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.ChatMessage, len(c.history))
	for i, m := range c.history {
		parts := make([]models.MessagePart, len(m.Parts))
		copy(parts, m.Parts)
		out[i] = models.ChatMessage{Role: m.Role, Parts: parts}
	}
	return out
}
