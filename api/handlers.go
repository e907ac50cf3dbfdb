package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inquiryflow/auth"
	"inquiryflow/voicemsg"
)

type voiceWebhookRequest struct {
	VoiceMessageID string `json:"voiceMessageId"`
	MediaURL       string `json:"mediaUrl"`
}

// handleVoiceWebhook triggers the inquiry pipeline for one inbound voice
// message. The reply itself is delivered later by the outbox relay; the
// response here only reflects processing.
func (s *Server) handleVoiceWebhook(c *gin.Context) {
	var req voiceWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.MediaURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaUrl is required"})
		return
	}

	result, err := s.processor.Process(c.Request.Context(), req.VoiceMessageID, req.MediaURL)
	if err != nil {
		s.logger.Error("api: process voice message",
			zap.String("voice_message_id", req.VoiceMessageID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transcription": result.Transcription,
		"responseText":  result.ResponseText,
	})
}

// handleRetranscribe re-runs the whole pipeline for a message that ended up
// failed. The pipeline itself resets the record by overwriting transcription
// and status on success.
func (s *Server) handleRetranscribe(c *gin.Context) {
	id := c.Param("id")

	record, err := s.messages.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, voicemsg.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "voice message not found"})
			return
		}
		s.logger.Error("api: load voice message", zap.String("voice_message_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.processor.Process(c.Request.Context(), record.ID, record.MediaURL)
	if err != nil {
		s.logger.Error("api: retranscribe voice message",
			zap.String("voice_message_id", id),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transcription": result.Transcription,
		"responseText":  result.ResponseText,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		s.logger.Error("api: login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"agent": gin.H{
			"id":        result.Agent.ID,
			"email":     result.Agent.Email,
			"full_name": result.Agent.FullName,
			"role":      result.Agent.Role,
		},
	})
}
