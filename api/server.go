package api

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inquiryflow/auth"
	"inquiryflow/pipeline"
	"inquiryflow/voicemsg"
)

// Processor runs the inquiry pipeline for one voice message.
type Processor interface {
	Process(ctx context.Context, voiceMessageID, mediaURL string) (pipeline.Result, error)
}

// MessageReader looks up voice-message records for the retranscribe endpoint.
type MessageReader interface {
	GetByID(ctx context.Context, id string) (voicemsg.Record, error)
}

// Server exposes the webhook and back-office HTTP surface.
type Server struct {
	engine    *gin.Engine
	processor Processor
	messages  MessageReader
	auth      *auth.Service
	logger    *zap.Logger
}

// NewServer assembles the router with permissive CORS for the dashboard.
func NewServer(processor Processor, messages MessageReader, authSvc *auth.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	s := &Server{
		engine:    engine,
		processor: processor,
		messages:  messages,
		auth:      authSvc,
		logger:    logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.POST("/auth/login", s.handleLogin)
	s.engine.POST("/webhooks/voice", s.handleVoiceWebhook)

	guarded := s.engine.Group("/", s.requireAgent())
	guarded.POST("/voice-messages/:id/retranscribe", s.handleRetranscribe)
}

// Handler exposes the router for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}
