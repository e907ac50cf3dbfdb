package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"inquiryflow/api"
	"inquiryflow/auth"
	"inquiryflow/config"
	"inquiryflow/db"
	"inquiryflow/outbox"
	"inquiryflow/pipeline"
	"inquiryflow/property"
	"inquiryflow/speech"
	"inquiryflow/storage"
	"inquiryflow/voicemsg"
	"inquiryflow/whatsapp"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("service exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	audioStore, err := storage.NewDiskStore(cfg.AudioDir)
	if err != nil {
		return err
	}

	gateway := whatsapp.NewClient(cfg.WhatsAppBaseURL, cfg.WhatsAppToken)
	speechClient := speech.NewClient(cfg.TranscribeURL, cfg.SynthesizeURL, cfg.SpeechAPIKey)

	messages := voicemsg.NewRepository(pool)
	lookup := property.NewLookupService(property.NewRepository(pool))
	outboxRepo := outbox.NewRepository()

	processor := pipeline.NewService(pipeline.Deps{
		Pool:        pool,
		Messages:    messages,
		Media:       gateway,
		Transcriber: speechClient,
		Synthesizer: speechClient,
		Audio:       audioStore,
		Lookup:      lookup,
		Outbox:      outboxRepo,
		Logger:      logger,
	})

	authSvc := auth.NewService(auth.NewRepository(pool), cfg.JWTSecret)

	server := api.NewServer(processor, messages, authSvc, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Handler(),
	}

	relay := outbox.NewRelay(pool, outboxRepo, gateway, logger).
		WithInterval(cfg.RelayInterval).
		WithBatchSize(cfg.RelayBatchSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return relay.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
