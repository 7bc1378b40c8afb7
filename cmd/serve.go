package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spurge/netica/internal/api"
	"github.com/spurge/netica/internal/interview"
	"github.com/spurge/netica/internal/logger"
	"github.com/spurge/netica/internal/resume"
	"github.com/spurge/netica/internal/skills"
	"github.com/spurge/netica/internal/transcript"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interview pipeline over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address, e.g. :8080")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log0, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		log0.Fatal("getting a config", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI.Gemini, log0)
	if err != nil {
		log0.Fatal("creating the gemini client", zap.Error(err))
	}

	store, err := transcript.NewSQLite(config.TranscriptDB)
	if err != nil {
		log0.Fatal("opening the transcript database", zap.Error(err))
	}
	defer store.Close()

	maxLogLen := config.AI.Gemini.MaxLogLength
	server := api.New(
		interview.NewQuestionGenerator(generator, log0, maxLogLen),
		interview.NewAnswerEvaluator(generator, log0, maxLogLen),
		interview.NewAggregator(config.Score.Scale),
		store,
		resume.NewTextDecoder(),
		skills.NewDetector(),
		log0,
	)

	httpServer := &http.Server{
		Addr:    config.Server.Address,
		Handler: server.Routes(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log0.Warn("shutdown did not finish cleanly", zap.Error(err))
		}
	}()

	log0.Info("listening", zap.String("address", config.Server.Address))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log0.Fatal("server failed", zap.Error(err))
	}

	log0.Info("server stopped")
}
