package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spurge/netica/internal/capture"
	"github.com/spurge/netica/internal/gemini"
	"github.com/spurge/netica/internal/interview"
	"github.com/spurge/netica/internal/logger"
	"github.com/spurge/netica/internal/resume"
	"github.com/spurge/netica/internal/secrets"
	"github.com/spurge/netica/internal/skills"
	"github.com/spurge/netica/internal/speech"
	"github.com/spurge/netica/internal/transcript"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one interview session in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the candidate's resume text file")
	runCmd.Flags().StringP("candidate", "c", "", "candidate identifier, e.g. alice42")
	runCmd.Flags().Bool("skip-hr", false, "skip the closing HR round")

	viper.BindPFlag("resume-file", runCmd.Flags().Lookup("resume"))
	viper.BindPFlag("candidate-id", runCmd.Flags().Lookup("candidate"))
	viper.BindPFlag("interview.skip-hr", runCmd.Flags().Lookup("skip-hr"))
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	log0, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		log0.Fatal("getting a config", zap.Error(err))
	}

	log0.Info("starting the interview", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	log0.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	candidateID := strings.TrimSpace(viper.GetString("candidate-id"))
	if candidateID == "" {
		log0.Fatal("candidate identifier is required (--candidate)")
	}

	resumePath := strings.TrimSpace(viper.GetString("resume-file"))
	if resumePath == "" {
		log0.Fatal("resume file is required (--resume)")
	}

	raw, err := os.ReadFile(resumePath)
	if err != nil {
		log0.Fatal("reading resume file", zap.Error(err))
	}

	text := resume.NewTextDecoder().Decode(raw)
	if text == "" {
		log0.Fatal("resume text could not be extracted", zap.String("file", resumePath))
	}

	found := skills.NewDetector().Detect(text)
	if len(found) == 0 {
		log0.Fatal("no known skills found in the resume", zap.String("file", resumePath))
	}

	log0.Info("skills detected", zap.Strings("skills", found))

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
	deps := interview.Deps{
		Generator: interview.NewQuestionGenerator(generator, log0, maxLogLen),
		Evaluator: interview.NewAnswerEvaluator(generator, log0, maxLogLen),
		Channel:   newAnswerChannel(config.Interview, log0),
		Speaker:   speech.NewCommand(config.Interview.SpeechCommand, log0),
		Store:     store,
		Logger:    log0,
	}

	cfg := interview.Config{
		FollowUpLimit: config.Interview.FollowUpLimit,
		ScoreScale:    config.Score.Scale,
		SkipHR:        config.Interview.SkipHR || viper.GetBool("interview.skip-hr"),
	}

	session, err := interview.NewSession(interview.Candidate{ID: candidateID}, found, cfg, deps)
	if err != nil {
		log0.Fatal("creating the session", zap.Error(err))
	}

	result, err := session.Run(ctx)
	if err != nil {
		log0.Fatal("interview aborted", zap.Error(err))
	}

	if result.StorageDegraded {
		log0.Warn("some transcript writes failed, the stored transcript may be incomplete")
	}

	if result.NoData {
		fmt.Println("No questions could be asked, so there is no score.")
		return
	}

	fmt.Printf("Overall score: %d/%d over %d answers\n", result.Score, result.Scale, len(result.Entries))
}

func newGenerator(ctx context.Context, cfg *GeminiConfig, log0 *zap.Logger) (*gemini.Generator, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := log0.With(
		zap.String("provider", "gemini"),
		zap.String(logger.FieldModel, cfg.Model),
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	return gemini.New(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
}

func newAnswerChannel(cfg *InterviewConfig, log0 *zap.Logger) interview.AnswerChannel {
	if strings.TrimSpace(cfg.TranscribeCommand) == "" {
		return capture.NewTyped()
	}

	return capture.NewModal(capture.NewCommandTranscriber(cfg.TranscribeCommand), log0)
}
