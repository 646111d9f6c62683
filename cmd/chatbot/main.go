package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fairbot/internal/common/config"
	"fairbot/internal/common/database"
	"fairbot/internal/common/logger"
	"fairbot/internal/engine"
	"fairbot/internal/mapviz"
	"fairbot/internal/models"
	"fairbot/internal/pipeline/narrate"
	parseintent "fairbot/internal/pipeline/parse-intent"
	"fairbot/internal/pipeline/recommend"
	resolvefaq "fairbot/internal/pipeline/resolve-faq"
	"fairbot/internal/speech"
	"fairbot/internal/store"
)

// retryWithBackoff retries an operation with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = operation()
		if err == nil {
			if attempt > 1 {
				log.Info("Operation succeeded after retry",
					zap.String("operation", operationName),
					zap.Int("attempt", attempt))
			}
			return nil
		}

		if attempt < maxRetries {
			log.Warn("Operation failed, retrying",
				zap.String("operation", operationName),
				zap.Int("attempt", attempt),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("retryIn", delay),
				zap.Error(err))
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chatbot service",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment))

	ctx := context.Background()

	// Redis backs the event datastore. The service cannot answer
	// schedule questions without it, so startup blocks on the ping.
	redisClient, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()

	err = retryWithBackoff(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return redisClient.Ping(pingCtx)
	}, 5, 2*time.Second, zapLog, "redis connection")
	if err != nil {
		zapLog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	zapLog.Info("Connected to Redis", zap.String("address", cfg.Database.Redis.Address))

	eventStore := store.NewEventStore(redisClient.GetClient(), log)
	if err := eventStore.SeedDefaults(ctx); err != nil {
		zapLog.Fatal("Failed to seed event datastore", zap.Error(err))
	}

	intentCfg := parseintent.LoadConfig()
	intentCfg.ClassifierBaseURL = cfg.NLP.Classifier.BaseURL
	intentCfg.Timeout = time.Duration(cfg.NLP.Classifier.Timeout) * time.Millisecond
	intentCfg.MaxRetries = cfg.NLP.Classifier.MaxRetries
	intentCfg.MinScore = cfg.NLP.Classifier.MinScore
	classifier := parseintent.NewHTTPClassifier(intentCfg, log)
	intents := parseintent.NewHandler(intentCfg, classifier, log)

	faq := resolvefaq.NewHandler(rand.New(rand.NewSource(time.Now().UnixNano())), log)

	recCfg := recommend.LoadConfig()
	recCfg.EmbedderBaseURL = cfg.NLP.Embedder.BaseURL
	recCfg.Timeout = time.Duration(cfg.NLP.Embedder.Timeout) * time.Millisecond
	recCfg.MaxRetries = cfg.NLP.Embedder.MaxRetries
	recommender := recommend.NewHandler(recCfg, recommend.NewHTTPEmbedder(recCfg, log), log)

	// Catalog embeddings are computed once at startup. When the embedder
	// is unreachable the service still starts: recommendations stay
	// empty and answers fall back to the FAQ tiers.
	err = retryWithBackoff(func() error {
		warmCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
		return recommender.Warm(warmCtx)
	}, 3, 2*time.Second, zapLog, "recommendation warm-up")
	if err != nil {
		zapLog.Warn("Recommendation catalog not warmed, continuing without recommendations", zap.Error(err))
	}

	narrator := narrate.NewHandler(eventStore, faq, recommender, cfg.Event.StartDate,
		rand.New(rand.NewSource(time.Now().UnixNano())), log)

	speechClient := speech.NewClient(speech.Config{
		BaseURL: cfg.NLP.Speech.BaseURL,
		Timeout: time.Duration(cfg.NLP.Speech.Timeout) * time.Millisecond,
	}, log)

	mapBuilder := mapviz.NewBuilder(eventStore, log)

	eng := engine.New(eventStore, intents, narrator, cfg.Event.StartDate, cfg.Event.EndDate, log)

	// Metrics, pprof and liveness probes live on a separate listener.
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(pingCtx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		zapLog.Info("Metrics server starting", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	api := &apiServer{
		engine:      eng,
		speech:      speechClient,
		mapBuilder:  mapBuilder,
		defaultLang: cfg.Event.DefaultLang,
		logger:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/answer", api.handleAnswer)
	mux.HandleFunc("/countries", api.handleCountries)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		zapLog.Info("API server starting", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("API server shutdown error", zap.Error(err))
	}

	zapLog.Info("Chatbot service stopped")
}

type apiServer struct {
	engine      *engine.Engine
	speech      *speech.Client
	mapBuilder  *mapviz.Builder
	defaultLang string
	logger      logger.Logger
}

type answerRequest struct {
	Text         string `json:"text"`
	Language     string `json:"language"`
	ResponseType string `json:"response_type"`

	// Audio carries a base64 voice question; Voice asks for a spoken
	// answer alongside the text one.
	Audio string `json:"audio,omitempty"`
	Voice bool   `json:"voice,omitempty"`
}

type answerResponse struct {
	models.Response
	Audio string `json:"audio,omitempty"`
}

func (s *apiServer) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lang := req.Language
	if lang == "" {
		lang = s.defaultLang
	}

	text := req.Text
	if text == "" && req.Audio != "" {
		transcribed, err := s.speech.Transcribe(r.Context(), req.Audio, lang)
		if err != nil {
			s.logger.WithError(err).Error("transcription failed", nil)
			http.Error(w, "transcription failed", http.StatusBadGateway)
			return
		}
		text = transcribed
	}

	resp := s.engine.Answer(r.Context(), text, lang, req.ResponseType)

	out := answerResponse{Response: *resp}
	if req.Voice {
		audio, err := s.speech.Synthesize(r.Context(), resp.Answer.Summary, lang)
		if err != nil {
			// Voice is best effort: the text answer still goes out.
			s.logger.WithError(err).Warn("synthesis failed", nil)
		} else {
			out.Audio = audio
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *apiServer) handleCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tallies, err := s.mapBuilder.Tally(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("country tally failed", nil)
		http.Error(w, "datastore unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tallies)
}
