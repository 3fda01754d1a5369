package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath        string // sqlite progress database
	QuestionsPath string // catalog JSON file
	LogPath       string // slog output; the terminal belongs to the UI

	SessionSize  int
	PassMark     int
	ExamDuration time.Duration

	NoColor bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		DBPath:        getenvDefault("TRAINER_DB", "lifeuk.db"),
		QuestionsPath: getenvDefault("TRAINER_QUESTIONS", "questions.json"),
		LogPath:       getenvDefault("TRAINER_LOG", "trainer.log"),
		SessionSize:   getenvIntDefault("SESSION_SIZE", 24),
		PassMark:      getenvIntDefault("PASS_MARK", 18),
		ExamDuration:  getenvDurationDefault("EXAM_DURATION", 45*time.Minute),
		NoColor:       os.Getenv("NO_COLOR") != "",
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("config: %s=%q is not a positive integer", k, v)
	}
	return n
}

func getenvDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
