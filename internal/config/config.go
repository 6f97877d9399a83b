package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// Matching defaults; requests may override threshold/top_n within limits.
	DefaultThreshold float64
	DefaultTopN      int
	MaxTopN          int
	MatchWorkers     int // 0 means scale to the host CPU count
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	threshold, _ := strconv.ParseFloat(getenv("MATCH_THRESHOLD", "75"), 64)
	topN, _ := strconv.Atoi(getenv("MATCH_TOP_N", "5"))
	maxTopN, _ := strconv.Atoi(getenv("MATCH_MAX_TOP_N", "20"))
	workers, _ := strconv.Atoi(getenv("MATCH_WORKERS", "0"))
	return Config{
		Host:             getenv("HOST", "127.0.0.1"),
		Port:             port,
		AllowOrigins:     origins,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		MaxUploadMB:      mb,
		LogFile:          getenv("LOG_FILE", "logs/brandmatch-service.log"),
		DefaultThreshold: threshold,
		DefaultTopN:      topN,
		MaxTopN:          maxTopN,
		MatchWorkers:     workers,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
