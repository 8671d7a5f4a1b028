package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Snapshot sources understood by Load.
const (
	SnapshotFile  = "file"
	SnapshotMongo = "mongo"
	SnapshotS3    = "s3"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env         string
	HTTPAddr    string
	CatalogPath string
	CORSOrigins []string

	SnapshotSource  string
	SnapshotFile    string
	SnapshotRefresh string

	MongoURI        string
	MongoDB         string
	MongoCollection string

	KafkaBrokers      []string
	KafkaTopicPrefix  string
	KafkaGroupID      string
	InvalidationTopic string
	EventSource       string
	RetryInterval     time.Duration
	RetryBackoff      []time.Duration

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Object    string
	S3UseSSL    bool
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CatalogPath:       getEnv("CATALOG_PATH", "config/hotel.yaml"),
		SnapshotSource:    strings.ToLower(getEnv("SNAPSHOT_SOURCE", SnapshotFile)),
		SnapshotFile:      getEnv("SNAPSHOT_FILE", "data/bookings.json"),
		SnapshotRefresh:   getEnv("SNAPSHOT_REFRESH", "@every 5m"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "milahouse"),
		MongoCollection:   getEnv("MONGO_BOOKINGS_COLLECTION", "bookings"),
		KafkaTopicPrefix:  getEnv("KAFKA_TOPIC_PREFIX", ""),
		KafkaGroupID:      getEnv("KAFKA_GROUP_ID", "milahouse-web"),
		InvalidationTopic: getEnv("KAFKA_INVALIDATION_TOPIC", "reservations.events.v1"),
		EventSource:       getEnv("EVENT_SOURCE", "app://milahouse"),
		S3Endpoint:        getEnv("S3_ENDPOINT", "http://localhost:9000"),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:       getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:          getEnv("S3_BUCKET", "milahouse-snapshots"),
		S3Object:          getEnv("S3_OBJECT", "bookings.json"),
	}
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	retry, err := parseDurationEnv("OUTBOX_RETRY_INTERVAL", 2*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.RetryInterval = retry

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	useSSL, err := parseBoolEnv("S3_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg.S3UseSSL = useSSL

	switch cfg.SnapshotSource {
	case SnapshotFile:
	case SnapshotMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required for SNAPSHOT_SOURCE=mongo")
		}
	case SnapshotS3:
		if cfg.S3Bucket == "" || cfg.S3Object == "" {
			return Config{}, fmt.Errorf("S3_BUCKET and S3_OBJECT are required for SNAPSHOT_SOURCE=s3")
		}
	default:
		return Config{}, fmt.Errorf("unknown SNAPSHOT_SOURCE %q", cfg.SnapshotSource)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
