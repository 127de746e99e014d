package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Common contains Elasticsearch parameters shared by the services that
// touch the speech search index.
type Common struct {
	ElasticsearchAddr  string
	ElasticsearchIndex string
}

// API describes HTTP-layer configuration. An empty ElasticsearchAddr
// disables the search view entirely.
type API struct {
	Common
	BindAddr        string
	DataBaseURL     string
	PageSize        int
	RefreshInterval time.Duration
}

// Worker holds configuration for the Kafka -> Elasticsearch speech ingester.
type Worker struct {
	Common
	KafkaBrokers   []string
	KafkaTopic     string
	KafkaConsumer  string
	DedupeCapacity int
	DedupeTTL      time.Duration
	BatchSize      int
}

// Indexer configures the periodic full re-index of the dataset into
// Elasticsearch.
type Indexer struct {
	Common
	DataBaseURL string
	Interval    time.Duration
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	c := &API{
		Common: Common{
			ElasticsearchAddr:  getEnv("ELASTICSEARCH_ADDR", ""),
			ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "speeches"),
		},
		BindAddr:        getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		DataBaseURL:     getEnv("DATA_BASE_URL", "http://localhost:8000"),
		PageSize:        getInt("API_MEETING_PAGE_SIZE", 5),
		RefreshInterval: getDuration("API_REFRESH_INTERVAL", "1h"),
	}

	if c.DataBaseURL == "" {
		return nil, fmt.Errorf("DATA_BASE_URL must be set")
	}
	if c.PageSize <= 0 {
		return nil, fmt.Errorf("API_MEETING_PAGE_SIZE must be positive")
	}
	if c.RefreshInterval <= 0 {
		return nil, fmt.Errorf("API_REFRESH_INTERVAL must be positive")
	}

	return c, nil
}

// LoadWorker builds a Worker config from environment variables.
func LoadWorker() (*Worker, error) {
	c := &Worker{
		Common: Common{
			ElasticsearchAddr:  getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
			ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "speeches"),
		},
		KafkaBrokers:   splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "speeches_raw"),
		KafkaConsumer:  getEnv("KAFKA_CONSUMER_GROUP", "speech-worker"),
		DedupeCapacity: getInt("WORKER_DEDUPE_CAPACITY", 20000),
		DedupeTTL:      getDuration("WORKER_DEDUPE_TTL", "24h"),
		BatchSize:      getInt("WORKER_BATCH_SIZE", 10),
	}

	if len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.ElasticsearchAddr == "" {
		return nil, fmt.Errorf("ELASTICSEARCH_ADDR must be set")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE must be positive")
	}
	if c.DedupeCapacity <= 0 {
		return nil, fmt.Errorf("WORKER_DEDUPE_CAPACITY must be positive")
	}

	return c, nil
}

// LoadIndexer builds an Indexer config from environment variables.
func LoadIndexer() (*Indexer, error) {
	c := &Indexer{
		Common: Common{
			ElasticsearchAddr:  getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
			ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "speeches"),
		},
		DataBaseURL: getEnv("DATA_BASE_URL", "http://localhost:8000"),
		Interval:    getDuration("INDEXER_INTERVAL", "24h"),
	}

	if c.DataBaseURL == "" {
		return nil, fmt.Errorf("DATA_BASE_URL must be set")
	}
	if c.ElasticsearchAddr == "" {
		return nil, fmt.Errorf("ELASTICSEARCH_ADDR must be set")
	}
	if c.Interval <= 0 {
		return nil, fmt.Errorf("INDEXER_INTERVAL must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
