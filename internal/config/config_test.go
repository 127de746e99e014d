package config_test

import (
	"testing"
	"time"

	"github.com/Design-for-Changes/visualization/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIDefaults(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "")
	t.Setenv("ELASTICSEARCH_INDEX", "")
	t.Setenv("API_BIND_ADDR", "")
	t.Setenv("DATA_BASE_URL", "")
	t.Setenv("API_MEETING_PAGE_SIZE", "")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	require.Equal(t, "", cfg.ElasticsearchAddr, "search disabled by default")
	require.Equal(t, "speeches", cfg.ElasticsearchIndex)
	require.Equal(t, "0.0.0.0:8080", cfg.BindAddr)
	require.Equal(t, "http://localhost:8000", cfg.DataBaseURL)
	require.Equal(t, 5, cfg.PageSize)
}

func TestLoadAPIOverrides(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "http://api-es:9200")
	t.Setenv("ELASTICSEARCH_INDEX", "api-index")
	t.Setenv("API_BIND_ADDR", ":9090")
	t.Setenv("DATA_BASE_URL", "https://example.org/site")
	t.Setenv("API_MEETING_PAGE_SIZE", "10")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	require.Equal(t, "http://api-es:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "api-index", cfg.ElasticsearchIndex)
	require.Equal(t, ":9090", cfg.BindAddr)
	require.Equal(t, "https://example.org/site", cfg.DataBaseURL)
	require.Equal(t, 10, cfg.PageSize)
}

func TestLoadWorkerDefaults(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "")
	t.Setenv("ELASTICSEARCH_INDEX", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("KAFKA_CONSUMER_GROUP", "")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Equal(t, "http://elasticsearch:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "speeches", cfg.ElasticsearchIndex)
	require.Len(t, cfg.KafkaBrokers, 1)
	require.Equal(t, "kafka:9092", cfg.KafkaBrokers[0])
	require.Equal(t, "speeches_raw", cfg.KafkaTopic)
	require.Equal(t, "speech-worker", cfg.KafkaConsumer)
}

func TestLoadWorkerOverrides(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "http://localhost:9999")
	t.Setenv("ELASTICSEARCH_INDEX", "custom")
	t.Setenv("KAFKA_BROKERS", "broker-a:29092,broker-b:29093")
	t.Setenv("KAFKA_TOPIC", "custom_topic")
	t.Setenv("KAFKA_CONSUMER_GROUP", "custom-group")
	t.Setenv("WORKER_DEDUPE_CAPACITY", "5")
	t.Setenv("WORKER_DEDUPE_TTL", "48h")
	t.Setenv("WORKER_BATCH_SIZE", "3")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:9999", cfg.ElasticsearchAddr)
	require.Equal(t, "custom", cfg.ElasticsearchIndex)
	require.Len(t, cfg.KafkaBrokers, 2)
	require.Equal(t, "broker-a:29092", cfg.KafkaBrokers[0])
	require.Equal(t, "custom_topic", cfg.KafkaTopic)
	require.Equal(t, "custom-group", cfg.KafkaConsumer)
	require.Equal(t, 5, cfg.DedupeCapacity)
	require.Equal(t, 48*time.Hour, cfg.DedupeTTL)
	require.Equal(t, 3, cfg.BatchSize)
}

func TestLoadIndexer(t *testing.T) {
	t.Setenv("DATA_BASE_URL", "https://example.org/site")
	t.Setenv("ELASTICSEARCH_ADDR", "http://idx-es:9200")
	t.Setenv("ELASTICSEARCH_INDEX", "idx-index")
	t.Setenv("INDEXER_INTERVAL", "12h")

	cfg, err := config.LoadIndexer()
	require.NoError(t, err)

	require.Equal(t, "https://example.org/site", cfg.DataBaseURL)
	require.Equal(t, "http://idx-es:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "idx-index", cfg.ElasticsearchIndex)
	require.Equal(t, 12*time.Hour, cfg.Interval)
}
