package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// Tenant registry source. TenantsFile wins when both are set.
	TenantsFile   string `env:"TENANTS_FILE"`
	TenantConfigs string `env:"TENANT_CONFIGS"`

	// PublicBaseURL is the address Webpay sends buyers back to; the commit
	// callback path is appended to it.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	APIKey             string        `env:"API_KEY"`
	HMACSecret         string        `env:"HMAC_SECRET"`
	InternalToken      string        `env:"INTERNAL_TOKEN"`
	TimestampTolerance time.Duration `env:"TIMESTAMP_TOLERANCE" envDefault:"5m"`

	WebpayBaseURL           string        `env:"WEBPAY_BASE_URL"`
	HTTPWebpayClientTimeout time.Duration `env:"HTTP_WEBPAY_CLIENT_TIMEOUT" envDefault:"20s"`
	HTTPOdooClientTimeout   time.Duration `env:"HTTP_ODOO_CLIENT_TIMEOUT" envDefault:"30s"`

	OpensearchUrls        []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexEvents string   `env:"OPENSEARCH_INDEX_EVENTS" envDefault:"payment-events"`

	// ERP sync mode: "sync" (inline after commit) or "kafka" (async via Kafka)
	SyncMode string `env:"SYNC_MODE" envDefault:"sync"`

	// Kafka configuration
	KafkaBrokers               []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaPaymentsTopic         string   `env:"KAFKA_PAYMENTS_TOPIC" envDefault:"payments.committed"`
	KafkaPaymentsDLQTopic      string   `env:"KAFKA_PAYMENTS_DLQ_TOPIC" envDefault:"payments.committed.dlq"`
	KafkaPaymentsConsumerGroup string   `env:"KAFKA_PAYMENTS_CONSUMER_GROUP" envDefault:"paymux-odoo-sync"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
