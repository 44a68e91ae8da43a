package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	AWSRegion          string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	BooksTableName     string `envconfig:"BOOKS_TABLE_NAME" default:"library-books"`
	CustomersTableName string `envconfig:"CUSTOMERS_TABLE_NAME" default:"library-customers"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
	LocalMode          bool   `envconfig:"LOCAL_MODE" default:"true"` // run against a local DynamoDB without AWS
	DynamoDBEndpoint   string `envconfig:"DYNAMODB_ENDPOINT" default:"http://localhost:8000"`
	KafkaEnabled       bool   `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers       string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic         string `envconfig:"KAFKA_TOPIC" default:"inventory-events"`
}

func Load() (*Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
