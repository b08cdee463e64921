package helpers

import (
	"fmt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	decimal "github.com/sdcoffey/big"
	"github.com/xhit/go-str2duration/v2"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ZeroExAPIURL string
	ChainID      int64

	QuoteToken    common.Address
	QuoteDecimals int
	BaseDecimals  int

	MinBidPrice decimal.Decimal
	MaxAskPrice decimal.Decimal
	MinSize     decimal.Decimal

	GasStationURL string
	GasSpeed      string
	NativeSymbol  string
	BinanceAPIKey string
	BinanceSecret string

	RPCURL                  string
	MarginCalculatorAddress common.Address

	OrderBookInterval time.Duration
	GasInterval       time.Duration
	PriceInterval     time.Duration

	EnableDatabaseRecording bool
	DatabaseHost            string
	DatabasePort            string
	DatabaseName            string
	DatabaseUser            string
	DatabasePassword        string

	EnableKafkaPublishing bool
	KafkaBrokers          []string
	KafkaTopic            string

	APIAddress string

	LogFile        string
	LogLevel       string
	TelegramOutput bool
	TelegramToken  string
	TelegramChatID string
}

func init() {
	cwd, _ := os.Getwd()
	dir := os.Getenv("CONF_FILE")
	if dir == "" {
		dir = "/conf.env"
	}
	_ = godotenv.Load(cwd + dir)
}

// LoadConfig reads the environment (conf.env included) into a Config
func LoadConfig() (Config, error) {
	var err error
	cfg := Config{
		ZeroExAPIURL:            getEnv("zeroExAPIURL", "https://api.0x.org/orderbook/v1"),
		QuoteToken:              common.HexToAddress(getEnv("quoteToken", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")),
		GasStationURL:           getEnv("gasStationURL", "https://ethgasstation.info/api/ethgasAPI.json"),
		GasSpeed:                getEnv("gasSpeed", "fast"),
		NativeSymbol:            getEnv("nativeSymbol", "ETHUSDT"),
		BinanceAPIKey:           os.Getenv("binanceAPIKey"),
		BinanceSecret:           os.Getenv("binanceAPISecret"),
		RPCURL:                  os.Getenv("rpcURL"),
		MarginCalculatorAddress: common.HexToAddress(os.Getenv("marginCalculator")),
		DatabaseHost:            os.Getenv("databaseHost"),
		DatabasePort:            getEnv("databasePort", "3306"),
		DatabaseName:            os.Getenv("databaseName"),
		DatabaseUser:            os.Getenv("databaseUser"),
		DatabasePassword:        os.Getenv("databasePassword"),
		KafkaTopic:              getEnv("kafkaTopic", "option-quotes"),
		APIAddress:              getEnv("apiAddress", ":8080"),
		LogFile:                 os.Getenv("logFile"),
		LogLevel:                getEnv("logLevel", "info"),
		TelegramToken:           os.Getenv("telegramToken"),
		TelegramChatID:          os.Getenv("telegramChatId"),
	}

	if brokers := os.Getenv("kafkaBrokers"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.ChainID, err = strconv.ParseInt(getEnv("chainId", "1"), 10, 64); err != nil {
		return cfg, fmt.Errorf("error parsing chainId: %w", err)
	}
	if cfg.QuoteDecimals, err = strconv.Atoi(getEnv("quoteDecimals", "6")); err != nil {
		return cfg, fmt.Errorf("error parsing quoteDecimals: %w", err)
	}
	if cfg.BaseDecimals, err = strconv.Atoi(getEnv("baseDecimals", "8")); err != nil {
		return cfg, fmt.Errorf("error parsing baseDecimals: %w", err)
	}

	cfg.MinBidPrice = decimal.NewFromString(getEnv("minBidPrice", "0.0001"))
	cfg.MaxAskPrice = decimal.NewFromString(getEnv("maxAskPrice", "99999"))
	cfg.MinSize = decimal.NewFromString(getEnv("minSize", "0.0001"))

	if cfg.OrderBookInterval, err = str2duration.ParseDuration(getEnv("orderBookInterval", "15s")); err != nil {
		return cfg, fmt.Errorf("error parsing orderBookInterval: %w", err)
	}
	if cfg.GasInterval, err = str2duration.ParseDuration(getEnv("gasInterval", "30s")); err != nil {
		return cfg, fmt.Errorf("error parsing gasInterval: %w", err)
	}
	if cfg.PriceInterval, err = str2duration.ParseDuration(getEnv("priceInterval", "1m")); err != nil {
		return cfg, fmt.Errorf("error parsing priceInterval: %w", err)
	}

	cfg.EnableDatabaseRecording, _ = strconv.ParseBool(os.Getenv("enableDatabaseRecording"))
	cfg.EnableKafkaPublishing, _ = strconv.ParseBool(os.Getenv("enableKafkaPublishing"))
	cfg.TelegramOutput, _ = strconv.ParseBool(os.Getenv("telegramOutput"))

	return cfg, nil
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
