package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM struct {
		BaseURL         string  `yaml:"base_url"`
		Model           string  `yaml:"model"`
		EmbedModel      string  `yaml:"embed_model"`
		MaxTokens       int     `yaml:"max_tokens"`
		Temperature     float64 `yaml:"temperature"`
		IntentMaxTokens int     `yaml:"intent_max_tokens"`
		RateLimit       float64 `yaml:"rate_limit"`
	} `yaml:"llm"`

	Retrieval struct {
		Backend        string `yaml:"backend"` // "memory" or "pgvector"
		TopK           int    `yaml:"top_k"`
		ChunkSize      int    `yaml:"chunk_size"`
		MinChunkLength int    `yaml:"min_chunk_length"`
	} `yaml:"retrieval"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
		VectorDim int    `yaml:"vector_dim"`
	} `yaml:"database"`

	Data struct {
		CustomersPath string `yaml:"customers_path"`
		ProductsPath  string `yaml:"products_path"`
		ProductsURL   string `yaml:"products_url"`
	} `yaml:"data"`

	Server struct {
		Port            string `yaml:"port"`
		SecretKey       string `yaml:"secret_key"`
		MaxHistoryTurns int    `yaml:"max_history_turns"`
	} `yaml:"server"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/globuschat/config.yaml"),
			"/etc/globuschat/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}
	if config.LLM.Model == "" {
		config.LLM.Model = "llama3.2"
	}
	if config.LLM.EmbedModel == "" {
		config.LLM.EmbedModel = "nomic-embed-text:latest"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 512
	}
	if config.LLM.Temperature == 0 {
		config.LLM.Temperature = 0.4
	}
	if config.LLM.IntentMaxTokens == 0 {
		config.LLM.IntentMaxTokens = 20
	}
	if config.LLM.RateLimit == 0 {
		config.LLM.RateLimit = 2.0
	}

	if config.Retrieval.Backend == "" {
		config.Retrieval.Backend = "memory"
	}
	if config.Retrieval.TopK == 0 {
		config.Retrieval.TopK = 3
	}
	if config.Retrieval.ChunkSize == 0 {
		config.Retrieval.ChunkSize = 400
	}
	if config.Retrieval.MinChunkLength == 0 {
		config.Retrieval.MinChunkLength = 20
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "product_chunks"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 768
	}

	if config.Data.CustomersPath == "" {
		config.Data.CustomersPath = "data/customers.xlsx"
	}
	if config.Data.ProductsPath == "" {
		config.Data.ProductsPath = "data/product_information.txt"
	}

	if config.Server.Port == "" {
		config.Server.Port = "5050"
	}
	if config.Server.SecretKey == "" {
		config.Server.SecretKey = "globus-offline-dev-key"
	}
	if config.Server.MaxHistoryTurns == 0 {
		config.Server.MaxHistoryTurns = 8
	}
}

func mergeWithEnv(config *Config) {
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		config.Server.SecretKey = secret
	}
	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}
}
