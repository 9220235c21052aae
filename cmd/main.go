package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/oakhigbe/globuschat/internal/types"
	"github.com/oakhigbe/globuschat/pkg/bank"
	"github.com/oakhigbe/globuschat/pkg/chunker"
	cfgPkg "github.com/oakhigbe/globuschat/pkg/config"
	"github.com/oakhigbe/globuschat/pkg/docs"
	"github.com/oakhigbe/globuschat/pkg/index"
	"github.com/oakhigbe/globuschat/pkg/intent"
	"github.com/oakhigbe/globuschat/pkg/llm"
	"github.com/oakhigbe/globuschat/pkg/respond"
	"github.com/oakhigbe/globuschat/pkg/store"
	"github.com/oakhigbe/globuschat/server"
)

func main() {
	config := parseFlags()

	if errs := config.Validate(); len(errs) > 0 {
		for _, err := range errs {
			color.Red("config: %v", err)
		}
		os.Exit(1)
	}

	if err := run(config); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() *cfgPkg.Config {
	var configPath string
	var ollamaURL, customers, products, productsURL, port, backend, dbURL string

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&ollamaURL, "ollama-url", "", "Ollama server URL")
	flag.StringVar(&customers, "customers", "", "Path to the customer workbook (.xlsx)")
	flag.StringVar(&products, "products", "", "Path to the product documentation text file")
	flag.StringVar(&productsURL, "products-url", "", "Documentation page URL to ingest instead of the file")
	flag.StringVar(&port, "port", "", "HTTP listen port")
	flag.StringVar(&backend, "retriever", "", "Retrieval backend: memory or pgvector")
	flag.StringVar(&dbURL, "db-url", "", "PostgreSQL connection string (pgvector backend)")
	flag.Parse()

	config, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Command line flags override the config file
	if ollamaURL != "" {
		config.LLM.BaseURL = ollamaURL
	}
	if customers != "" {
		config.Data.CustomersPath = customers
	}
	if products != "" {
		config.Data.ProductsPath = products
	}
	if productsURL != "" {
		config.Data.ProductsURL = productsURL
	}
	if port != "" {
		config.Server.Port = port
	}
	if backend != "" {
		config.Retrieval.Backend = backend
	}
	if dbURL != "" {
		config.Database.URL = dbURL
	}

	return config
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("chunks"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(config *cfgPkg.Config) error {
	ctx := context.Background()

	// Customer directory
	directory, err := bank.LoadWorkbook(config.Data.CustomersPath)
	if err != nil {
		return fmt.Errorf("failed to load customer workbook: %v", err)
	}
	color.Green("✓ Loaded %d customers across %d accounts", directory.Customers(), directory.Accounts())

	// Product documentation
	var text string
	if config.Data.ProductsURL != "" {
		color.Blue("Ingesting product documentation from %s", config.Data.ProductsURL)
		text, err = docs.LoadURL(config.Data.ProductsURL)
	} else {
		text, err = docs.LoadFile(config.Data.ProductsPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load product documentation: %v", err)
	}

	ch := chunker.NewWithConfig(chunker.ChunkerConfig{
		MaxChunkSize:   config.Retrieval.ChunkSize,
		MinChunkLength: config.Retrieval.MinChunkLength,
	})
	chunks := ch.Chunk(text)
	color.Green("✓ Split documentation into %d chunks", len(chunks))

	// Shared model handles
	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:   config.LLM.EmbedModel,
		BaseURL: config.LLM.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %v", err)
	}

	engine, err := llm.NewWithConfig(llm.EngineConfig{
		Model:   config.LLM.Model,
		BaseURL: config.LLM.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize completion engine: %v", err)
	}
	completions := llm.Serialize(engine, config.LLM.RateLimit)

	// Retriever
	var retriever types.Retriever
	switch config.Retrieval.Backend {
	case "pgvector":
		vs, err := store.NewWithConfig(store.VectorStoreConfig{
			ConnString: config.Database.URL,
			TableName:  config.Database.TableName,
			VectorDim:  config.Database.VectorDim,
		}, embedder)
		if err != nil {
			return fmt.Errorf("failed to initialize vector store: %v", err)
		}
		defer vs.Close()

		color.Blue("Storing %d chunks in Postgres...", len(chunks))
		if err := vs.Store(ctx, chunks); err != nil {
			return fmt.Errorf("failed to store chunks: %v", err)
		}
		retriever = vs

	default:
		bar := getProgressBar(len(chunks), "Embedding product documentation...")
		ix, err := index.Build(ctx, embedder, chunks, func(done, total int) {
			bar.Set(done)
		})
		if err != nil {
			return fmt.Errorf("failed to build embedding index: %v", err)
		}
		bar.Finish()
		retriever = ix
	}
	color.Green("✓ Knowledge base ready")

	resolver := intent.NewResolver(completions, config.LLM.IntentMaxTokens)
	assembler := respond.NewWithConfig(completions, respond.AssemblerConfig{
		MaxTokens:   config.LLM.MaxTokens,
		Temperature: config.LLM.Temperature,
	})

	srv := server.New(server.ServerConfig{
		SecretKey:       config.Server.SecretKey,
		MaxHistoryTurns: config.Server.MaxHistoryTurns,
		TopK:            config.Retrieval.TopK,
	}, directory, resolver, retriever, assembler)

	color.Cyan("\nGlobus Bank support chat listening on :%s", config.Server.Port)
	return srv.Start(config.Server.Port)
}
