package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"line-knowledge-assistant/config"
	"line-knowledge-assistant/internal/grounding/repository"
	qdrantRepo "line-knowledge-assistant/internal/grounding/repository/qdrant"
	"line-knowledge-assistant/pkg/log"
	pkgQdrant "line-knowledge-assistant/pkg/qdrant"
	"line-knowledge-assistant/pkg/voyage"
)

// document is one line of the input file.
type document struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/index-documents/main.go <documents.jsonl> [path/to/config.yaml]")
		fmt.Println("Each line: {\"title\": \"...\", \"content\": \"...\", \"category\": \"product|helpdesk\"}")
		os.Exit(1)
	}
	if len(os.Args) > 2 {
		os.Setenv("CONFIG_PATH", os.Args[2])
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		Encoding:     "console",
		ColorEnabled: true,
	})
	ctx := context.Background()

	if cfg.Qdrant.URL == "" || cfg.Voyage.APIKey == "" {
		logger.Fatal(ctx, "qdrant.url and voyage.api_key are required to index documents")
	}

	docs, err := readDocuments(os.Args[1])
	if err != nil {
		logger.Fatalf(ctx, "Failed to read documents: %v", err)
	}
	logger.Infof(ctx, "Read %d documents from %s", len(docs), os.Args[1])

	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Voyage API: %v", err)
	}
	if cfg.Voyage.Model != "" {
		embedder = embedder.WithModel(cfg.Voyage.Model)
	}
	client := pkgQdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
	indexer := qdrantRepo.NewIndexer(client, embedder, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize)

	if err := indexer.EnsureCollection(ctx); err != nil {
		logger.Fatalf(ctx, "Failed to ensure collection %s: %v", cfg.Qdrant.CollectionName, err)
	}

	n, err := indexer.Index(ctx, docs)
	if err != nil {
		logger.Errorf(ctx, "Indexing stopped after %d/%d documents: %v", n, len(docs), err)
		os.Exit(1)
	}

	logger.Infof(ctx, "Indexing complete! %d/%d documents stored in %s.", n, len(docs), cfg.Qdrant.CollectionName)
}

// readDocuments parses a JSONL file, skipping blank lines and documents without content.
func readDocuments(path string) ([]repository.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var docs []repository.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var d document
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if strings.TrimSpace(d.Content) == "" {
			continue
		}
		docs = append(docs, repository.Document{Title: d.Title, Content: d.Content, Category: d.Category})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
