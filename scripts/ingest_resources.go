package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"resumefit/analyzer/internal/config"
	"resumefit/analyzer/internal/services"
)

// Ingests learning-resource material (PDF or plain text) into the Qdrant
// collection used for analysis prompt context. Run once per resource set:
//
//	go run ./scripts
const resourceDir = "./reference_resources"

func main() {
	log.Println("🚀 Starting resource ingestion...")

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	entries, err := os.ReadDir(resourceDir)
	if err != nil {
		log.Fatalf("❌ Failed to read resource directory %s: %v", resourceDir, err)
	}

	ctx := context.Background()
	successCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(resourceDir, entry.Name())

		var text string
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf":
			text, err = pdfParser.ExtractText(path)
			if err != nil {
				log.Printf("⚠️  Skipping %s: %v\n", entry.Name(), err)
				continue
			}
		case ".txt", ".md":
			raw, err := os.ReadFile(path)
			if err != nil {
				log.Printf("⚠️  Skipping %s: %v\n", entry.Name(), err)
				continue
			}
			text = services.CleanText(string(raw))
		default:
			continue
		}

		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("📄 %s: %d chunks\n", entry.Name(), len(chunks))

		for _, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbeddingWithRetry(ctx, chunk, 3)
			if err != nil {
				log.Printf("⚠️  Failed to embed chunk from %s: %v\n", entry.Name(), err)
				continue
			}

			if err := qdrantService.UpsertResource(ctx, entry.Name(), chunk, embedding); err != nil {
				log.Printf("⚠️  Failed to upsert chunk from %s: %v\n", entry.Name(), err)
				continue
			}

			successCount++
		}
	}

	log.Printf("✅ Ingestion finished: %d chunks stored\n", successCount)
}
