// AILife is a turn-based life simulator driven by an LLM behind the
// OpenRouter API. Each turn the engine composes a schema-constrained prompt,
// extracts structured JSON from the model's reply, and merges it into the
// persistent life.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ailife/internal/llm"
	"ailife/internal/logging"
	"ailife/internal/storage"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "review":
			runReview()
			return
		case "rate":
			runRate()
			return
		case "test":
			runKeyTest()
			return
		case "export":
			runExport()
			return
		case "import":
			runImport()
			return
		}
	}

	app, err := createApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	p := tea.NewProgram(app.uiModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReview() {
	logger, err := logging.NewCompletionLogger()
	if err != nil {
		fmt.Printf("Failed to open completion database: %v\n", err)
		return
	}
	defer logger.Close()

	completions, err := logger.GetRecentCompletions(10)
	if err != nil {
		fmt.Printf("Failed to get completions: %v\n", err)
		return
	}
	if len(completions) == 0 {
		fmt.Println("No completions found. Play the game first to generate data!")
		return
	}

	fmt.Printf("Recent completions (%d):\n\n", len(completions))
	for _, comp := range completions {
		var metadata logging.CompletionMetadata
		if err := json.Unmarshal([]byte(comp.Metadata), &metadata); err == nil {
			fmt.Printf("[%d] %s | %s | %v | %s\n",
				comp.ID, comp.Timestamp.Format("15:04:05"), metadata.Model,
				metadata.ResponseTime, comp.UserInput)
		} else {
			fmt.Printf("[%d] %s | %s\n", comp.ID, comp.Timestamp.Format("15:04:05"), comp.UserInput)
		}

		fmt.Printf("Response: %s\n", comp.Response)
		if comp.Rating != nil {
			fmt.Printf("Rating: %d/5", *comp.Rating)
			if comp.Notes != nil {
				fmt.Printf(" - %s", *comp.Notes)
			}
		} else {
			fmt.Printf("Rating: not rated")
		}
		fmt.Println("\n" + strings.Repeat("-", 50))
	}
	fmt.Println("\nTo rate a completion: ailife rate <id> <rating> [notes]")
}

func runRate() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: ailife rate <id> <rating> [notes]")
		return
	}
	id, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid ID: %v\n", err)
		return
	}
	rating, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Printf("Invalid rating: %v\n", err)
		return
	}
	var notes string
	if len(os.Args) > 4 {
		notes = strings.Join(os.Args[4:], " ")
	}

	logger, err := logging.NewCompletionLogger()
	if err != nil {
		fmt.Printf("Failed to open completion database: %v\n", err)
		return
	}
	defer logger.Close()

	if err := logger.RateCompletion(id, rating, notes); err != nil {
		fmt.Printf("Failed to rate completion: %v\n", err)
		return
	}
	fmt.Printf("Rated completion %d as %d/5\n", id, rating)
}

// runKeyTest verifies the configured API key and streams a short reply so
// the user can see the model is reachable before starting a simulation.
func runKeyTest() {
	app, err := createApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.cleanup()

	ctx := context.Background()
	if err := app.llm.VerifyKey(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Success! API Key is valid.")

	prompt := "Say hello!"
	if len(os.Args) > 2 {
		prompt = strings.Join(os.Args[2:], " ")
	}

	stream := app.llm.CompleteStream(ctx, llm.ChatRequest{
		Model:       app.store.Settings().Model,
		System:      "You are a helpful assistant.",
		User:        prompt,
		Temperature: 0.7,
	})
	for chunk := range llm.ReadStreamChunks(stream, app.debug) {
		if chunk.Error != nil {
			fmt.Fprintf(os.Stderr, "\nStream error: %v\n", chunk.Error)
			os.Exit(1)
		}
		fmt.Print(chunk.Text)
	}
	fmt.Println()
}

func runExport() {
	store, err := storage.Open(snapshotPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := store.Export()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	out := "ailife_backup.json"
	if len(os.Args) > 2 {
		out = os.Args[2]
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported to %s\n", out)
}

func runImport() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: ailife import <backup.json>")
		return
	}

	store, err := storage.Open(snapshotPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}
	if err := store.Import(data); err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Data imported!")
}
