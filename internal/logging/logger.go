package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CompletionLog is one recorded model exchange, including the life state
// snapshot at the time of the call.
type CompletionLog struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	LifeState    string    `json:"life_state"`
	UserInput    string    `json:"user_input"`
	SystemPrompt string    `json:"system_prompt"`
	Response     string    `json:"response"`
	Metadata     string    `json:"metadata"`
	Rating       *int      `json:"rating,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

type CompletionMetadata struct {
	Model        string        `json:"model"`
	Temperature  float64       `json:"temperature"`
	ResponseTime time.Duration `json:"response_time_ms"`
	Error        *string       `json:"error,omitempty"`
}

// CompletionLogger keeps every prompt/response pair in a local sqlite file
// so turns can be reviewed and rated after the fact.
type CompletionLogger struct {
	db *sql.DB
}

func NewCompletionLogger() (*CompletionLogger, error) {
	db, err := sql.Open("sqlite3", "./completions.db")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := &CompletionLogger{db: db}
	if err := logger.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return logger, nil
}

func (cl *CompletionLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		life_state TEXT NOT NULL,
		user_input TEXT NOT NULL,
		system_prompt TEXT NOT NULL,
		response TEXT NOT NULL,
		metadata TEXT NOT NULL,
		rating INTEGER,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_completions_timestamp ON completions(timestamp);
	`

	_, err := cl.db.Exec(schema)
	return err
}

func (cl *CompletionLogger) LogCompletion(
	lifeState interface{},
	userInput string,
	systemPrompt string,
	response string,
	metadata CompletionMetadata,
) error {
	lifeJSON, err := json.Marshal(lifeState)
	if err != nil {
		return fmt.Errorf("failed to marshal life state: %w", err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = cl.db.Exec(`
		INSERT INTO completions (life_state, user_input, system_prompt, response, metadata)
		VALUES (?, ?, ?, ?, ?)
	`, string(lifeJSON), userInput, systemPrompt, response, string(metadataJSON))

	return err
}

// GetRecentCompletions returns the newest entries, most recent first.
func (cl *CompletionLogger) GetRecentCompletions(limit int) ([]CompletionLog, error) {
	rows, err := cl.db.Query(`
		SELECT id, timestamp, life_state, user_input, system_prompt, response, metadata, rating, notes
		FROM completions ORDER BY timestamp DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []CompletionLog
	for rows.Next() {
		var entry CompletionLog
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.LifeState, &entry.UserInput,
			&entry.SystemPrompt, &entry.Response, &entry.Metadata, &entry.Rating, &entry.Notes); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (cl *CompletionLogger) RateCompletion(id, rating int, notes string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	var notesVal interface{}
	if notes != "" {
		notesVal = notes
	}
	_, err := cl.db.Exec(`UPDATE completions SET rating = ?, notes = ? WHERE id = ?`, rating, notesVal, id)
	return err
}

func (cl *CompletionLogger) Close() error {
	return cl.db.Close()
}
