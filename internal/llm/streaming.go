package llm

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
)

// StreamChunk is one delta from a streaming completion. Done marks the end
// of the stream; concatenating Text across chunks yields the full response.
type StreamChunk struct {
	Text  string
	Error error
	Done  bool
}

// ReadStreamChunks drains a completion stream into a channel, closing it
// when the stream ends or fails.
func ReadStreamChunks(stream *ssestream.Stream[openai.ChatCompletionChunk], debugLogger interface{ Printf(string, ...interface{}) }) <-chan StreamChunk {
	chunks := make(chan StreamChunk)

	go func() {
		defer close(chunks)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			if debugLogger != nil {
				debugLogger.Printf("stream chunk: %q", delta)
			}
			chunks <- StreamChunk{Text: delta}
		}

		if err := stream.Err(); err != nil {
			if debugLogger != nil {
				debugLogger.Printf("stream error: %v", err)
			}
			chunks <- StreamChunk{Error: err, Done: true}
			return
		}
		chunks <- StreamChunk{Done: true}
	}()

	return chunks
}
