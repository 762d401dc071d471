package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTurnJSON = `{
  "yearly_logs": [{"age": 5, "text": "Started school.", "event": "First day of school"}],
  "stat_changes": {"Happiness": 5},
  "traits": {"add": ["Curious"], "remove": []},
  "name": "Theo",
  "dead": false
}`

func requireSampleTurn(t *testing.T, data *TurnData) {
	t.Helper()
	require.Len(t, data.YearlyLogs, 1)
	require.Equal(t, "Started school.", data.YearlyLogs[0].Text)
	require.Equal(t, "First day of school", data.YearlyLogs[0].Event)
	require.Equal(t, float64(5), data.StatChanges["Happiness"])
	require.Equal(t, []string{"Curious"}, data.Traits.Add)
	require.Equal(t, "Theo", data.Name)
	require.False(t, data.Dead)
}

func TestExtractBareJSON(t *testing.T) {
	data, err := Extract(sampleTurnJSON)
	require.NoError(t, err)
	requireSampleTurn(t, data)
}

func TestExtractFencedBlock(t *testing.T) {
	raw := "Here is the year:\n```json\n" + sampleTurnJSON + "\n```\nHope you enjoy!"
	data, err := Extract(raw)
	require.NoError(t, err)
	requireSampleTurn(t, data)
}

func TestExtractFencedBlockWithoutLanguage(t *testing.T) {
	raw := "```\n" + sampleTurnJSON + "\n```"
	data, err := Extract(raw)
	require.NoError(t, err)
	requireSampleTurn(t, data)
}

func TestExtractProseWrapped(t *testing.T) {
	raw := "Sure! The simulation continues as follows: " + sampleTurnJSON + " Let me know if you want more."
	data, err := Extract(raw)
	require.NoError(t, err)
	requireSampleTurn(t, data)
}

func TestExtractAllStagesProduceSameResult(t *testing.T) {
	bare, err := Extract(sampleTurnJSON)
	require.NoError(t, err)
	fenced, err := Extract("```json\n" + sampleTurnJSON + "\n```")
	require.NoError(t, err)
	wrapped, err := Extract("preamble " + sampleTurnJSON + " postamble")
	require.NoError(t, err)

	require.Equal(t, bare, fenced)
	require.Equal(t, bare, wrapped)
}

func TestExtractFailure(t *testing.T) {
	for _, raw := range []string{
		"",
		"   \n\t  ",
		"I'm sorry, I can't continue this story.",
		"{ broken json",
		"null",
		"[1, 2, 3]",
	} {
		_, err := Extract(raw)
		require.ErrorIs(t, err, ErrExtract, "input: %q", raw)
	}
}

func TestExtractLooseTypes(t *testing.T) {
	raw := `{"yearly_logs": [{"age": "12", "text": "Turned twelve."}], "stat_changes": {"Health": "-5%"}}`
	data, err := Extract(raw)
	require.NoError(t, err)
	require.Equal(t, "12", data.YearlyLogs[0].Age)
	require.Equal(t, "-5%", data.StatChanges["Health"])
}
