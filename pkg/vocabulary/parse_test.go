package vocabulary

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data, err := os.ReadFile("testdata/vocabulary.jsonld")
	require.NoError(t, err)

	vocab, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, vocab.Classes, 2)
	require.Len(t, vocab.Properties, 2)

	classes := map[string][]string{}
	for _, c := range vocab.Classes {
		classes[c.Label] = c.SubClassOf
	}
	assert.Equal(t, []string{"Event"}, classes["MusicEvent"])
	assert.Equal(t, []string{"Thing"}, classes["Place"])

	properties := map[string][]string{}
	for _, p := range vocab.Properties {
		properties[p.Label] = p.RangeIncludes
	}
	assert.Equal(t, []string{"Date", "DateTime"}, properties["startDate"])
	assert.Equal(t, []string{"Place"}, properties["location"])
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "<html>"},
		{"truncated", `{"@graph": [`},
		{"no graph", `{"@context": {}}`},
		{"graph not array", `{"@graph": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedVocabulary)
		})
	}
}

func TestParse_EmptyGraph(t *testing.T) {
	vocab, err := Parse([]byte(`{"@graph": []}`))
	require.NoError(t, err)
	assert.Empty(t, vocab.Classes)
	assert.Empty(t, vocab.Properties)
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, "plain", literal("plain"))
	assert.Equal(t, "value", literal(map[string]any{"@value": "value"}))
	assert.Equal(t, "english", literal([]any{
		map[string]any{"@language": "fr", "@value": "français"},
		map[string]any{"@language": "en", "@value": "english"},
	}))
	assert.Equal(t, "", literal(42.0))
}
