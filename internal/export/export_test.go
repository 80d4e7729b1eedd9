package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocabparse/internal/schema"
)

func sampleVocab() schema.Vocabulary {
	return schema.Vocabulary{
		{Word: "abate", PartOfSpeech: schema.PartOfSpeechVerb, Definition: "to lessen, reduce"},
		{Word: "affable", PartOfSpeech: schema.PartOfSpeechAdjective, Definition: "friendly and easy to talk to", ExampleSentence: `He was "affable" and warm.`},
		{Word: "naive", Definition: "lacking experience: naïve"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleVocab()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "word,part_of_speech,definition,example_sentence", lines[0])
	assert.Equal(t, `abate,verb,"to lessen, reduce",`, lines[1])
	assert.Equal(t, `affable,adjective,friendly and easy to talk to,"He was ""affable"" and warm."`, lines[2])
	assert.Equal(t, "naive,,lacking experience: naïve,", lines[3])
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleVocab(), FormatCSV))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleVocab(), got)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleVocab()[2:]))

	out := buf.String()
	assert.Contains(t, out, "- word: naive\n")
	assert.Contains(t, out, "partOfSpeech: null\n")
	assert.Contains(t, out, "exampleSentence: null\n")
	assert.Contains(t, out, "naïve")
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleVocab(), FormatYAML))

	got, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleVocab(), got)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	assert.Error(t, Write(&bytes.Buffer{}, nil, Format("xml")))
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("word,part_of_speech,definition,example_sentence\nabate,verb\n"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	for _, format := range Formats {
		path := filepath.Join(dir, "export", "sats_vocab."+string(format))
		require.NoError(t, WriteFile(path, sampleVocab(), format))

		f, err := os.Open(path)
		require.NoError(t, err)

		var got schema.Vocabulary
		if format == FormatCSV {
			got, err = ReadCSV(f)
		} else {
			got, err = ReadYAML(f)
		}
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, sampleVocab(), got, format)
	}
}
