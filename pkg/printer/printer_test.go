package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	tests := map[string]string{
		"Parcela nº 1":    "Parcela no 1",
		"João Conceição":  "Joao Conceicao",
		"Crédito à vista": "Credito a vista",
		"plain":           "plain",
		"日本":              "??",
	}
	for in, want := range tests {
		assert.Equal(t, want, Fold(in), in)
	}
}

func TestKeyValuePadsToWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Valor:", "R$ 33,34")

	lines := bytes.Split(doc.Bytes()[2:], []byte{LF})
	require.NotEmpty(t, lines)
	assert.Len(t, lines[0], 32)
	assert.True(t, bytes.HasSuffix(lines[0], []byte("R$ 33,34")))
}

func TestKeyValueTruncatesLongKey(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Cliente: Maria Aparecida dos Santos", "X")

	line := bytes.Split(doc.Bytes()[2:], []byte{LF})[0]
	assert.Len(t, line, 20)
	assert.True(t, bytes.HasSuffix(line, []byte(" X")))
}

func TestNewFromConfig(t *testing.T) {
	p, err := New(Config{Type: TypeNone})
	require.NoError(t, err)
	assert.False(t, p.IsConnected())

	_, err = New(Config{Type: TypeUSB})
	assert.Error(t, err)

	_, err = New(Config{Type: TypeNetwork})
	assert.Error(t, err)

	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)

	p, err = New(Config{Type: TypeBuffer})
	require.NoError(t, err)
	assert.True(t, p.IsConnected())
}

func TestBufferPrinterRecordsJobs(t *testing.T) {
	p := NewBufferPrinter()
	doc := NewDocument(32).Text("one").PartialCut()

	require.NoError(t, p.Print(doc.Bytes()))
	require.NoError(t, p.Print([]byte("two")))

	jobs := p.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, []byte("two"), jobs[1])
	assert.True(t, bytes.HasSuffix(jobs[0], []byte{GS, 'V', 0x01}))
}

func TestDocumentWidthAndCut(t *testing.T) {
	assert.Equal(t, 32, NewDocument(0).Width())
	assert.Equal(t, 48, NewDocument(48).Width())

	out := NewDocument(48).Separator('=').Cut().Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{ESC, '@'}))
	assert.True(t, bytes.HasSuffix(out, []byte{GS, 'V', 0x00}))
	assert.Contains(t, string(out), strings.Repeat("=", 48)+"\n")
}
