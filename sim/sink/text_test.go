package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petstore-sim/petstore-sim/sim"
	"github.com/petstore-sim/petstore-sim/sim/internal/testutil"
)

func handBuiltTransactions() []*sim.Transaction {
	recs := testutil.ReferenceRecords()
	store := &sim.Store{ID: 1, Location: recs[1].Location()}
	customer := &sim.Customer{ID: 7, Name: sim.NewPair("Ada", "Lovelace"), Location: recs[0].Location()}
	return []*sim.Transaction{
		{ID: 0, Time: 0.5, Store: store, Customer: customer, Products: []sim.Product{
			{Name: "Catnip", Category: "cat", Price: 3.5},
			{Name: "Leash", Category: "dog", Price: 12},
		}},
		{ID: 1, Time: 3, Store: store, Customer: customer, Products: []sim.Product{
			{Name: "Bird Seed, 5 lb", Category: "bird", Price: 8},
		}},
	}
}

func TestTextWriter_OneLinePerProduct(t *testing.T) {
	// GIVEN two transactions with three products in total
	var buf bytes.Buffer

	// WHEN written
	require.NoError(t, NewTextWriter(&buf).Write(handBuiltTransactions()))

	// THEN there is one line per product, with the 12-column layout
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0,0.5,1,60614,Chicago,IL,7,Ada Lovelace,02139,Cambridge,MA,Catnip", lines[0])
	assert.Equal(t, "0,0.5,1,60614,Chicago,IL,7,Ada Lovelace,02139,Cambridge,MA,Leash", lines[1])
	assert.Equal(t, `1,3,1,60614,Chicago,IL,7,Ada Lovelace,02139,Cambridge,MA,"Bird Seed, 5 lb"`, lines[2])
}

func TestTextWriter_EmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf).Write(nil))
	assert.Empty(t, buf.String())
}

func TestFormatTime_RoundTrips(t *testing.T) {
	assert.Equal(t, "0.1", FormatTime(0.1))
	assert.Equal(t, "364.99999", FormatTime(364.99999))
	assert.Equal(t, "2", FormatTime(2))
}

func TestWriteTransactionsFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTransactionsFile(dir, handBuiltTransactions())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, TransactionsFile), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(content), "\n"))

	_, err = WriteTransactionsFile(filepath.Join(dir, "missing"), nil)
	assert.Error(t, err)
}
