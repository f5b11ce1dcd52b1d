package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/expression"
	"github.com/doubaokun/voltdb/internal/plan"
	"github.com/doubaokun/voltdb/internal/types"
)

const testCatalog = `{
  "name": "shop",
  "tables": [{
    "name": "ITEMS",
    "columns": [{"name": "ID", "type": "INTEGER"}, {"name": "NAME", "type": "VARCHAR", "length": 32}],
    "indexes": [{"name": "ITEMS_BY_NAME", "type": "BTREE", "columns": ["NAME"]}]
  }]
}`

func writeFixtures(t *testing.T, compressed bool) Config {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0o644))
	statsPath := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(statsPath, []byte(`{"ITEMS": {"minTuples": 1, "maxTuples": 100}}`), 0o644))

	db, err := catalog.LoadDefinition(bytes.NewReader([]byte(testCatalog)))
	require.NoError(t, err)
	scan := plan.NewIndexScanNode()
	scan.SetCatalogIndex(db.Table("ITEMS").Index("ITEMS_BY_NAME"))
	scan.SetLookupType(types.IndexLookupTypeGTE)
	scan.AddSearchKeyExpression(expression.NewParameter(0, types.ValueTypeVarchar))
	send := plan.NewSendNode()
	require.NoError(t, plan.AddChild(send, scan))
	f := plan.NewFragment(send)

	var data []byte
	if compressed {
		data, err = plan.EncodeCompressed(f)
	} else {
		data, err = json.Marshal(f)
	}
	require.NoError(t, err)
	fragmentPath := filepath.Join(dir, "fragment.bin")
	require.NoError(t, os.WriteFile(fragmentPath, data, 0o644))

	return Config{
		CatalogPath:  catalogPath,
		StatsPath:    statsPath,
		FragmentPath: fragmentPath,
		Compressed:   compressed,
		HostID:       4,
		LogLevel:     "error",
	}
}

func TestRun(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), writeFixtures(t, compressed), &out))
		// A single range key counts as half a column: 3 + int(100 * 0.9 * 0.1^0.5).
		assert.Equal(t,
			"RETURN RESULTS TO STORED PROCEDURE\n"+
				"  INDEX SCAN of \"ITEMS\" using \"ITEMS_BY_NAME\" (range-scan covering)\n"+
				"estimated output tuples: 31\n"+
				"order is nondeterministic: index scan may provide insufficient ordering\n",
			out.String())
	}
}

func TestRunReportsPlanningErrors(t *testing.T) {
	cfg := writeFixtures(t, false)
	cfg.Compressed = true
	assert.Error(t, run(context.Background(), cfg, &bytes.Buffer{}))

	cfg = writeFixtures(t, false)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.json")
	assert.ErrorContains(t, run(context.Background(), cfg, &bytes.Buffer{}), "open catalog")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("VOLTPLAN_CATALOG", "")
	t.Setenv("VOLTPLAN_HOST_ID", "")
	t.Setenv("VOLTPLAN_COMPRESSED", "")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogPath, cfg.CatalogPath)
	assert.Equal(t, DefaultFragmentPath, cfg.FragmentPath)
	assert.Equal(t, uint32(DefaultHostID), cfg.HostID)
	assert.False(t, cfg.Compressed)

	t.Setenv("VOLTPLAN_HOST_ID", "12")
	t.Setenv("VOLTPLAN_COMPRESSED", "true")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(12), cfg.HostID)
	assert.True(t, cfg.Compressed)

	t.Setenv("VOLTPLAN_HOST_ID", "-1")
	_, err = loadConfig()
	assert.ErrorContains(t, err, "VOLTPLAN_HOST_ID")
}
