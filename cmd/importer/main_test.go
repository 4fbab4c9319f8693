package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `Handle,Title,Vendor,Option1 Name,Option1 Value,Variant SKU,Variant Price,Cost per item,Variant Inventory Qty
shirt-1,T-Shirt,Acme,Size,M,SKU-1,19.90,7.50,4
shirt-1,,,Size,L,SKU-2,19.90,7.50,6
,Orphan,,,,SKU-3,,,
hat-1,Hat,Acme,,,SKU-1,12,,1
`

const ordersCSV = `Name,Email,Financial Status,Lineitem name,Lineitem sku,Lineitem quantity,Lineitem price
#1001,ada@example.com,paid,Widget,,2,50
#1001,,,Gadget,G-1,1,25
`

const receiptJSON = `{
  "supplierId": "sup-1",
  "invoiceNumber": "INV-9",
  "invoiceDate": "2024-03-01T00:00:00Z",
  "entries": [
    {"productId": "shirt-1", "unitCost": "2.50", "variantQuantities": [
      {"variantId": "SKU-1", "quantity": 4},
      {"variantId": "SKU-2", "quantity": 0}
    ]}
  ]
}`

// cliEnv is a scratch directory with a config pointing at a file database
type cliEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`[database]
driver = "sqlite"
path = %q

[log]
level = "error"
format = "json"
output = %q

[import]
max_diagnostics = 10
`, filepath.Join(dir, "import.db"), filepath.Join(dir, "importer.log"))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return &cliEnv{t: t, dir: dir, config: path}
}

func (e *cliEnv) file(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e *cliEnv) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"-config", e.config}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage:")

	env := newCLIEnv(t)
	code, _, errOut := env.run("explode")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Unknown command: explode")

	code, out, _ := env.run("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Commands:")
}

func TestRun_Preview(t *testing.T) {
	env := newCLIEnv(t)

	t.Run("catalog", func(t *testing.T) {
		code, out, errOut := env.run("preview", "-type", "products", env.file("products.csv", catalogCSV))
		require.Equal(t, 0, code, errOut)

		var preview struct {
			Entities    []map[string]any `json:"entities"`
			Diagnostics []string         `json:"diagnostics"`
			Summary     map[string]int   `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &preview))
		assert.Len(t, preview.Entities, 2)
		assert.Equal(t, 4, preview.Summary["totalRows"])
		assert.Equal(t, 2, preview.Summary["entitiesFound"])
		assert.Equal(t, 3, preview.Summary["childrenFound"])
		assert.Len(t, preview.Diagnostics, 2)
	})

	t.Run("orders continue the synthetic SKU counter", func(t *testing.T) {
		code, out, errOut := env.run("preview", "-type", "orders", "-seq", "7", env.file("orders.csv", ordersCSV))
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, `"sku": "NOSKU-8"`)
		assert.Contains(t, out, `"entitiesFound": 1`)
	})

	t.Run("unknown type", func(t *testing.T) {
		code, _, errOut := env.run("preview", "-type", "invoices", env.file("x.csv", catalogCSV))
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "unknown entity type")
	})

	t.Run("missing file argument", func(t *testing.T) {
		code, _, errOut := env.run("preview")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "expected one input file")
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, _ := env.run("preview", "-bogus", env.file("x.csv", catalogCSV))
		assert.Equal(t, 2, code)
	})

	t.Run("unreadable file", func(t *testing.T) {
		code, _, errOut := env.run("preview", filepath.Join(env.dir, "missing.csv"))
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "failed to read input")
	})
}

func TestRun_CommitAndHistory(t *testing.T) {
	env := newCLIEnv(t)

	code, out, errOut := env.run("commit", "-type", "products", env.file("products.csv", catalogCSV))
	require.Equal(t, 0, code, errOut)

	var result struct {
		ImportedCount int `json:"importedCount"`
		ErrorCount    int `json:"errorCount"`
		ErrorDetails  []struct {
			Key   string `json:"key"`
			Error string `json:"error"`
		} `json:"errorDetails"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.ImportedCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.ErrorDetails, 1)
	assert.Equal(t, "hat-1", result.ErrorDetails[0].Key)

	code, out, errOut = env.run("history", "-type", "products")
	require.Equal(t, 0, code, errOut)
	var histories []struct {
		ID       string `json:"id"`
		FileName string `json:"file_name"`
		Status   string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &histories))
	require.Len(t, histories, 1)
	assert.Equal(t, "products.csv", histories[0].FileName)
	assert.Equal(t, "completed", histories[0].Status)

	code, out, errOut = env.run("history", "show", histories[0].ID)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"imported_count": 1`)

	code, out, errOut = env.run("history", "errors", histories[0].ID)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Key,Error\nhat-1,Variant SKU already exists\n", out)

	exported := filepath.Join(env.dir, "errors.csv")
	code, _, errOut = env.run("history", "errors", "-o", exported, histories[0].ID)
	require.Equal(t, 0, code, errOut)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hat-1")

	code, _, errOut = env.run("history", "show", "not-a-uuid")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid import ID")
}

func TestRun_Receive(t *testing.T) {
	env := newCLIEnv(t)
	request := env.file("receipt.json", receiptJSON)

	for i := 0; i < 2; i++ {
		code, out, errOut := env.run("receive", request)
		require.Equal(t, 0, code, errOut)

		var resp struct {
			TotalUnits int64  `json:"totalUnits"`
			TotalValue string `json:"totalValue"`
			Succeeded  int    `json:"succeeded"`
			Failed     int    `json:"failed"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, int64(4), resp.TotalUnits)
		assert.Equal(t, "10", resp.TotalValue)
		assert.Equal(t, 1, resp.Succeeded)
		assert.Zero(t, resp.Failed)
	}

	code, _, errOut := env.run("receive", env.file("bad.json", `{"entries": []}`))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Request validation failed")
}

func TestRun_Canonical(t *testing.T) {
	env := newCLIEnv(t)

	code, out, errOut := env.run("canonical", env.file("products.csv", catalogCSV))
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, catalogCSV, out)
}
