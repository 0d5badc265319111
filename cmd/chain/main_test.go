package main

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguimbarda/min-chain/chain/script"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEvalCSVFromStdin(t *testing.T) {
	out, _, err := run(t, "a,1\nb,2\nc,39\n", "eval", "--format", "csv", "select_pos 1 | to_int | sum")
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestEvalLinesFile(t *testing.T) {
	path := writeFile(t, "words.txt", "pear\napple\nfig\n")

	out, _, err := run(t, "", "eval", "--no-color", "-i", path, "sort", "|", "take", "2")
	require.NoError(t, err)
	assert.Equal(t, "Pipeline : ['apple', 'fig']\n", out)

	out, _, err = run(t, "", "eval", "-i", path, "--raw", "reverse")
	require.NoError(t, err)
	assert.Equal(t, "fig\napple\npear\n", out)
}

func TestEvalNoScript(t *testing.T) {
	out, _, err := run(t, "[1, 2.5, null]", "eval", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "Pipeline : [1, 2.5, None]\n", out)
}

func TestEvalFormatFromExtension(t *testing.T) {
	path := writeFile(t, "hosts.yaml", "- name: web\n  port: 80\n- name: db\n  port: 5432\n")
	out, _, err := run(t, "", "eval", "-i", path, "-o", "json", "get port")
	require.NoError(t, err)
	assert.Equal(t, "80\n5432\n", out)
}

func TestEvalCSVHeader(t *testing.T) {
	out, _, err := run(t, "name;age\nann;31\nbo;27\n", "eval", "-f", "csv", "--comma", ";", "--header", "get age | to_int | sort | first")
	require.NoError(t, err)
	assert.Equal(t, "27\n", out)
}

func TestEvalCommand(t *testing.T) {
	out, _, err := run(t, "", "eval", "--cmd", "printf '3\\n1\\n2\\n'", "to_int | sort")
	require.NoError(t, err)
	assert.Equal(t, "Pipeline : [1, 2, 3]\n", out)
}

func TestEvalURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"n": 1}, {"n": 2}]`))
	}))
	defer server.Close()

	out, _, err := run(t, "", "eval", "-i", server.URL+"/data.json", "get n | sum")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestEvalSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE items (name TEXT, qty INTEGER);
		INSERT INTO items VALUES ('nut', 10), ('bolt', 4), ('gear', NULL);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, _, err := run(t, "", "eval", "--db", path, "--query", "SELECT name, qty FROM items ORDER BY name",
		"select_pos 1 | reject_missing | sum")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)

	out, _, err = run(t, "", "eval", "--db", path, "-q", "SELECT name, qty FROM items WHERE qty > 5", "--header", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"nut\",\"qty\":10}\n", out)

	_, _, err = run(t, "", "eval", "--db", path, "select_pos 0")
	assert.ErrorContains(t, err, "--db and --query")
}

func TestEvalErrors(t *testing.T) {
	_, _, err := run(t, "1\n", "eval", "take")
	assert.ErrorIs(t, err, script.ErrSyntax)

	_, _, err = run(t, "1\nx\n", "eval", "to_int")
	assert.ErrorContains(t, err, "to_int: element 1")

	_, _, err = run(t, "", "eval", "--format", "xml")
	assert.ErrorContains(t, err, "unknown input format")

	_, _, err = run(t, "a", "eval", "--format", "csv", "--comma", ";;")
	assert.ErrorContains(t, err, "--comma")

	_, _, err = run(t, "", "eval", "-i", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEvalStats(t *testing.T) {
	_, errOut, err := run(t, "1\n2\n3\n", "eval", "--stats", "to_int | take 2")
	require.NoError(t, err)
	assert.Contains(t, errOut, "stages=2 errors=0 rows_in=6 rows_out=5")
}

func TestEvalDebugLogging(t *testing.T) {
	_, errOut, err := run(t, "1\n", "eval", "--log-level", "debug", "--no-color", "to_int")
	require.NoError(t, err)
	assert.Contains(t, errOut, "pipeline stage")
	assert.Contains(t, errOut, "op=to_int")

	_, _, err = run(t, "1\n", "eval", "--log-level", "loud")
	assert.ErrorContains(t, err, "log level")
}

func TestConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "chain.yaml", "format: csv\noutput: lines\n")
	out, _, err := run(t, "a,b\nc,d\n", "eval", "--config", cfgPath, "select_pos 1")
	require.NoError(t, err)
	assert.Equal(t, "b\nd\n", out)

	// flags win over the file
	out, _, err = run(t, "a,b\n", "eval", "--config", cfgPath, "-o", "repr", "select_pos 0")
	require.NoError(t, err)
	assert.Equal(t, "Pipeline : ['a']\n", out)

	_, _, err = run(t, "", "eval", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("CHAIN_OUTPUT", "yaml")
	out, _, err := run(t, "x\n", "eval", "append 1")
	require.NoError(t, err)
	assert.Equal(t, "- x\n- 1\n", out)
}

func TestEnvFile(t *testing.T) {
	envPath := writeFile(t, "test.env", "CHAIN_COMMA=|\n")
	t.Cleanup(func() { os.Unsetenv("CHAIN_COMMA") })
	out, _, err := run(t, "a|b\n", "eval", "--env-file", envPath, "-f", "csv", "flat | count")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestOps(t *testing.T) {
	out, _, err := run(t, "", "ops", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "select_pos i")
	assert.Contains(t, out, "to_dict field...")
	ops := strings.Index(out, "operations")
	terminals := strings.Index(out, "terminals")
	require.True(t, ops >= 0 && terminals > ops, out)
	assert.Greater(t, strings.Index(out, "join [sep]"), terminals)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "chain v"+version+"\n", out)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, os.ErrNotExist, true)
	assert.Equal(t, "error: file does not exist\n", buf.String())
}
