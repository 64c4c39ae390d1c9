package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acceptedJSON = `{"name":"Alice","age":25,"email":"alice@example.com","is_employed":true,"address":{"city":"New York","street":"Main Street","house_number":123}}`

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t, "")
	assert.Equal(t, exitUsageErr, code)
	assert.Contains(t, stderr, "regcheck check")

	code, _, _ = runCLI(t, "", "frobnicate")
	assert.Equal(t, exitUsageErr, code)
}

func TestCheck_AcceptedFromStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, demoPayloads[0].payload, "check")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, acceptedJSON+"\n", stdout)
}

func TestCheck_RuleViolations(t *testing.T) {
	code, stdout, _ := runCLI(t, demoPayloads[1].payload, "check")
	assert.Equal(t, exitRules, code)
	assert.True(t, strings.HasPrefix(stdout, "5 validation errors for User\n"), stdout)

	code, stdout, _ = runCLI(t, demoPayloads[1].payload, "check", "-o", "json", "-lang", "ru")
	assert.Equal(t, exitRules, code)
	var rep struct {
		Kind       string `json:"kind"`
		Violations []struct {
			FieldPath string `json:"field_path"`
			Message   string `json:"message"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, "rules", rep.Kind)
	require.Len(t, rep.Violations, 5)
	assert.Equal(t, "Имя должно содержать только буквы", rep.Violations[0].Message)
}

func TestCheck_MalformedAndStructure(t *testing.T) {
	code, stdout, _ := runCLI(t, `{"name":`, "check")
	assert.Equal(t, exitMalformed, code)
	assert.True(t, strings.HasPrefix(stdout, "invalid payload: "), stdout)

	code, stdout, _ = runCLI(t, `{"name":"Alice"}`, "check", "-o", "yaml")
	assert.Equal(t, exitMalformed, code)
	assert.Contains(t, stdout, "kind: structure")
}

func TestCheck_StripUnknown(t *testing.T) {
	in := strings.Replace(acceptedJSON, `"age":25,`, `"age":25,"nickname":"Al",`, 1)

	code, _, _ := runCLI(t, in, "check")
	assert.Equal(t, exitMalformed, code)

	code, stdout, _ := runCLI(t, in, "check", "-strip-unknown")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, acceptedJSON+"\n", stdout)
}

func TestCheck_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alice.yaml")
	y := "name: Alice\nage: 25\nemail: alice@example.com\nis_employed: true\naddress:\n  city: New York\n  street: Main Street\n  house_number: 123\n"
	require.NoError(t, os.WriteFile(path, []byte(y), 0o644))

	code, stdout, _ := runCLI(t, "", "check", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, acceptedJSON+"\n", stdout)

	code, stdout, _ = runCLI(t, y, "check", "-format", "yaml", "-o", "yaml")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "name: Alice\n"), stdout)
}

func TestCheck_BadArguments(t *testing.T) {
	code, _, _ := runCLI(t, "", "check", "-format", "toml")
	assert.Equal(t, exitUsageErr, code)

	code, _, _ = runCLI(t, "", "check", "-o", "xml")
	assert.Equal(t, exitUsageErr, code)

	code, _, stderr := runCLI(t, "", "check", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, exitUsageErr, code)
	assert.Contains(t, stderr, "missing.json")
}

func TestDemo(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "demo")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "== valid registration ==\n"+acceptedJSON+"\n")
	assert.Contains(t, stdout, "== invalid registration ==\n5 validation errors for User\n")
	assert.Contains(t, stdout, "User cannot be employed if under 18 years old")
}

func TestSchema(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "schema")
	assert.Equal(t, exitOK, code)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &m))
	assert.Equal(t, "User", m["title"])

	code, stdout, _ = runCLI(t, "", "schema", "-o", "yaml")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "title: User")

	code, _, _ = runCLI(t, "", "schema", "-o", "xml")
	assert.Equal(t, exitUsageErr, code)
}
