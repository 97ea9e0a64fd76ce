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

	"bdcompass/internal/domain"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDigestFromStdin(t *testing.T) {
	out, err := run(t, `{"intros_generated": 2}`, "digest")
	require.NoError(t, err)

	var d domain.Digest
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Len(t, d.Insights, 3)
	assert.Len(t, d.RecommendedActions, 3)
	assert.Contains(t, d.Summary, "Se generaron 2 introducciones.")
}

func TestRoutesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"contacts": [{"id": "u1", "name": "Ana", "connections": ["t1"]}],
		"target_contacts": [{"id": "t1", "name": "Laura", "company_id": "c1", "role_title": "CEO", "seniority": "c-level"}],
		"companies": [{"id": "c1", "name": "ACME"}]
	}`), 0o600))

	out, err := run(t, "", "routes", "--in", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "direct"`)
}

func TestValidationErrorFailsCommand(t *testing.T) {
	_, err := run(t, `{"days_waiting": -1}`, "followups")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "days_waiting", verr.Field)
}

func TestMalformedInput(t *testing.T) {
	_, err := run(t, `{`, "score")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "", "outbound", "--in", filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
