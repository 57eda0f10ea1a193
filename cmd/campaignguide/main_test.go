package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/campaignguide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campaignYAML = `
campaign:
  id: night
  name: Night of the Zealot
  scenarios: [a, b]
  setup: [prologue]
  steps:
    - id: prologue
      text: The hunt begins.
scenarios:
  - id: a
    scenario_name: The Gathering
    full_name: The Gathering
    setup: [$play_scenario, $proceed]
    steps:
      - id: $play_scenario
        type: input
        input:
          type: play_scenario
          no_resolutions: true
  - id: b
    scenario_name: The Midnight Masks
    full_name: The Midnight Masks
    setup: [$play_scenario]
    steps:
      - id: $play_scenario
        type: input
        input:
          type: play_scenario
          no_resolutions: true
`

type fixture struct {
	dir  string
	data string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "campaign.yaml"), []byte(campaignYAML), 0o644))
	return fixture{dir: dir, data: filepath.Join(t.TempDir(), "campaigns")}
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--dir", f.dir, "--store", "file", "--data-dir", f.data, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := newFixture(t).run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "campaignguide version "+strings.TrimSpace(campaignguide.Version)+"\n", out)
}

func TestValidate(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Campaign is valid!")

	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, "campaign.yaml"), []byte("campaign:\n  id: x\n  scenarios: [ghost]\n"), 0o644))
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", broken, "--store", "memory"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "ghost"`)
}

func TestDecisionCommands(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "walk", "run")
	require.NoError(t, err)
	assert.Equal(t, "$campaign_setup\tplayable\na\tlocked\nb\tlocked\n", out)

	out, err = f.run(t, "record", "run", `{"type":"start_scenario","scenario":"$campaign_setup"}`)
	require.NoError(t, err)
	assert.Equal(t, "$campaign_setup\tcompleted\na\tplayable\nb\tlocked\n", out)

	out, err = f.run(t, "next", "run")
	require.NoError(t, err)
	assert.Equal(t, "a\tThe Gathering\n", out)

	out, err = f.run(t, "campaigns", "ls")
	require.NoError(t, err)
	assert.Equal(t, "run\n", out)

	out, err = f.run(t, "graph", "--campaign", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "class a playable;")

	out, err = f.run(t, "walk", "run", "--json")
	require.NoError(t, err)
	var trace struct {
		Scenarios []struct {
			Status string `json:"status"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &trace))
	require.Len(t, trace.Scenarios, 3)
	assert.Equal(t, "completed", trace.Scenarios[0].Status)

	out, err = f.run(t, "undo", "run", "$campaign_setup")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "$campaign_setup\tplayable\n"), out)

	out, err = f.run(t, "campaigns", "rm", "run")
	require.NoError(t, err)
	assert.Equal(t, "Removed campaign 'run'\n", out)

	out, err = f.run(t, "campaigns", "ls")
	require.NoError(t, err)
	assert.Equal(t, "No campaigns found.\n", out)
}

func TestRecord_RejectsBadDecisions(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "record", "run", `{"type":"start_scenario","scenerio":"a"}`)
	assert.ErrorContains(t, err, "decision 1")

	_, err = f.run(t, "record", "run", `{"type":"choice","scenario":"a"}`)
	assert.ErrorIs(t, err, campaignguide.ErrInvalidDecision)

	out, err := f.run(t, "campaigns", "ls")
	require.NoError(t, err)
	assert.Equal(t, "No campaigns found.\n", out)
}

func TestConfigure_RejectsUnknownStore(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"walk", "run", "--store", "tape"})
	assert.ErrorContains(t, cmd.Execute(), `unknown store "tape"`)
}

func TestRecord_EncryptedStore(t *testing.T) {
	f := newFixture(t)
	t.Setenv("CAMPAIGNGUIDE_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32)))

	_, err := f.run(t, "record", "run", `{"type":"start_scenario","scenario":"$campaign_setup"}`)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(f.data, "run.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"sealed"`)
	assert.NotContains(t, string(raw), "start_scenario")

	out, err := f.run(t, "next", "run")
	require.NoError(t, err)
	assert.Equal(t, "a\tThe Gathering\n", out)
}

func TestUndo_OnlyTheLatestScenario(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "record", "run", `{"type":"start_scenario","scenario":"$campaign_setup"}`, `{"type":"start_scenario","scenario":"a"}`)
	require.NoError(t, err)

	_, err = f.run(t, "undo", "run", "$campaign_setup")
	assert.ErrorContains(t, err, `only "a" can be undone`)

	out, err := f.run(t, "undo", "run", "a")
	require.NoError(t, err)
	assert.Equal(t, "$campaign_setup\tcompleted\na\tplayable\nb\tlocked\n", out)
}
