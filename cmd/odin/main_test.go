package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/odin"
	main "github.com/fwojciec/odin/cmd/odin"
	"github.com/fwojciec/odin/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// devicesPage is a trimmed copy of the table of hardware with three models
// across two brands.
const devicesPage = `<html><body>
<div class='table dataaggregation'>
<table>
<tbody>
<tr><th>Brand</th><th>Model</th></tr>
<tr><th><input /></th></tr>
<tr>
<td><a href='/toh/hwdata/abicom/freedom_cpe'>View</a></td>
<td>Abicom International</td>
<td>Freedom CPE</td>
<td>Rev 05</td>
<td><a href='/releases/10.03'>10.03</a></td>
<td><a href='/toh/abicom/freedom_cpe'>freedom_cpe</a></td>
<td>ar71xx</td>
</tr>
<tr>
<td><a href='/toh/hwdata/actiontec/gt701d'>View</a></td>
<td>Actiontec</td>
<td>GT701</td>
<td>C, D</td>
<td><a href='/releases/10.03.1'>10.03.1</a></td>
<td><a href='/toh/actiontec/gt701d'>gt701d</a></td>
<td>brcm63xx</td>
</tr>
<tr>
<td><a href='/toh/hwdata/actiontec/mi424wr'>View</a></td>
<td>Actiontec</td>
<td>MI424WR</td>
<td>Rev. A, C, D</td>
<td><a href='/releases/19.07.2'>19.07.2</a></td>
<td><a href='/toh/actiontec/mi424wr'>mi424wr</a></td>
<td>ixp4xx</td>
</tr>
</tbody>
</table>
</div>
</body></html>`

// newTestMain returns a Main whose database and page cache live in a
// temporary directory.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	dir := t.TempDir()
	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "odin.db")
	m.PagePath = filepath.Join(dir, "devices.html")
	return m
}

// writePage writes the devices page to a temporary file and returns its path.
func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devices.html")
	require.NoError(t, os.WriteFile(path, []byte(devicesPage), 0o644))
	return path
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"devices_url": odin.DevicesURL},
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"brands", "models", "fetch", "snapshots", "forget", "export"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMain(t)

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: odin")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
			assert.NoFileExists(t, m.DBPath)
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: odin")
}

func TestRun_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)

	err := m.Run(testContext(), []string{"--format", "yaml", "brands"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}

func TestRun_Brands(t *testing.T) {
	t.Parallel()

	t.Run("lists brands from a local file", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--file", writePage(t), "--offline", "brands"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "Found 2 brand(s)!\n\n"+
			"1. Abicom International - 1 model(s)\n"+
			"2. Actiontec - 2 model(s)\n\n"+
			"Found 2 brand(s)!\n", stdout.String())
	})

	t.Run("stores a snapshot once per page", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		page := writePage(t)

		for range 2 {
			run := main.NewMain()
			run.DBPath = m.DBPath
			run.PagePath = m.PagePath
			err := run.Run(testContext(), []string{"--file", page, "--offline", "brands"}, &bytes.Buffer{}, &bytes.Buffer{})
			require.NoError(t, err)
		}

		stdout := &bytes.Buffer{}
		err := m.Run(testContext(), []string{"snapshots"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "2 brand(s)  3 model(s)")
		assert.Equal(t, 1, bytes.Count(stdout.Bytes(), []byte("\n")))
	})

	t.Run("skips the database with --no-cache", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		err := m.Run(testContext(), []string{"--file", writePage(t), "--offline", "--no-cache", "brands"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.NoFileExists(t, m.DBPath)
	})

	t.Run("fails when no source has the page", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stderr := &bytes.Buffer{}
		missing := filepath.Join(t.TempDir(), "missing.html")

		err := m.Run(testContext(), []string{"--file", missing, "--offline", "brands"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("renders JSON", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--file", writePage(t), "--offline", "--format", "json", "brands"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got []struct {
			Name   string `json:"name"`
			Models int    `json:"models"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Actiontec", got[1].Name)
		assert.Equal(t, 2, got[1].Models)
	})
}

func TestRun_Models(t *testing.T) {
	t.Parallel()

	t.Run("looks up a brand case-insensitively", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--file", writePage(t), "--offline", "models", "actiontec"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Brand: Actiontec")
		assert.Contains(t, output, "Found 2 model(s)!")
		assert.Contains(t, output, "https://openwrt.org/releases/19.07.2")
		assert.NotContains(t, output, "Abicom")
	})

	t.Run("reports an unknown brand", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--file", writePage(t), "--offline", "models", "Linksys"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "Found 0 brand(s)!\n", stdout.String())
	})

	t.Run("lists every brand with --all", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--file", writePage(t), "--offline", "models", "--all"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Brand: Abicom International")
		assert.Contains(t, stdout.String(), "Brand: Actiontec")
	})
}

func TestRun_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("downloads the page into the cache", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		var fetched string
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return devicesPage, nil
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"fetch"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "https://openwrt.org/toh/start", fetched)
		assert.Contains(t, stdout.String(), "Found 2 brand(s)! (3 model(s))")
		assert.Contains(t, stdout.String(), "Stored snapshot")

		data, err := os.ReadFile(m.PagePath)
		require.NoError(t, err)
		assert.Equal(t, devicesPage, string(data))
	})

	t.Run("later commands read the cached page", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) { return devicesPage, nil },
		}
		require.NoError(t, m.Run(testContext(), []string{"fetch"}, &bytes.Buffer{}, &bytes.Buffer{}))

		run := main.NewMain()
		run.DBPath = m.DBPath
		run.PagePath = m.PagePath
		stdout := &bytes.Buffer{}

		err := run.Run(testContext(), []string{"--offline", "brands"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 2 brand(s)!")
	})

	t.Run("refuses to run offline", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)

		err := m.Run(testContext(), []string{"--offline", "fetch"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}

func TestRun_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes a catalog that --file reads back", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		exported := &bytes.Buffer{}
		err := m.Run(testContext(), []string{"--file", writePage(t), "--offline", "export"}, exported, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, exported.String(), `<brand name="Actiontec">`)

		path := filepath.Join(t.TempDir(), "catalog.xml")
		require.NoError(t, os.WriteFile(path, exported.Bytes(), 0o644))

		run := newTestMain(t)
		stdout := &bytes.Buffer{}
		err = run.Run(testContext(), []string{"--file", path, "models", "actiontec"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 2 model(s)!")
		assert.Contains(t, stdout.String(), "https://openwrt.org/toh/actiontec/mi424wr")
	})

	t.Run("rejects an .xml file that is not an export", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "devices.xml")
		require.NoError(t, os.WriteFile(path, []byte("<devices/>"), 0o644))

		m := newTestMain(t)
		stderr := &bytes.Buffer{}
		err := m.Run(testContext(), []string{"--file", path, "brands"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "missing catalog element")
	})
}
