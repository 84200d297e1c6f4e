package main

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger.SetOutput(io.Discard)

	// flag values persist between executions of the same command tree
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFASTA(t *testing.T, name string, records ...string) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i+1 < len(records); i += 2 {
		b.WriteString(">" + records[i] + "\n" + records[i+1] + "\n")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func randomBases(seed int64, n int) string {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = "ACGT"[r.Intn(4)]
	}
	return string(b)
}

func TestAlignCommand(t *testing.T) {
	ref := randomBases(7, 600)
	refPath := writeFASTA(t, "ref.fa", "chr1", ref)
	queryPath := writeFASTA(t, "qry.fa", "q1", ref[100:500])

	out, err := execute(t, "align", refPath, queryPath, "--format", "delta")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, refPath+" "+queryPath, lines[0])
	assert.Equal(t, "NUCMER", lines[1])
	assert.Equal(t, ">chr1 q1 600 400", lines[2])
	assert.Equal(t, "101 500 1 400 0 0 0", lines[3])
	assert.Equal(t, "0", lines[4])

	out, err = execute(t, "align", refPath, queryPath, "--format", "json")
	require.NoError(t, err)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "400M", records[0]["cigar"])

	outPath := filepath.Join(t.TempDir(), "out.json")
	out, err = execute(t, "align", refPath, queryPath, "--output", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)
	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), `"ref_start": 101`)

	// an explicit --format wins over the extension
	out, err = execute(t, "align", refPath, queryPath, "--output", outPath, "--format", "coords")
	require.NoError(t, err)
	assert.Empty(t, out)
	written, err = os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "[S1]\t[E1]"), string(written))
	assert.Contains(t, string(written), "101\t500\t1\t400\t")
}

func TestAlignCommandSingleFile(t *testing.T) {
	ref := randomBases(8, 300)
	path := writeFASTA(t, "all.fa", "ref", ref, "q1", ref[50:250])

	out, err := execute(t, "align", path, "--format", "coords")
	require.NoError(t, err)
	assert.Contains(t, out, "51\t250\t1\t200\t200\t200\t100.00\tref\tq1")
}

func TestAlignCommandErrors(t *testing.T) {
	ref := randomBases(9, 100)
	refPath := writeFASTA(t, "ref.fa", "ref", ref)

	_, err := execute(t, "align", refPath)
	assert.ErrorContains(t, err, "need a reference and at least one query")

	_, err = execute(t, "align", refPath, filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)

	_, err = execute(t, "align", refPath, refPath, "--format", "sam")
	assert.ErrorContains(t, err, `unknown output format "sam"`)
}

func TestDumpConfig(t *testing.T) {
	out, err := execute(t, "align", "x.fa", "--min-length", "31", "--format", "delta", "--dump-config")
	require.NoError(t, err)
	assert.Contains(t, out, "min-length = 31")
	assert.Contains(t, out, "[extend]")
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score", "ACGT-ACGT", "ACGTTACGT")
	require.NoError(t, err)
	assert.Equal(t, "-13\n", out)

	_, err = execute(t, "score", "ACGT", "AC")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nucmer-go v")
}
