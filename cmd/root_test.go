package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alsdump/als"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

const sampleSet = `<?xml version="1.0" encoding="UTF-8"?>
<Ableton><LiveSet><Tracks><AudioTrack><DeviceChain><MainSequencer><Sample><ArrangerAutomation><Events>
<AudioClip Time="4"><CurrentStart Value="1.5"/><SampleRef><FileRef><Path Value="kick.wav"/></FileRef></SampleRef></AudioClip>
<AudioClip Time="0"><CurrentStart Value="0.25"/><SampleRef><FileRef><Path Value="snare.wav"/></FileRef></SampleRef></AudioClip>
</Events></ArrangerAutomation></Sample></MainSequencer></DeviceChain></AudioTrack></Tracks></LiveSet></Ableton>`

func writeSet(t *testing.T, dir, xmlText string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(xmlText)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	path := filepath.Join(dir, "song.als")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write set: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := newRootCommand()
	c.SetArgs(args)
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	err := c.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootWritesDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	input := writeSet(t, dir, sampleSet)

	if _, stderr, err := runCommand(t, input); err != nil {
		t.Fatalf("command failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "test.als.yaml"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var res als.ParseResult
	if err := yaml.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(res.AudioClips) != 2 || res.AudioClips[0].Path != "snare.wav" || res.AudioClips[1].Start != 1.5 {
		t.Errorf("unexpected clips: %+v", res.AudioClips)
	}
	if len(res.Paths) != 2 {
		t.Errorf("unexpected paths: %q", res.Paths)
	}
}

// runDefaultStreams executes the command without redirecting cobra's writers
// and returns what reached the process stdout and stderr.
func runDefaultStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	outFile, err := os.Create(filepath.Join(dir, "stdout"))
	if err != nil {
		t.Fatalf("create stdout file: %v", err)
	}
	defer outFile.Close()
	errFile, err := os.Create(filepath.Join(dir, "stderr"))
	if err != nil {
		t.Fatalf("create stderr file: %v", err)
	}
	defer errFile.Close()

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outFile, errFile
	defer func() { os.Stdout, os.Stderr = origOut, origErr }()

	c := newRootCommand()
	c.SetArgs(args)
	runErr := c.Execute()

	stdout, err := os.ReadFile(outFile.Name())
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	stderr, err := os.ReadFile(errFile.Name())
	if err != nil {
		t.Fatalf("read stderr: %v", err)
	}
	return string(stdout), string(stderr), runErr
}

func TestRootArgumentCount(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	input := writeSet(t, dir, sampleSet)

	for _, args := range [][]string{{}, {input, input}} {
		stdout, stderr, err := runDefaultStreams(t, args...)
		if err == nil {
			t.Fatalf("expected error for args %q", args)
		}
		if !strings.Contains(stderr, "Usage:") {
			t.Errorf("expected usage on stderr, got %q", stderr)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "test.als.yaml")); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat err = %v", err)
	}
}

func TestRootInvalidGzipLeavesOutputUntouched(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.als")
	if err := os.WriteFile(input, []byte(sampleSet), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	output := filepath.Join(dir, "out.yaml")
	if err := os.WriteFile(output, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	stdout, stderr, err := runCommand(t, input, "-o", output)
	if err == nil {
		t.Fatal("expected error for invalid gzip")
	}
	if strings.Contains(stdout+stderr, "Usage:") {
		t.Errorf("usage should not be printed for pipeline errors: %q", stdout+stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "previous" {
		t.Errorf("output was modified: %q", data)
	}
}

func TestRootSummaryAndDump(t *testing.T) {
	dir := t.TempDir()
	input := writeSet(t, dir, sampleSet)
	output := filepath.Join(dir, "clips.yaml")
	dump := filepath.Join(dir, "song.xml")

	stdout, stderr, err := runCommand(t, input, "-o", output, "--dump-xml", dump, "--summary")
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, stderr)
	}
	for _, want := range []string{"snare.wav", "kick.wav", "0.25", "1.5"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("summary missing %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output file: %v", err)
	}
	dumped, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if string(dumped) != sampleSet {
		t.Errorf("dump does not match decompressed set")
	}
}

func TestRootConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	input := writeSet(t, dir, sampleSet)
	fromConfig := filepath.Join(dir, "from-config.yaml")
	fromFlag := filepath.Join(dir, "from-flag.yaml")
	cfgPath := filepath.Join(dir, "alsdump.toml")
	cfgBody := "output = \"" + filepath.ToSlash(fromConfig) + "\"\nlog_level = \"info\"\nlog_format = \"json\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, stderr, err := runCommand(t, input, "-c", cfgPath)
	if err != nil {
		t.Fatalf("command failed: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(fromConfig); err != nil {
		t.Errorf("expected output at config path: %v", err)
	}
	if !strings.Contains(stderr, `"message":"wrote clip list"`) {
		t.Errorf("expected info log in json, got %q", stderr)
	}

	if _, stderr, err := runCommand(t, input, "-c", cfgPath, "-o", fromFlag); err != nil {
		t.Fatalf("command failed: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(fromFlag); err != nil {
		t.Errorf("expected output at flag path: %v", err)
	}
}

func TestRootRejectsBadLogLevelFlag(t *testing.T) {
	dir := t.TempDir()
	input := writeSet(t, dir, sampleSet)
	_, _, err := runCommand(t, input, "-o", filepath.Join(dir, "x.yaml"), "--log-level", "loud")
	if err == nil || !strings.Contains(err.Error(), "log_level") {
		t.Fatalf("expected log_level error, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
