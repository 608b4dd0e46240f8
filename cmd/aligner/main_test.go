package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesohortle/japanese-utilities/internal/config"
	"github.com/jamesohortle/japanese-utilities/internal/testsupport"
)

const weather = "今日は晴れです。\n\n明日は雨です。"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("ALIGNER_DATA_DIR", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\ncache_dir = %q\n\n[workflow]\nworkers = 2\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.CacheDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, haystack)
	}
}

// importWeather writes the weather source and imports three transcriptions.
func importWeather(t *testing.T, env *cliTestEnv) {
	t.Helper()
	testsupport.WriteSource(t, env.cfg, "weather", weather)
	tsv := "001.wav\t今日は晴れです\n002.wav\t明日は雨です\n003.wav\tABCDEFG\n"
	out, _, err := runCLI(t, []string{"import", "tsv", "weather", "-"}, env.configPath, tsv)
	if err != nil {
		t.Fatalf("import tsv: %v", err)
	}
	requireContains(t, out, "Imported 3 of 3 transcriptions into weather")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.cfg.Paths.DataDir)
	requireContains(t, out, "Reading backend: kana")
	requireContains(t, out, "Matching: batch strategy, top 5")
	requireContains(t, out, "Algorithm version: ")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	requireContains(t, out, "stripped_text/stripped.txt")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[matching]\nstrategy = \"greedy\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "matching.strategy") {
		t.Fatalf("expected matching.strategy error, got %v", err)
	}
}

func TestImportAlignShow(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)

	out, _, err := runCLI(t, []string{"align", "--skip-check"}, env.configPath, "")
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	requireContains(t, out, "weather")
	requireContains(t, out, "ok")

	out, _, err = runCLI(t, []string{"show", "weather", "--format", "json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var records []recordView
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode show output: %v\n%s", err, out)
	}
	want := map[string]struct {
		index int
		final string
	}{
		"001.wav": {0, "今日は晴れです。"},
		"002.wav": {1, "明日は雨です。"},
		"003.wav": {-1, ""},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for _, rec := range records {
		w, ok := want[rec.Path]
		if !ok {
			t.Fatalf("unexpected record %s", rec.Path)
		}
		if rec.SourceIndex == nil || *rec.SourceIndex != w.index {
			t.Fatalf("%s: expected index %d, got %v", rec.Path, w.index, rec.SourceIndex)
		}
		if rec.Final != w.final {
			t.Fatalf("%s: expected final %q, got %q", rec.Path, w.final, rec.Final)
		}
	}

	out, _, err = runCLI(t, []string{"show", "weather", "--unmatched"}, env.configPath, "")
	if err != nil {
		t.Fatalf("show --unmatched: %v", err)
	}
	requireContains(t, out, "003.wav")
	if strings.Contains(out, "001.wav") {
		t.Fatalf("matched record listed with --unmatched:\n%s", out)
	}
}

func TestImportTSVKeepsExistingRows(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)

	out, _, err := runCLI(t, []string{"import", "tsv", "weather", "-"}, env.configPath, "001.wav\t別の文\n004.wav\t新しい文\n")
	if err != nil {
		t.Fatalf("import tsv: %v", err)
	}
	requireContains(t, out, "Imported 1 of 2 transcriptions")
}

func TestImportJuliusUpdatesRows(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)

	list := filepath.Join(t.TempDir(), "files.txt")
	testsupport.WriteFile(t, list, "003.wav\n")
	xml := `<INPUT STATUS="LISTEN" TIME="1"/>
<RECOGOUT>
  <SHYPO RANK="1" SCORE="-100.0">
    <WHYPO WORD="" CLASSID="<s>" PHONE="silB"/>
    <WHYPO WORD="明日" CLASSID="明日"/>
    <WHYPO WORD="は雨です" CLASSID="は雨です"/>
    <WHYPO WORD="" CLASSID="</s>" PHONE="silE"/>
  </SHYPO>
</RECOGOUT>
.
`
	out, _, err := runCLI(t, []string{"import", "julius", "weather", "--filelist", list, "-"}, env.configPath, xml)
	if err != nil {
		t.Fatalf("import julius: %v", err)
	}
	requireContains(t, out, "Imported 1 transcriptions into weather")

	out, _, err = runCLI(t, []string{"show", "weather", "--format", "json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "明日は雨です")
	if strings.Contains(out, "ABCDEFG") {
		t.Fatalf("expected 003.wav to be replaced:\n%s", out)
	}
}

func TestImportJuliusRequiresFileList(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"import", "julius", "weather", "-"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "--filelist") {
		t.Fatalf("expected --filelist error, got %v", err)
	}
}

func TestMatchCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSource(t, env.cfg, "weather", weather)

	out, _, err := runCLI(t, []string{"match", "weather", "明日は雨です"}, env.configPath, "")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "1\t明日は雨です。")

	out, _, err = runCLI(t, []string{"match", "weather", "ABCDEFG"}, env.configPath, "")
	if err != nil {
		t.Fatalf("match unrelated: %v", err)
	}
	requireContains(t, out, "no confident match")
}

func TestCacheListClearAndReset(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)

	if _, _, err := runCLI(t, []string{"align", "--skip-check", "weather"}, env.configPath, ""); err != nil {
		t.Fatalf("align: %v", err)
	}
	out, _, err := runCLI(t, []string{"cache", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "weather")

	out, _, err = runCLI(t, []string{"reset", "weather"}, env.configPath, "")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	requireContains(t, out, "Cleared alignment results for weather")

	out, _, err = runCLI(t, []string{"cache", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	requireContains(t, out, "Match cache is empty")

	out, _, err = runCLI(t, []string{"show", "weather"}, env.configPath, "")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if strings.Contains(out, "今日は晴れです。") {
		t.Fatalf("expected reset to clear best matches:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"align", "--skip-check"}, env.configPath, ""); err != nil {
		t.Fatalf("align: %v", err)
	}
	out, _, err = runCLI(t, []string{"cache", "clear"}, env.configPath, "")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1 cached entries")
}

func TestAlignReportsFailedWorks(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)

	_, _, err := runCLI(t, []string{"align", "--skip-check", "weather", "missing"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 works failed") {
		t.Fatalf("expected one failed work, got %v", err)
	}
}

func TestAlignJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)

	out, _, err := runCLI(t, []string{"align", "--skip-check", "--strategy", "single", "--format", "json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	var report reportOutput
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if len(report.Works) != 1 || report.Works[0].Matched != 2 || report.Works[0].Unmatched != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.RunID == "" || report.Version == "" {
		t.Fatalf("expected run id and version, got %+v", report)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)

	out, _, err := runCLI(t, []string{"check"}, env.configPath, "")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "1 works")
}

func TestUnsupportedFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	importWeather(t, env)
	_, _, err := runCLI(t, []string{"show", "weather", "--format", "xml"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestLogsShowsLatestRunLog(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"logs"}, env.configPath, ""); err == nil {
		t.Fatal("expected error without run logs")
	}

	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.LogDir, "aligner-20260101-000000.log"), "old\n")
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.LogDir, "aligner-20260102-000000.log"), "one\ntwo\nthree\n")

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.configPath, "")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "two\nthree\n" {
		t.Fatalf("unexpected logs output %q", out)
	}
}

func TestNotifyTestWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"notify", "test"}, env.configPath, "")
	if err != nil {
		t.Fatalf("notify test: %v", err)
	}
	requireContains(t, out, "notifications.ntfy_topic is not set")
}
