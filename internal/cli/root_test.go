package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/hashmerge/pkg/models"
)

// execute runs the root command in-process with an isolated HOME
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeWithHome(t, t.TempDir(), stdin, args...)
}

func executeWithHome(t *testing.T, home, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// scenario creates A = {x.txt:"hello"} and B = {y.txt:"hello", z.txt:"world"}
func scenario(t *testing.T) (root, dirA, dirB string) {
	t.Helper()

	root = t.TempDir()
	dirA = filepath.Join(root, "A")
	dirB = filepath.Join(root, "B")
	files := map[string]string{
		filepath.Join(dirA, "x.txt"): "hello",
		filepath.Join(dirB, "y.txt"): "hello",
		filepath.Join(dirB, "z.txt"): "world",
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root, dirA, dirB
}

func TestInvalidArguments(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name string
		args []string
	}{
		{"BogusAction", []string{"-A", missing, "-B", missing, "--action", "bogus"}},
		{"NoAction", []string{"-A", missing, "-B", missing}},
		{"MergeWithoutDirectory", []string{"-A", missing, "-B", missing + "2", "--action", "merge"}},
		{"UnknownFlag", []string{"--frobnicate"}},
		{"ConfirmationNeedsValue", []string{"-A", missing, "-B", missing, "--action", "equal", "--confirmation"}},
		{"BadConfirmationValue", []string{"-A", missing, "-B", missing, "--action", "equal", "--confirmation", "maybe"}},
		{"BadHash", []string{"-A", missing, "-B", missing, "--action", "equal", "--hash", "crc32"}},
		{"BadOutput", []string{"-A", missing, "-B", missing, "--action", "equal", "-o", "xml"}},
		{"SameDirectoryMerge", []string{"-A", missing, "-B", missing + "/", "--action", "merge_into_a"}},
		{"ExtraArgument", []string{"-A", missing, "-B", missing, "--action", "equal", "surplus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			// a scan of the missing directories would be an I/O error instead
			if got := models.ExitCode(err); got != models.ExitInvalid {
				t.Errorf("ExitCode() = %d, want %d (err: %v)", got, models.ExitInvalid, err)
			}
		})
	}
}

func TestEqualAction(t *testing.T) {
	_, dirA, dirB := scenario(t)

	stdout, _, err := execute(t, "", "-A", dirA, "-B", dirB, "--action", "equal")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "The files '" + filepath.Join(dirA, "x.txt") + "' and '" + filepath.Join(dirB, "y.txt") + "' are identical\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestDiffActionQuiet(t *testing.T) {
	_, dirA, dirB := scenario(t)

	stdout, _, err := execute(t, "", "-q", "-A", dirA, "-B", dirB, "--action", "diff")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("quiet run printed %q", stdout)
	}
}

func TestMergeIntoAWithConfirmation(t *testing.T) {
	_, dirA, dirB := scenario(t)

	stdout, _, err := execute(t, "n\n", "-A", dirA, "-B", dirB, "--action", "merge_into_a", "--confirmation", "true")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout, "Remove file '"+filepath.Join(dirB, "y.txt")+"' [y/n]") {
		t.Errorf("prompt missing from stdout: %q", stdout)
	}
	if strings.Contains(stdout, "Deleting") {
		t.Errorf("declined file should not be deleted: %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dirB, "y.txt")); err != nil {
		t.Errorf("y.txt should still exist: %v", err)
	}
}

func TestMergeIntoBWithoutConfirmation(t *testing.T) {
	_, dirA, dirB := scenario(t)

	stdout, _, err := execute(t, "", "-A", dirA, "-B", dirB, "--action", "merge_into_b", "--confirmation", "false")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if stdout != "Deleting '"+filepath.Join(dirA, "x.txt")+"'.\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dirA, "x.txt")); !os.IsNotExist(err) {
		t.Error("x.txt should be deleted")
	}
}

func TestMergeDeclinedOverwrite(t *testing.T) {
	root, dirA, dirB := scenario(t)
	merged := filepath.Join(root, "M")
	if err := os.Mkdir(merged, 0755); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "n\n", "-A", dirA, "-B", dirB, "--action", "merge", "-m", merged)
	if !errors.Is(err, models.ErrUserDeclined) {
		t.Fatalf("Execute() error = %v, want ErrUserDeclined", err)
	}
	if models.ExitCode(err) != models.ExitInvalid {
		t.Errorf("ExitCode() = %d, want %d", models.ExitCode(err), models.ExitInvalid)
	}
	if _, err := os.Stat(filepath.Join(dirA, "x.txt")); err != nil {
		t.Error("A should be untouched")
	}
}

func TestMergeWithJSONReport(t *testing.T) {
	root, dirA, dirB := scenario(t)
	merged := filepath.Join(root, "M")
	reportPath := filepath.Join(root, "out", "report.json")

	stdout, _, err := execute(t, "",
		"-A", dirA, "-B", dirB, "--action", "merge", "--merge", merged,
		"-o", "json", "--report", reportPath, "--hash", "blake3", "--parallel")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not a JSON document: %v\n%s", err, stdout)
	}
	if doc["status"] != "success" || doc["action"] != "merge" {
		t.Errorf("unexpected document: %v", doc)
	}
	if moves, _ := doc["moves"].([]interface{}); len(moves) != 2 {
		t.Errorf("moves = %v, want 2 entries", doc["moves"])
	}

	if _, err := os.Stat(reportPath); err != nil {
		t.Errorf("report file not written: %v", err)
	}
	for _, name := range []string{"x.txt", "z.txt"} {
		if _, err := os.Stat(filepath.Join(merged, name)); err != nil {
			t.Errorf("%s not moved: %v", name, err)
		}
	}
}

func TestScanFailureIsIOError(t *testing.T) {
	_, dirA, _ := scenario(t)

	_, _, err := execute(t, "", "-A", dirA, "-B", filepath.Join(dirA, "nope"), "--action", "diff")
	if got := models.ExitCode(err); got != models.ExitIO {
		t.Errorf("ExitCode() = %d, want %d (err: %v)", got, models.ExitIO, err)
	}
}

func TestLogFile(t *testing.T) {
	root, dirA, dirB := scenario(t)
	logPath := filepath.Join(root, "logs", "run.log")

	_, _, err := execute(t, "", "-A", dirA, "-B", dirB, "--action", "equal", "--log-file", logPath, "--log-format", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(content), `"run_id"`) {
		t.Errorf("log lines should carry run_id: %s", content)
	}
}

func TestConfigFile(t *testing.T) {
	root, dirA, dirB := scenario(t)
	cfgPath := filepath.Join(root, "hashmerge.yaml")

	if _, _, err := execute(t, "", "--config", cfgPath, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}

	stdout, _, err := execute(t, "", "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(stdout, "Hash Algorithm: sha256") {
		t.Errorf("config show output = %q", stdout)
	}

	// confirmation enabled in the file; an empty answer skips the deletion
	if err := os.WriteFile(cfgPath, []byte("prompt:\n  confirmation: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, _, err = execute(t, "", "--config", cfgPath, "-A", dirA, "-B", dirB, "--action", "merge_into_a")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "Remove file") {
		t.Errorf("expected a confirmation prompt, got %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dirB, "y.txt")); err != nil {
		t.Error("y.txt should be kept")
	}
}

func TestHomeConfigIsNotRead(t *testing.T) {
	_, dirA, dirB := scenario(t)

	home := t.TempDir()
	cfgDir := filepath.Join(home, ".config", "hashmerge")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(cfgDir, "config.yaml")

	t.Run("ExcludeIgnored", func(t *testing.T) {
		if err := os.WriteFile(cfgPath, []byte("index:\n  exclude: [\"*.txt\"]\n"), 0644); err != nil {
			t.Fatal(err)
		}

		stdout, _, err := executeWithHome(t, home, "", "-A", dirA, "-B", dirB, "--action", "equal")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(stdout, "are identical") {
			t.Errorf("stdout = %q, want the x.txt/y.txt pair", stdout)
		}
	})

	t.Run("MalformedIgnored", func(t *testing.T) {
		if err := os.WriteFile(cfgPath, []byte("index: [\n"), 0644); err != nil {
			t.Fatal(err)
		}

		_, _, err := executeWithHome(t, home, "", "-A", dirA, "-B", dirB, "--action", "bogus")
		if got := models.ExitCode(err); got != models.ExitInvalid {
			t.Errorf("ExitCode() = %d, want %d (err: %v)", got, models.ExitInvalid, err)
		}

		if _, _, err := executeWithHome(t, home, "", "-A", dirA, "-B", dirB, "--action", "diff"); err != nil {
			t.Errorf("Execute() error = %v", err)
		}
	})
}

func TestInvalidActionBeforeConfigFile(t *testing.T) {
	_, dirA, dirB := scenario(t)
	broken := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(broken, []byte("index: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "", "--config", broken, "-A", dirA, "-B", dirB, "--action", "bogus")
	if got := models.ExitCode(err); got != models.ExitInvalid {
		t.Errorf("ExitCode() = %d, want %d (err: %v)", got, models.ExitInvalid, err)
	}

	// a valid action gets as far as reading the file
	_, _, err = execute(t, "", "--config", broken, "-A", dirA, "-B", dirB, "--action", "equal")
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("Execute() error = %v, want a config load failure", err)
	}
}

func TestPathsAsGiven(t *testing.T) {
	_, dirA, dirB := scenario(t)
	sep := string(filepath.Separator)

	stdout, _, err := execute(t, "", "-A", dirA+sep, "-B", dirB+sep+".", "--action", "equal")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := "The files '" + dirA + sep + "x.txt' and '" + dirB + sep + "." + sep + "y.txt' are identical\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	t.Run("NoPath", func(t *testing.T) {
		_, _, err := execute(t, "", "config", "init")
		if got := models.ExitCode(err); got != models.ExitInvalid {
			t.Errorf("ExitCode() = %d, want %d (err: %v)", got, models.ExitInvalid, err)
		}
	})

	t.Run("PositionalPath", func(t *testing.T) {
		path := filepath.Join(dir, "hashmerge.yaml")
		stdout, _, err := execute(t, "", "config", "init", path)
		if err != nil {
			t.Fatalf("config init error = %v", err)
		}
		if !strings.Contains(stdout, path) {
			t.Errorf("stdout = %q", stdout)
		}

		if _, _, err := execute(t, "", "config", "init", path); err == nil {
			t.Error("config init should not replace an existing file")
		}
	})

	t.Run("TooManyArguments", func(t *testing.T) {
		_, _, err := execute(t, "", "config", "init", "a.yaml", "b.yaml")
		if got := models.ExitCode(err); got != models.ExitInvalid {
			t.Errorf("ExitCode() = %d, want %d (err: %v)", got, models.ExitInvalid, err)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(stdout) != Version {
		t.Errorf("version = %q, want %q", stdout, Version)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, &models.ValidationError{Field: "action", Message: "action 'bogus' is not valid"})

	if !strings.Contains(buf.String(), "action 'bogus' is not valid") {
		t.Errorf("output = %q", buf.String())
	}
	if !strings.Contains(buf.String(), "--help") {
		t.Errorf("validation errors should point at --help: %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, nil)
	if buf.Len() != 0 {
		t.Error("nil error should print nothing")
	}
}
