package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foldergen-labs/foldergen/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestMain(m *testing.M) {
	// The global logger binds to the config dir on first use; keep it out
	// of the real home directory.
	home, err := os.MkdirTemp("", "foldergen-cli-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("FOLDERGEN_HOME", home)
	logger.Get()
	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

func TestGenerateImagesWithFlags(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "generate", "--base", env.Base, "--root", "Client", "--categories", "images", "--placeholder", "RemoveMe.txt")
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}

	assertExists(t, filepath.Join(env.Base, "Client/Images/AppIcon/RemoveMe.txt"))
	assertExists(t, filepath.Join(env.Base, "Client/Images/Ui/Sources/RemoveMe.txt"))
	assertMissing(t, filepath.Join(env.Base, "Client/Images/RemoveMe.txt"))
	assertContains(t, out, "Generated Images under")
	assertContains(t, out, "Client/Images/Ui/Sources/RemoveMe.txt")
}

func TestGenerateDefaultsCreateEverything(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "generate", "--base", env.Base)
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}

	assertExists(t, filepath.Join(env.Base, "Plugins/RemoveMe.txt"))
	assertExists(t, filepath.Join(env.Base, "Client/StreamingAssets/RemoveMe.txt"))
	assertExists(t, filepath.Join(env.Base, "Client/Animations/Controllers/RemoveMe.txt"))
	assertMissing(t, filepath.Join(env.Base, "Client/Plugins"))

	// Second run is a success and reports the existing placeholders.
	out, err = runCLI(t, "generate", "--base", env.Base)
	if err != nil {
		t.Fatalf("second generate error: %v\n%s", err, out)
	}
	assertContains(t, out, "placeholder files already present")
}

func TestGenerateUsesConfigDefaults(t *testing.T) {
	env := setupCLIEnv(t)

	for _, kv := range [][2]string{
		{"base", env.Base},
		{"root", "Game"},
		{"categories", "scripts,plugins"},
		{"placeholder", ".gitkeep"},
	} {
		if out, err := runCLI(t, "config", "set", kv[0], kv[1]); err != nil {
			t.Fatalf("config set %s error: %v\n%s", kv[0], err, out)
		}
	}

	out, err := runCLI(t, "generate")
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	assertExists(t, filepath.Join(env.Base, "Game/Scripts/.gitkeep"))
	assertExists(t, filepath.Join(env.Base, "Plugins/.gitkeep"))
	assertMissing(t, filepath.Join(env.Base, "Game/Fonts"))

	// Flags still win over config.
	out, err = runCLI(t, "generate", "--root", "", "--categories", "fonts")
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	assertExists(t, filepath.Join(env.Base, "Fonts/.gitkeep"))
}

func TestGeneratePlaceholderDisabled(t *testing.T) {
	for _, args := range [][]string{
		{"--placeholder", ""},
		{"--no-placeholder"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			env := setupCLIEnv(t)
			cmd := append([]string{"generate", "--base", env.Base, "--categories", "scripts"}, args...)
			if out, err := runCLI(t, cmd...); err != nil {
				t.Fatalf("generate error: %v\n%s", err, out)
			}
			entries, err := os.ReadDir(filepath.Join(env.Base, "Client", "Scripts"))
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("expected empty Scripts folder, found %d entries", len(entries))
			}
		})
	}
}

func TestGenerateBlankPlaceholderDisables(t *testing.T) {
	env := setupCLIEnv(t)

	if out, err := runCLI(t, "generate", "--base", env.Base, "--categories", "scripts", "--placeholder", "  "); err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	entries, err := os.ReadDir(filepath.Join(env.Base, "Client", "Scripts"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty Scripts folder, found %d entries", len(entries))
	}
}

func TestGenerateTrimsRoot(t *testing.T) {
	env := setupCLIEnv(t)

	if out, err := runCLI(t, "generate", "--base", env.Base, "--categories", "scripts", "--root", " Game "); err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	assertExists(t, filepath.Join(env.Base, "Game", "Scripts", "RemoveMe.txt"))
	assertMissing(t, filepath.Join(env.Base, " Game "))
}

func TestGenerateWithoutLockDir(t *testing.T) {
	env := setupCLIEnv(t)

	// A regular file where the config dir should be leaves no place for locks.
	home := writeTestFile(t, t.TempDir(), "home", "")
	t.Setenv("FOLDERGEN_HOME", home)

	out, err := runCLI(t, "generate", "--base", env.Base, "--categories", "scripts")
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	assertExists(t, filepath.Join(env.Base, "Client", "Scripts", "RemoveMe.txt"))
}

func TestGenerateNothingSelected(t *testing.T) {
	env := setupCLIEnv(t)
	missing := filepath.Join(env.Base, "does-not-exist")

	out, err := runCLI(t, "generate", "--base", missing, "--categories", "")
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	assertContains(t, out, "Nothing selected")
	assertMissing(t, missing)
}

func TestGenerateMissingBase(t *testing.T) {
	env := setupCLIEnv(t)

	_, err := runCLI(t, "generate", "--base", filepath.Join(env.Base, "nope"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestGenerateUnknownCategory(t *testing.T) {
	env := setupCLIEnv(t)

	_, err := runCLI(t, "generate", "--base", env.Base, "--categories", "images,textures")
	if err == nil || !strings.Contains(err.Error(), "textures") {
		t.Fatalf("expected unknown category error, got %v", err)
	}
	assertMissing(t, filepath.Join(env.Base, "Client"))
}

func TestGenerateDryRun(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, "generate", "--base", env.Base, "--categories", "plugins,sounds", "--dry-run")
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	assertContains(t, out, "mkdir  "+filepath.ToSlash(filepath.Join(env.Base, "Plugins")))
	assertContains(t, out, "touch  "+filepath.ToSlash(filepath.Join(env.Base, "Client", "Sounds", "RemoveMe.txt")))
	assertMissing(t, filepath.Join(env.Base, "Plugins"))
}

func TestGenerateCustomCatalog(t *testing.T) {
	env := setupCLIEnv(t)
	catalogFile := writeTestFile(t, env.Home, "catalog.yaml", `version: "1.0.0"
categories:
  Sounds:
    subfolders: [Music]
`)

	out, err := runCLI(t, "generate", "--base", env.Base, "--categories", "sounds,plugins", "--catalog", catalogFile)
	if err != nil {
		t.Fatalf("generate error: %v\n%s", err, out)
	}
	assertExists(t, filepath.Join(env.Base, "Client/Sounds/Music/RemoveMe.txt"))
	// Plugins is only root-only in the built-in catalog.
	assertExists(t, filepath.Join(env.Base, "Client/Plugins/RemoveMe.txt"))
}

func TestCatalogListJSON(t *testing.T) {
	setupCLIEnv(t)

	out, err := runCLI(t, "catalog", "list", "--json")
	if err != nil {
		t.Fatalf("catalog list error: %v", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, out)
	}
	if len(entries) != 12 {
		t.Fatalf("got %d entries, want 12", len(entries))
	}
	if entries[4].Name != "Plugins" || !entries[4].RootOnly || entries[4].Bit != 16 {
		t.Errorf("unexpected Plugins entry: %+v", entries[4])
	}
	if strings.Join(entries[2].Subfolders, ",") != "AppIcon,Ui,Ui/Sources" {
		t.Errorf("unexpected Images subfolders: %v", entries[2].Subfolders)
	}
}

func TestCatalogListTable(t *testing.T) {
	setupCLIEnv(t)

	out, err := runCLI(t, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list error: %v", err)
	}
	assertContains(t, out, "CATEGORY")
	assertContains(t, out, "Sources, Controllers")
	assertContains(t, out, "Root-only (created under the base directory): Plugins")
}

func TestCatalogListTableNoRootOnly(t *testing.T) {
	env := setupCLIEnv(t)
	path := writeTestFile(t, env.Home, "flat.yaml", "version: \"1.0.0\"\ncategories:\n  Images:\n    subfolders: [Ui]\n")

	out, err := runCLI(t, "catalog", "list", "--catalog", path)
	if err != nil {
		t.Fatalf("catalog list error: %v\n%s", err, out)
	}
	assertContains(t, out, "Root-only (created under the base directory): none")
}

func TestCatalogValidate(t *testing.T) {
	env := setupCLIEnv(t)

	good := writeTestFile(t, env.Home, "good.yaml", "version: \"1.1.0\"\ncategories:\n  Fonts:\n    subfolders: [Ttf]\n")
	out, err := runCLI(t, "catalog", "validate", good)
	if err != nil {
		t.Fatalf("validate error: %v\n%s", err, out)
	}
	assertContains(t, out, "is valid (version 1.1.0)")

	bad := writeTestFile(t, env.Home, "bad.yaml", "version: \"1.0.0\"\ncategories:\n  Textures: {}\n")
	out, err = runCLI(t, "catalog", "validate", bad)
	if err == nil {
		t.Fatal("expected error for invalid catalog")
	}
	assertContains(t, out, "is invalid")

	future := writeTestFile(t, env.Home, "future.yaml", "version: \"3.0.0\"\ncategories: {}\n")
	if _, err := runCLI(t, "catalog", "validate", future); err == nil {
		t.Fatal("expected error for unsupported catalog version")
	}
}

func TestConfigGetSetList(t *testing.T) {
	setupCLIEnv(t)

	if _, err := runCLI(t, "config", "set", "root", "Game"); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	out, err := runCLI(t, "config", "get", "root")
	if err != nil {
		t.Fatalf("config get error: %v", err)
	}
	if strings.TrimSpace(out) != "Game" {
		t.Errorf("config get root = %q, want Game", out)
	}

	out, err = runCLI(t, "config", "list")
	if err != nil {
		t.Fatalf("config list error: %v", err)
	}
	assertContains(t, out, `placeholder`)
	assertContains(t, out, `"RemoveMe.txt"`)

	if _, err := runCLI(t, "config", "get", "colour"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := runCLI(t, "config", "set", "colour", "blue"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestVersionShort(t *testing.T) {
	setupCLIEnv(t)
	buildVersion = "1.2.3"

	out, err := runCLI(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

type cliEnv struct {
	Home string // FOLDERGEN_HOME for this test
	Base string // Existing base asset directory
}

func setupCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{
		Home: t.TempDir(),
		Base: filepath.Join(t.TempDir(), "Assets"),
	}
	if err := os.Mkdir(env.Base, 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLDERGEN_HOME", env.Home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return env
}

// runCLI executes the root command with fresh flag state and returns the
// combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected %s to not exist (err=%v)", path, err)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("output does not contain %q\n--- output ---\n%s", substr, content)
	}
}
