package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv keeps the user's settings and environment out of the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"C2RUST_PROJECT_ROOT",
		"C2RUST_REVISION",
		"C2RUST_LOG_LEVEL",
		"C2RUST_LOG_FORMAT",
		"C2RUST_CONFIG_SETTINGS",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
}

// newProject creates a project root holding .c2rust/config.toml with content.
func newProject(t *testing.T, content string) string {
	t.Helper()
	isolateEnv(t)
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".c2rust"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".c2rust", "config.toml"), []byte(content), 0644))
	return root
}

type result struct {
	stdout string
	stderr string
	code   int
}

func execute(args ...string) result {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// inProject runs a config command against root.
func inProject(root string, args ...string) result {
	return execute(append([]string{"config", "--project-root", root}, args...)...)
}

func readConfig(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, ".c2rust", "config.toml"))
	require.NoError(t, err)
	return string(data)
}

func TestConfigCommand(t *testing.T) {
	t.Run("SetAndList", func(t *testing.T) {
		root := newProject(t, "")

		res := inProject(root, "--make", "--set", "build.dir", "build")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stderr, "Warning: feature 'default' is missing required keys: clean.dir, clean.cmd, test.dir, test.cmd, build.cmd")
		assert.Contains(t, readConfig(t, root), "[feature.default]\n\"build.dir\" = \"build\"\n")

		res = inProject(root, "--make", "--list", "build.dir")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "build\n", res.stdout)
		assert.Empty(t, res.stderr)
	})

	t.Run("ListSection", func(t *testing.T) {
		root := newProject(t, `
[model]
name = "gpt"

[model.build]
dir = "build"
`)
		res := inProject(root, "--model", "--list")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "name = gpt\nbuild.dir = build\n", res.stdout)
	})

	t.Run("ListEmptySection", func(t *testing.T) {
		root := newProject(t, "[global]\n")
		res := inProject(root, "--global", "--list")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Empty(t, res.stdout)
	})

	t.Run("ListDoesNotRewrite", func(t *testing.T) {
		original := "# hand written\n[global]\ncompiler = 'gcc'   # comment\n"
		root := newProject(t, original)

		res := inProject(root, "--global", "--list", "compiler")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "gcc\n", res.stdout)
		assert.Equal(t, original, readConfig(t, root))
	})

	t.Run("ArrayValues", func(t *testing.T) {
		root := newProject(t, "")

		res := inProject(root, "--global", "--add", "flags", "--", "-g", "-O0")
		require.Equal(t, 0, res.code, res.stderr)
		res = inProject(root, "--global", "--add", "flags", "--", "-g", "-Wall")
		require.Equal(t, 0, res.code, res.stderr)

		res = inProject(root, "--global", "--list", "flags")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "-g, -O0, -Wall\n", res.stdout)

		res = inProject(root, "--global", "--del", "flags", "--", "-O0", "-missing")
		require.Equal(t, 0, res.code, res.stderr)
		res = inProject(root, "--global", "--list", "flags")
		assert.Equal(t, "-g, -Wall\n", res.stdout)
	})

	t.Run("FeatureCaseInsensitive", func(t *testing.T) {
		root := newProject(t, "")

		res := inProject(root, "--make", "--feature", "DEBUG", "--set", "compiler", "clang")
		require.Equal(t, 0, res.code, res.stderr)

		res = inProject(root, "--make", "--feature", "debug", "--list", "compiler")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "clang\n", res.stdout)
		assert.Contains(t, readConfig(t, root), "[feature.debug]")
	})

	t.Run("BuildFilesBound", func(t *testing.T) {
		root := newProject(t, "")

		res := inProject(root, "--make", "--add", "build.options", "--", "-O0", "-g")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Empty(t, res.stderr)

		res = inProject(root, "--make", "--set", "build.files.1", "b.c")
		require.Equal(t, 0, res.code, res.stderr)
		assert.NotContains(t, res.stderr, "exceeds")

		res = inProject(root, "--make", "--set", "build.files.2", "c.c")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stderr, "Warning: feature 'default': build.files.2 exceeds build.options bound (index 2, length 2)")
	})

	t.Run("RevisionFlag", func(t *testing.T) {
		root := newProject(t, "")

		res := inProject(root, "--make", "--revision", "cmd", "--set", "build.files.5", "x.c")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Empty(t, res.stderr)

		res = inProject(root, "--make", "--revision", "v9", "--set", "a", "b")
		assert.Equal(t, exitInvalidOperation, res.code)
		assert.Contains(t, res.stderr, `Error: invalid settings: Settings.Revision: "v9" is not one of [bare cmd files]`)
	})

	t.Run("InvalidSettingsFromEnv", func(t *testing.T) {
		root := newProject(t, "")
		t.Setenv("C2RUST_LOG_FORMAT", "xml")

		res := inProject(root, "--global", "--list")
		assert.Equal(t, exitInvalidOperation, res.code)
		assert.Contains(t, res.stderr, "invalid settings")
	})

	t.Run("BareRevisionIsLogged", func(t *testing.T) {
		root := newProject(t, "")

		res := inProject(root, "--make", "--revision", "bare", "--log-level", "debug", "--log-format", "json", "--set", "clean", "make clean")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stderr, "a complete feature is impossible")
		assert.Contains(t, res.stderr, "Warning: feature 'default' is missing required keys: clean.dir, test.dir, test, build.dir, build")
	})

	t.Run("ProjectRootFromEnv", func(t *testing.T) {
		root := newProject(t, "[global]\ncompiler = \"gcc\"\n")
		t.Setenv("C2RUST_PROJECT_ROOT", root)

		res := execute("config", "--global", "--list", "compiler")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "gcc\n", res.stdout)
	})

	t.Run("JSONLogs", func(t *testing.T) {
		root := newProject(t, "")

		res := execute("config", "--project-root", root, "--log-level", "debug", "--log-format", "json", "--global", "--set", "a", "b")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stderr, `"message":"operation applied"`)
		assert.Contains(t, res.stderr, `"component":"config"`)
		assert.Empty(t, res.stdout)
	})
}

func TestConfigCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		code    int
		stderr  string
	}{
		{"NoMode", "", []string{"--set", "test", "value"}, exitInvalidOperation, "Exactly one of --global, --model, or --make must be specified"},
		{"MultipleModes", "", []string{"--global", "--model", "--set", "test", "value"}, exitInvalidOperation, "--global cannot be used with --model"},
		{"NoOperation", "", []string{"--global", "test", "value"}, exitInvalidOperation, "Exactly one of --set, --unset, --add, --del, or --list must be specified"},
		{"MultipleOperations", "", []string{"--global", "--set", "--unset", "test", "value"}, exitInvalidOperation, "cannot be used with"},
		{"FeatureWithGlobal", "", []string{"--global", "--feature", "debug", "--set", "test", "value"}, exitInvalidOperation, "--feature can only be used with --make"},
		{"FeatureWithModel", "", []string{"--model", "--feature", "debug", "--set", "test", "value"}, exitInvalidOperation, "--feature can only be used with --make"},
		{"SetWithoutValue", "", []string{"--global", "--set", "key"}, exitInvalidOperation, "requires at least one value"},
		{"UnknownFlag", "", []string{"--global", "--frobnicate"}, exitInvalidOperation, "unknown flag"},
		{"ListTable", "[global]\n\"build.dir\" = \"x\"\n", []string{"--global", "--list", "build"}, exitInvalidOperation, "key is a table"},
		{"UnsetMissing", "", []string{"--global", "--unset", "missing"}, exitKeyNotFound, "key 'missing' not found"},
		{"MissingFeature", "", []string{"--make", "--feature", "ghost", "--list"}, exitFeatureNotFound, "feature 'feature.ghost' not found"},
		{"TypeMismatch", "[global]\n\"build.dir\" = \"x\"\n", []string{"--global", "--add", "build", "y"}, exitTypeMismatch, "type mismatch"},
		{"InvalidKey", "", []string{"--global", "--set", "a..b", "x"}, exitInvalidKey, "invalid key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t, tt.content)
			before := readConfig(t, root)

			res := inProject(root, tt.args...)
			assert.Equal(t, tt.code, res.code, res.stderr)
			assert.Contains(t, res.stderr, tt.stderr)
			assert.Equal(t, before, readConfig(t, root), "failed commands leave the file untouched")
		})
	}

	t.Run("NoConfigDirectory", func(t *testing.T) {
		isolateEnv(t)
		res := inProject(t.TempDir(), "--global", "--list")
		assert.Equal(t, exitDirectoryNotFound, res.code)
		assert.Contains(t, res.stderr, ".c2rust directory not found")
	})

	t.Run("NoConfigFile", func(t *testing.T) {
		isolateEnv(t)
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".c2rust"), 0755))

		res := inProject(root, "--global", "--list")
		assert.Equal(t, exitConfigNotFound, res.code)
		assert.Contains(t, res.stderr, "config.toml file not found")
	})
}

func TestVersionCommand(t *testing.T) {
	isolateEnv(t)

	res := execute("version")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "c2rust-config version dev\n", res.stdout)

	res = execute("version", "--verbose")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Git commit: unknown")
}
