package main

// Generated scripts are checked for content markers only; running them
// needs the target shell.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_draftkit_completions",
				"complete -F _draftkit_completions draftkit",
				"compgen",
				"paginate preflight export share open import inspect serve doctor completion version help",
				"--format|-f)",
				"zine book catalogue report custom",
				"--output|-o)",
				"compgen -d",
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef draftkit",
				"_draftkit",
				"_arguments",
				"_describe",
				"'export:Export documents to PDF'",
				"{-f,--format}'[layout format\\: zine, book, catalogue, report, custom]:format:(zine book catalogue report custom)'",
				"-g '*.yaml'",
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c draftkit",
				"__fish_draftkit_needs_command",
				"__fish_draftkit_using_command",
				"-a serve -d 'Run the HTTP API'",
				"-l format -s f -x -a 'zine book catalogue report custom'",
				"-l config -s c -r -F",
			},
		},
		{
			name:  "powershell",
			shell: ShellPowerShell,
			wantContains: []string{
				"Register-ArgumentCompleter -Native -CommandName draftkit",
				"'inspect' = 'Validate a PDF'",
				"'--max-body'",
				"CompletionResult",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q) error = %v", tt.shell, err)
			}
			out := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(out, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "tcsh")
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an unsupported shell", buf.Len())
	}
}

func TestGetCommands_FlagsFromFlagSets(t *testing.T) {
	t.Parallel()

	byName := map[string]commandDef{}
	for _, c := range getCommands() {
		byName[c.Name] = c
	}

	export, ok := byName["export"]
	if !ok {
		t.Fatal("export command missing")
	}
	flags := map[string]flagDef{}
	for _, f := range export.Flags {
		flags[f.Long] = f
	}
	for _, name := range []string{"output", "workers", "force", "gate", "html-only", "quality", "watermark", "timeout", "config"} {
		if _, ok := flags[name]; !ok {
			t.Errorf("export flag --%s missing", name)
		}
	}
	if flags["output"].Type != flagDir || flags["output"].Short != "o" {
		t.Errorf("--output = %+v, want directory completion with -o", flags["output"])
	}
	if flags["force"].Type != flagBool {
		t.Errorf("--force type = %v, want bool", flags["force"].Type)
	}
	if flags["config"].Type != flagFile || flags["config"].FileGlob != "*.yaml,*.yml" {
		t.Errorf("--config = %+v", flags["config"])
	}

	if !strings.Contains(byName["import"].FilePattern, "*.html") || !strings.Contains(byName["import"].FilePattern, "*.png") {
		t.Errorf("import pattern = %q", byName["import"].FilePattern)
	}
	if byName["inspect"].FilePattern != "*.pdf" {
		t.Errorf("inspect pattern = %q", byName["inspect"].FilePattern)
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "")
	if code := te.run("completion"); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(te.stdout.String(), "Usage: draftkit completion <shell>") {
		t.Errorf("stdout = %q", te.stdout)
	}

	te = newTestEnv(t, "")
	if code := te.run("completion", "tcsh"); code != ExitUsage {
		t.Errorf("unsupported shell exit code = %d, want %d", code, ExitUsage)
	}
}
