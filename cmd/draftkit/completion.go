package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-draftkit"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string
	FileGlob string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool
	FilePattern string
}

// completionMeta holds completion hints. Flag names, types and
// descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

var flagCompletionMeta = map[string]completionMeta{
	"format": {Values: []string{
		string(draftkit.LayoutZine),
		string(draftkit.LayoutBook),
		string(draftkit.LayoutCatalogue),
		string(draftkit.LayoutReport),
		string(draftkit.LayoutCustom),
	}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"into":   {FileGlob: "*.md,*.markdown,*.txt"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet converts the flags of fs to completion entries.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the flag sets the commands parse with.
func getCommands() []commandDef {
	w := io.Discard
	documents := "*.md,*.markdown,*.txt"
	return []commandDef{
		{Name: "paginate", Desc: "Split a document into pages", Flags: extractFlagsFromFlagSet(paginateFlagSet(w, &paginateFlags{})), TakesFiles: true, FilePattern: documents},
		{Name: "preflight", Desc: "Check a document before export", Flags: extractFlagsFromFlagSet(preflightFlagSet(w, &preflightFlags{})), TakesFiles: true, FilePattern: documents},
		{Name: "export", Desc: "Export documents to PDF", Flags: extractFlagsFromFlagSet(exportFlagSet(w, &exportFlags{})), TakesFiles: true, FilePattern: documents},
		{Name: "share", Desc: "Create a share link for a document", Flags: extractFlagsFromFlagSet(shareFlagSet(w, &shareFlags{})), TakesFiles: true, FilePattern: documents},
		{Name: "open", Desc: "Decode a share link", Flags: extractFlagsFromFlagSet(openFlagSet(w, &openFlags{}))},
		{Name: "import", Desc: "Import a file into a document", Flags: extractFlagsFromFlagSet(importFlagSet(w, &importFlags{})), TakesFiles: true, FilePattern: importPattern()},
		{Name: "inspect", Desc: "Validate a PDF", Flags: extractFlagsFromFlagSet(inspectFlagSet(w, &inspectFlags{})), TakesFiles: true, FilePattern: "*.pdf"},
		{Name: "serve", Desc: "Run the HTTP API", Flags: extractFlagsFromFlagSet(serveFlagSet(w, &serveFlags{}))},
		{Name: "doctor", Desc: "Check system configuration", Flags: extractFlagsFromFlagSet(doctorFlagSet(w, &doctorFlags{}))},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

func importPattern() string {
	exts := draftkit.SupportedImportExtensions()
	globs := make([]string, len(exts))
	for i, ext := range exts {
		globs[i] = "*" + ext
	}
	return strings.Join(globs, ",")
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func globs(pattern string) []string {
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, ",")
}

func generateBash(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for draftkit\n\n")
	b.WriteString("_draftkit_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return 0\n    fi\n\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		if c.Name == "completion" {
			b.WriteString("        completion)\n")
			b.WriteString("            COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"${cur}\") )\n")
			b.WriteString("            ;;\n")
			continue
		}
		if c.Name == "help" {
			b.WriteString("        help)\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
			b.WriteString("            ;;\n")
			continue
		}
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            case \"${prev}\" in\n")
		var all []string
		for _, f := range c.Flags {
			names := flagNames(f)
			all = append(all, names...)
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "                %s)\n                    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n                    return 0\n                    ;;\n",
					strings.Join(names, "|"), strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "                %s)\n                    COMPREPLY=( $(compgen -f -- \"${cur}\") )\n                    return 0\n                    ;;\n",
					strings.Join(names, "|"))
			case flagDir:
				fmt.Fprintf(&b, "                %s)\n                    COMPREPLY=( $(compgen -d -- \"${cur}\") )\n                    return 0\n                    ;;\n",
					strings.Join(names, "|"))
			case flagString, flagInt:
				fmt.Fprintf(&b, "                %s)\n                    return 0\n                    ;;\n", strings.Join(names, "|"))
			}
		}
		b.WriteString("            esac\n")
		b.WriteString("            if [[ \"${cur}\" == -* ]]; then\n")
		fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(all, " "))
		b.WriteString("                return 0\n            fi\n")
		if c.TakesFiles {
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _draftkit_completions draftkit\n")
	return b.String()
}

// zshEscape escapes characters that have meaning inside _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef draftkit\n\n")
	b.WriteString("_draftkit() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("        completion)\n            _values 'shell' bash zsh fish powershell\n            ;;\n")
			continue
		case c.Name == "help":
			b.WriteString("        help)\n            _describe 'command' commands\n            ;;\n")
			continue
		case len(c.Flags) == 0 && !c.TakesFiles:
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments -s \\\n")
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
			case flagFile:
				var parts []string
				for _, g := range globs(f.FileGlob) {
					parts = append(parts, "-g '"+g+"'")
				}
				action = ":file:_files " + strings.Join(parts, " ")
			case flagDir:
				action = ":directory:_files -/"
			case flagString, flagInt:
				action = ":" + f.Long + ":"
			}
			spec := "--" + f.Long
			if f.Short != "" {
				spec = "{-" + f.Short + ",--" + f.Long + "}"
				fmt.Fprintf(&b, "                %s'[%s]%s' \\\n", spec, zshEscape(f.Desc), action)
				continue
			}
			fmt.Fprintf(&b, "                '%s[%s]%s' \\\n", spec, zshEscape(f.Desc), action)
		}
		if c.TakesFiles {
			var parts []string
			for _, g := range globs(c.FilePattern) {
				parts = append(parts, "-g '"+g+"'")
			}
			fmt.Fprintf(&b, "                '*:file:_files %s'\n", strings.Join(parts, " "))
		} else {
			b.WriteString("                '*: :'\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _draftkit draftkit\n")
	return b.String()
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder
	names := strings.Join(commandNames(cmds), " ")
	b.WriteString("# fish completion for draftkit\n\n")
	b.WriteString("function __fish_draftkit_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_draftkit_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c draftkit -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c draftkit -n __fish_draftkit_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "complete -c draftkit -n '__fish_draftkit_using_command help' -a '%s'\n", names)
	b.WriteString("complete -c draftkit -n '__fish_draftkit_using_command completion' -a 'bash zsh fish powershell'\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		b.WriteString("\n")
		cond := fmt.Sprintf("'__fish_draftkit_using_command %s'", c.Name)
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c draftkit -n %s -F\n", cond)
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c draftkit -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagString, flagInt:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# powershell completion for draftkit\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName draftkit -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		var names []string
		for _, f := range c.Flags {
			for _, n := range flagNames(f) {
				names = append(names, "'"+n+"'")
			}
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(names, ", "))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | Sort-Object | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $commands[$_])\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n    }\n\n")
	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    if ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: draftkit completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(draftkit completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(draftkit completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    draftkit completion fish > ~/.config/fish/completions/draftkit.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    draftkit completion powershell | Out-String | Invoke-Expression")
}
