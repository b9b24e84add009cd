package main

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zapier/ghcopy/cmd"
)

type option struct {
	Option  string
	Env     string
	Usage   string
	Default string
}

type command struct {
	Use   string
	Short string
	Flags []option
}

var UsageEnvVar = regexp.MustCompile(` \(GHCOPY_[_A-Z0-9]+\)`)

const usageTemplate = `# ghcopy usage

Every option can also be set through the listed environment variable.

## Global options

| Option | Env | Default | Description |
|--------|-----|---------|-------------|
{{- range .Global }}
| ` + "`--{{ .Option }}`" + ` | ` + "`{{ .Env }}`" + ` | {{ .Default }} | {{ .Usage }} |
{{- end }}
{{ range .Commands }}
## {{ .Use }}

{{ .Short }}
{{ if .Flags }}
| Option | Default | Description |
|--------|---------|-------------|
{{- range .Flags }}
| ` + "`--{{ .Option }}`" + ` | {{ .Default }} | {{ .Usage }} |
{{- end }}
{{ end }}
{{- end }}`

func main() {
	outputFilename := filepath.Join("docs", "usage.md")

	t, err := template.New("usage").Parse(usageTemplate)
	if err != nil {
		panic(err)
	}

	var commands []command
	for _, c := range cmd.RootCmd.Commands() {
		if !documented(c) {
			continue
		}
		commands = append(commands, command{
			Use:   c.Use,
			Short: c.Short,
			Flags: collectFlags(c.Flags()),
		})
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Use < commands[j].Use })

	if err = os.MkdirAll(filepath.Dir(outputFilename), 0o755); err != nil {
		panic(err)
	}

	f, err := os.Create(outputFilename)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	type templateVars struct {
		Global   []option
		Commands []command
	}
	if err = t.Execute(f, templateVars{
		Global:   collectFlags(cmd.RootCmd.PersistentFlags()),
		Commands: commands,
	}); err != nil {
		panic(err)
	}
}

func collectFlags(flags *pflag.FlagSet) []option {
	var options []option
	flags.VisitAll(func(flag *pflag.Flag) {
		options = append(options, option{
			Default: flag.DefValue,
			Env:     cmd.ViperNameToEnv(flag.Name),
			Option:  flag.Name,
			Usage:   strings.TrimSpace(UsageEnvVar.ReplaceAllString(flag.Usage, "")),
		})
	})
	sort.Slice(options, func(i, j int) bool { return options[i].Option < options[j].Option })
	return options
}

func documented(c *cobra.Command) bool {
	return !c.Hidden && c.Name() != "help" && c.Name() != "completion"
}
