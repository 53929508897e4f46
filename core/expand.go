package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

// expandFuncs are available inside source parameters, e.g.
//
//	token: "{{ env `API_TOKEN` }}"
//	password: "{{ file `/run/secrets/db_password` }}"
//	location: "{{ envOr `SALES_CSV` `data/sales.csv` }}"
var expandFuncs = template.FuncMap{
	"env": os.Getenv,
	"envOr": func(name, fallback string) string {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		return fallback
	},
	"file": func(path string) (string, error) {
		b, err := os.ReadFile(path)
		return strings.TrimRight(string(b), "\r\n"), err
	},
	"exec": runCommand,
}

// runCommand runs a command line and returns its trimmed output.
// Lines containing a pipe go through the shell.
func runCommand(line string) (string, error) {
	var cmd *exec.Cmd
	if strings.Contains(line, " | ") {
		cmd = exec.Command("sh", "-c", line)
	} else {
		fields := strings.Fields(line)
		if len(fields) < 1 {
			return "", errors.New("no command provided")
		}
		cmd = exec.Command(fields[0], fields[1:]...)
	}

	out, err := cmd.Output()
	return strings.TrimSpace(string(out)), err
}

func expand(value string) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}

	tmpl, err := template.New("source_param").Funcs(expandFuncs).Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandOrDefault keeps the raw value when it doesn't expand.
func expandOrDefault(value string) string {
	ex, err := expand(value)
	if err != nil {
		return value
	}
	return ex
}
