package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.fractalqb.de/fractalqb/shmk/shmkore"
	"gopkg.in/yaml.v3"
)

type targetList struct {
	Project string   `json:"project" yaml:"project"`
	Kind    string   `json:"project_kind" yaml:"project_kind"`
	Default string   `json:"default_target" yaml:"default_target"`
	Targets []string `json:"targets" yaml:"targets"`
}

func listTargets(w io.Writer, format string, prj *shmkore.Project) error {
	ls := targetList{
		Project: prj.String(),
		Kind:    prj.Kind,
		Default: prj.Default,
		Targets: prj.Targets,
	}
	ls.Project = strings.TrimSuffix(ls.Project, ":")
	switch format {
	case "", "table":
		return listTargetsTable(w, &ls)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&ls)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(&ls)
	}
	return usageError{fmt.Errorf("unknown list format '%s'", format)}
}

func listTargetsTable(w io.Writer, ls *targetList) error {
	fmt.Fprintf(w, "%s project %s\n", ls.Kind, ls.Project)
	maxLen := 0
	for _, t := range ls.Targets {
		maxLen = max(maxLen, len(t))
	}
	for _, t := range ls.Targets {
		if t == ls.Default {
			fmt.Fprintf(w, "  %-*s  (default)\n", maxLen, t)
		} else {
			fmt.Fprintf(w, "  %s\n", t)
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d targets\n", len(ls.Targets))
	return err
}
