package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/five82/beerdex/internal/catalog"
	"github.com/five82/beerdex/internal/view"
)

const (
	formatTable = "table"
	formatPlain = "plain"
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	listFormats = []string{formatTable, formatPlain, formatJSON, formatYAML}
	showFormats = []string{formatText, formatJSON, formatYAML}
)

// resolveFormat validates name against allowed. An empty name picks the
// first format on a terminal and the second otherwise.
func resolveFormat(name string, allowed []string, tty bool) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		if tty || len(allowed) < 2 {
			return allowed[0], nil
		}
		return allowed[1], nil
	}
	if !slices.Contains(allowed, name) {
		return "", fmt.Errorf("unknown format %q (want %s)", name, strings.Join(allowed, ", "))
	}
	return name, nil
}

func countLine(n int) string {
	return fmt.Sprintf("Number of beers in list: %d", n)
}

func writeList(w io.Writer, vm view.ViewModel, format string) error {
	beers := vm.Beers
	if beers == nil {
		beers = []catalog.Beer{}
	}

	switch format {
	case formatJSON:
		return writeJSON(w, beers)
	case formatYAML:
		return writeYAML(w, beers)
	case formatPlain:
		for _, b := range beers {
			fmt.Fprintln(w, b.String())
		}
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "NAME\tALCOHOL\tID")
		for _, b := range beers {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, b.AlcoholLabel(), b.ID)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintln(w, countLine(vm.Count))
	return err
}

func writeBeer(w io.Writer, b catalog.Beer, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, b)
	case formatYAML:
		return writeYAML(w, b)
	}

	fmt.Fprintln(w, b.Name)
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", b.Description)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range []struct{ label, value string }{
		{"Image", b.ImagePath()},
		{"Label", b.LabelPath()},
		{"Alcohol content", b.AlcoholLabel()},
		{"Brewery", b.Brewery},
		{"Availability", b.Availability},
		{"Style", b.Style},
		{"Serving instructions", b.Serving},
	} {
		value := row.value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.label, value)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
