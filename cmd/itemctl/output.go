package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// parseFormat validates a --format value.
func parseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table, json or yaml)", s)
	}
}

// printer renders command results in a single format.
type printer struct {
	format Format
	out    io.Writer
}

func (p printer) items(items []model.Item) error {
	if p.format == FormatTable {
		return p.table(items)
	}
	if items == nil {
		items = []model.Item{}
	}
	return p.encode(model.ItemList{Items: items})
}

func (p printer) item(item *model.Item) error {
	if p.format == FormatTable {
		return p.table([]model.Item{*item})
	}
	return p.encode(item)
}

func (p printer) message(msg string) error {
	if p.format == FormatTable {
		_, err := fmt.Fprintln(p.out, msg)
		return err
	}
	return p.encode(model.MessageResponse{Message: msg})
}

func (p printer) encode(v any) error {
	switch p.format {
	case FormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return nil
	}
}

func (p printer) table(items []model.Item) error {
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVALUE")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", item.ID, item.Name, item.Value)
	}
	return tw.Flush()
}
