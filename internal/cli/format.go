package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/samvad-comments/internal/config"
	"github.com/samvad-hq/samvad-comments/pkg/comments"
)

// printComments writes list in the configured output format.
func printComments(w io.Writer, format string, list []comments.Comment) error {
	if list == nil {
		list = []comments.Comment{}
	}
	switch format {
	case config.OutputJSON:
		return printJSON(w, list)
	case config.OutputYAML:
		return printYAML(w, list)
	default:
		return printTable(w, list)
	}
}

// printComment writes a single comment in the configured output format.
func printComment(w io.Writer, format string, c comments.Comment) error {
	switch format {
	case config.OutputJSON:
		return printJSON(w, c)
	case config.OutputYAML:
		return printYAML(w, c)
	default:
		return printTable(w, []comments.Comment{c})
	}
}

// printJSON marshals v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// printTable prints comments as an aligned ID/NAME/TEXT table.
func printTable(w io.Writer, list []comments.Comment) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No comments.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTEXT")
	for _, c := range list {
		id := "-"
		if v, ok := c.ID(); ok {
			id = strconv.FormatInt(v, 10)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", id, oneLine(c.Name()), oneLine(c.Text()))
	}
	return tw.Flush()
}

// oneLine keeps multi-line text from breaking table rows.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
