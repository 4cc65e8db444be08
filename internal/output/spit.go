// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/csvctl/csvctl/internal/config"
)

// Spit renders a buffered result set per the --format flag. The header may
// be nil for headerless input, in which case json/yaml keys fall back to
// stringified column positions and the table gets no title row.
func Spit(header []string, rows [][]string, cmd *cli.Command, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	switch cmd.String("format") {
	case "json":
		// TODO Keep column order in the JSON document instead of relying on
		// marshaled map key sorting.
		jsonOutput, err := json.Marshal(datasetMaps(header, rows))
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		jsonOutput = append(jsonOutput, '\n')
		_, err = w.Write(jsonOutput)
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(datasetMaps(header, rows))
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(header, rows, cmd, w)
		return nil
	}
}

// TableWriter renders the result set in tabular form honoring the color and
// titles options. Output is written to w. If w is nil, os.Stdout is used.
func TableWriter(header []string, rows [][]string, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(rows) == 0 {
		return
	}

	// We initialize the table styles.
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// And then color styles if --color is present.
	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(1)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	// We add column titles if requested and available.
	if cmd.Bool("titles") && header != nil {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(header...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// datasetMaps converts positional rows into keyed maps for the marshaling
// formats, keyed by header title or column position.
func datasetMaps(header []string, rows [][]string) []map[string]string {
	dataset := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		entry := make(map[string]string, len(row))
		for i, field := range row {
			key := strconv.Itoa(i)
			if i < len(header) {
				key = header[i]
			}
			entry[key] = field
		}
		dataset = append(dataset, entry)
	}
	return dataset
}

// getColors returns configured color values for table rendering. Each color
// is selected based on terminal background color and brightness so that we
// can make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the
	// user to choose appropriate colors for their theme. If not found, pick
	// a reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
