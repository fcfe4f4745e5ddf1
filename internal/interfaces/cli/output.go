package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func validateOutputFormat(output string) error {
	if output != "table" && output != "json" {
		return fmt.Errorf("Ausgabeformat %q nicht unterstützt: table oder json", output)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table escribe filas alineadas por columnas.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeRow(tw, header)
	for _, r := range rows {
		writeRow(tw, r)
	}
	return tw.Flush()
}

// details escribe pares clave/valor.
func details(w io.Writer, pairs [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", p[0], p[1])
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cols []string) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

// sortGerman ordena por key con la colación alemana (ä junto a a, sin distinguir mayúsculas).
func sortGerman[T any](items []T, key func(T) string) {
	col := collate.New(language.German, collate.IgnoreCase)
	slices.SortStableFunc(items, func(x, y T) int {
		return col.CompareString(key(x), key(y))
	})
}

func yesNo(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
