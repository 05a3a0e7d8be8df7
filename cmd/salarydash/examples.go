package main

import (
	"fmt"
	"io"
)

// printExamples displays usage examples for the program
func printExamples(w io.Writer) {
	fmt.Fprintln(w, "\n📋 salarydash usage examples 📋")

	fmt.Fprintln(w, "\n1. Print the terminal dashboard for the default input files in the current directory:")
	fmt.Fprintln(w, "   salarydash")

	fmt.Fprintln(w, "\n2. Use explicit input files, 40 histogram bins, and no banner:")
	fmt.Fprintln(w, "   salarydash report --records data/dataset_salarios_con_cluster.csv --categories data/resumen_salarios_por_categoria.csv --bins 40 --silence")

	fmt.Fprintln(w, "\n3. Serve the dashboard on port 9000 and reload when the CSV files change:")
	fmt.Fprintln(w, "   salarydash serve --port 9000 --watch")

	fmt.Fprintln(w, "\n4. Export the formatted summary table as CSV:")
	fmt.Fprintln(w, "   salarydash export --table summary --format csv -o resumen.csv")

	fmt.Fprintln(w, "\n5. Export the category x cluster aggregates as JSON from a published dataset:")
	fmt.Fprintln(w, "   salarydash export --table clusters --format json --records https://example.org/salarios.csv --categories https://example.org/resumen.csv")

	fmt.Fprintln(w, "\nFor more information, visit: https://github.com/fr4nk3nst1ner/salarydash")
}
