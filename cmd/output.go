package cmd

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cdnctl/internal/api"
	"cdnctl/internal/datasource"

	"gopkg.in/yaml.v3"
)

const resultDir = "result"

var csvHeader = []string{
	"ID", "Name", "CNAME", "Domain", "Status", "Domain Type",
	"Cache Strategy", "SSL", "HTTP2", "HTTP3", "Created At", "Updated At",
}

func csvRow(d api.Distribution) []string {
	return []string{
		d.ID, d.Name, d.CName, d.Domain, d.Status, d.DomainType,
		d.CacheStrategy,
		strconv.FormatBool(d.EnableSSL),
		strconv.FormatBool(d.IsHTTP2),
		strconv.FormatBool(d.IsHTTP3),
		d.CreatedAt, d.UpdatedAt,
	}
}

// columnValue returns the value of a single output column.
func columnValue(d api.Distribution, column string) string {
	switch column {
	case "id":
		return d.ID
	case "name":
		return d.Name
	case "cname":
		return d.CName
	case "domain":
		return d.Domain
	case "status":
		return d.Status
	case "domain_type":
		return d.DomainType
	case "cache_strategy":
		return d.CacheStrategy
	}
	return ""
}

// writeOutput renders page in format: json, yaml, csv or text. Unknown
// formats are an error.
func writeOutput(w io.Writer, page *datasource.ResultPage[api.Distribution], format string) error {
	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(page)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(page); err != nil {
			return err
		}
		return encoder.Close()
	case "csv":
		writer := csv.NewWriter(w)
		writer.Write(csvHeader)
		for _, d := range page.Items {
			writer.Write(csvRow(d))
		}
		writer.Flush()
		return writer.Error()
	case "text":
		writer := bufio.NewWriter(w)
		for _, d := range page.Items {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.CName, d.Status, d.CreatedAt)
		}
		return writer.Flush()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeColumn prints the sorted unique non-empty values of one column, as a
// JSON array for the json format and one per line otherwise.
func writeColumn(w io.Writer, items []api.Distribution, column, format string) error {
	column = strings.ToLower(column)
	seen := make(map[string]bool)
	values := []string{}
	for _, d := range items {
		val := columnValue(d, column)
		if val != "" && !seen[val] {
			seen[val] = true
			values = append(values, val)
		}
	}
	sort.Strings(values)

	if strings.ToLower(format) == "json" {
		output, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
	return nil
}

// saveToFile writes page to path, relative paths landing in the result
// directory, and returns the absolute path written.
func saveToFile(page *datasource.ResultPage[api.Distribution], path, format string) (string, error) {
	path = resolvePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := writeOutput(file, page, format); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

func resolvePath(path string) string {
	if !filepath.IsAbs(path) && !strings.HasPrefix(path, resultDir+string(os.PathSeparator)) && !strings.HasPrefix(path, resultDir+"/") {
		return filepath.Join(resultDir, path)
	}
	return path
}
