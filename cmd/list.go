package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"cdnctl/internal/api"
	"cdnctl/internal/config"
	"cdnctl/internal/datasource"
	"cdnctl/internal/daterange"
	"cdnctl/internal/pager"
	"cdnctl/internal/query"

	"github.com/spf13/cobra"
)

var (
	listQuery         string
	listPage          int
	listLimit         int
	listCName         string
	listStatus        []string
	listFrom          string
	listTo            string
	listRange         string
	listSort          string
	listName          string
	listDomain        string
	listDomainType    string
	listCacheStrategy string
	listSSL           string
	listHTTP2         string
	listHTTP3         string
	listBackend       string
	listFallback      bool
	listAll           bool
	listMax           int
	listOutput        string
	listOutFile       string
	listColumn        string
	listSilent        bool
	listPrintURL      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List distributions with filters, sorting and pagination",
	Long: `List distributions from the configured backend.

Filters combine with AND. Without any flag the first page of 15 items is
listed, newest first. A dashboard query string can be given with --query and
is refined by the other flags.

Examples:
  cdnctl list --status active,provisioning --sort name
  cdnctl list --range last-30-days --ssl true --all -o csv
  cdnctl list --query 'page=2&cname=cdn-1' --url`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := buildState(cmd, time.Now())
	if err != nil {
		return err
	}
	if listPrintURL {
		fmt.Fprintln(cmd.OutOrStdout(), "?"+query.EncodeParams(s).Encode())
		return nil
	}

	settings := config.Load()
	backend := settings.Backend
	if listBackend != "" {
		backend = listBackend
	}
	kind, err := datasource.ParseKind(backend)
	if err != nil {
		return err
	}
	ds, err := newSource(kind, settings, listFallback, nil)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var progress io.Writer
	if !listSilent {
		progress = cmd.ErrOrStderr()
	}
	page, err := fetchList(ctx, ds, s, progress)
	if err != nil {
		return fmt.Errorf("failed to list distributions: %w", err)
	}

	if err := emitList(cmd.OutOrStdout(), cmd.ErrOrStderr(), page); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	flags := listCmd.Flags()
	flags.StringVarP(&listQuery, "query", "q", "", "Dashboard query string to start from, e.g. 'page=2&status=active'")
	flags.IntVar(&listPage, "page", query.DefaultPage, "Page index to fetch")
	flags.IntVar(&listLimit, "limit", query.DefaultLimit, "Items per page")
	flags.StringVar(&listCName, "cname", "", "Search CNAMEs containing this text")
	flags.StringSliceVar(&listStatus, "status", nil, "Statuses to include: active, provisioning, disabled")
	flags.StringVar(&listFrom, "from", "", "Created on or after this date (YYYY-MM-DD)")
	flags.StringVar(&listTo, "to", "", "Created on or before this date (YYYY-MM-DD)")
	flags.StringVar(&listRange, "range", "", "Created date preset, see 'cdnctl ranges'")
	flags.StringVar(&listSort, "sort", query.DefaultSort, "Sort field, prefixed with - for descending")
	flags.StringVar(&listName, "name", "", "Names containing this text")
	flags.StringVar(&listDomain, "domain", "", "Domains containing this text")
	flags.StringVar(&listDomainType, "domain-type", "", "Domain type: cname, apex, subdomain")
	flags.StringVar(&listCacheStrategy, "cache-strategy", "", "Cache strategy: aggressive, balanced, conservative")
	flags.StringVar(&listSSL, "ssl", "", "SSL enabled: true or false")
	flags.StringVar(&listHTTP2, "http2", "", "HTTP/2 enabled: true or false")
	flags.StringVar(&listHTTP3, "http3", "", "HTTP/3 enabled: true or false")
	flags.StringVar(&listBackend, "backend", "", "Data backend: remote or memory (default from config)")
	flags.BoolVar(&listFallback, "fallback", false, "Use the in-memory collection when the API is unavailable")
	flags.BoolVar(&listAll, "all", false, "Fetch every page from --page on")
	flags.IntVar(&listMax, "max", 10000, "Max records to fetch with --all")
	flags.StringVarP(&listOutput, "output", "o", "text", "Output format: json, yaml, csv, text")
	flags.StringVarP(&listOutFile, "file", "f", "", "Output file path (relative paths are saved to the 'result/' directory)")
	flags.StringVar(&listColumn, "column", "", "Output only the unique values of one column (id, name, cname, domain, status, domain_type, cache_strategy)")
	flags.BoolVar(&listSilent, "silent", false, "Suppress progress and pagination summary")
	flags.BoolVar(&listPrintURL, "url", false, "Print the dashboard query string of the request instead of fetching")
}

// stringFilterFlags maps list flags onto string query parameters.
var stringFilterFlags = []struct {
	flag  string
	param string
	value *string
}{
	{"cname", query.ParamCName, &listCName},
	{"name", query.ParamName, &listName},
	{"domain", query.ParamDomain, &listDomain},
	{"domain-type", query.ParamDomainType, &listDomainType},
	{"cache-strategy", query.ParamCacheStrategy, &listCacheStrategy},
	{"ssl", query.ParamEnableSSL, &listSSL},
	{"http2", query.ParamIsHTTP2, &listHTTP2},
	{"http3", query.ParamIsHTTP3, &listHTTP3},
}

// buildState turns the list flags into a query state. Only flags set on the
// command line override the --query string or the defaults.
func buildState(cmd *cobra.Command, now time.Time) (query.State, error) {
	flags := cmd.Flags()

	s := query.Default()
	if listQuery != "" {
		parsed, err := query.ParseParams(listQuery)
		if err != nil {
			return query.State{}, err
		}
		s = parsed
	}

	for _, f := range stringFilterFlags {
		if flags.Changed(f.flag) {
			s = s.WithFilter(f.param, *f.value)
		}
	}
	if flags.Changed("status") {
		s = s.WithStatuses(listStatus...)
	}

	if flags.Changed("range") {
		r, err := daterange.Resolve(listRange, now)
		if err != nil {
			return query.State{}, err
		}
		s = r.Apply(s)
	}
	for flag, param := range map[string]string{"from": query.ParamCreatedFrom, "to": query.ParamCreatedTo} {
		if !flags.Changed(flag) {
			continue
		}
		v, _ := flags.GetString(flag)
		if v != "" {
			if _, err := time.Parse(query.DateLayout, v); err != nil {
				return query.State{}, fmt.Errorf("invalid --%s date %q, expected YYYY-MM-DD", flag, v)
			}
		}
		s = s.WithFilter(param, v)
	}

	if flags.Changed("sort") {
		s = s.Set(query.ParamSort, listSort)
	}
	if flags.Changed("limit") {
		s = s.WithLimit(listLimit)
	}
	if flags.Changed("page") {
		s = s.WithPage(listPage)
	}
	return s.Normalize(), nil
}

// fetchList fetches the page described by s, or every page with --all.
func fetchList(ctx context.Context, ds datasource.DataSource[api.Distribution], s query.State, progress io.Writer) (*datasource.ResultPage[api.Distribution], error) {
	if !listAll {
		return ds.FetchPage(ctx, s)
	}
	if progress != nil {
		fmt.Fprintf(progress, "Fetching up to %d records...\n", listMax)
	}
	items, total, err := fetchAll(ctx, ds, s, listMax, progress)
	if err != nil {
		return nil, err
	}
	return &datasource.ResultPage[api.Distribution]{
		Items: items,
		Page:  s.Page,
		Limit: s.Limit,
		Total: total,
	}, nil
}

// emitList writes the result to stdout or the output file, followed by the
// pagination summary on stderr.
func emitList(stdout, stderr io.Writer, page *datasource.ResultPage[api.Distribution]) error {
	switch {
	case listOutFile != "":
		path, err := saveToFile(page, listOutFile, listOutput)
		if err != nil {
			return err
		}
		if listSilent {
			fmt.Fprintln(stdout, path)
		} else {
			fmt.Fprintf(stderr, "Saved output to %s\n", path)
		}
	case listColumn != "":
		if err := writeColumn(stdout, page.Items, listColumn, listOutput); err != nil {
			return err
		}
	default:
		if err := writeOutput(stdout, page, listOutput); err != nil {
			return err
		}
	}

	if !listSilent && !listAll {
		p := pager.FromResult(page)
		fmt.Fprintf(stderr, "%s (%s)\n", p.Summary(), p.PageInfo())
	}
	return nil
}
