package cmd

import (
	"context"
	"fmt"
	"io"

	"cdnctl/internal/datasource"
	"cdnctl/internal/query"
)

// fetchAll walks pages from q.Page on until the last page, an empty page or
// maxItems items, and returns the items with the total reported by the
// source. An error on the first page is returned; a later one stops the walk
// and keeps what was fetched. Progress goes to progress when non-nil.
func fetchAll[T any](ctx context.Context, ds datasource.DataSource[T], q query.State, maxItems int, progress io.Writer) ([]T, int, error) {
	q = q.Normalize()
	all := []T{}
	total := 0

	for {
		page, err := ds.FetchPage(ctx, q)
		if err != nil {
			if len(all) == 0 {
				return nil, 0, err
			}
			if progress != nil {
				fmt.Fprintf(progress, "\nWarning: Stopped fetching at page %d due to error: %v", q.Page, err)
			}
			break
		}
		total = page.Total
		if len(page.Items) == 0 {
			break
		}

		all = append(all, page.Items...)
		if progress != nil {
			fmt.Fprintf(progress, "\rFetched %d of %d records...", len(all), total)
		}

		if maxItems > 0 && len(all) >= maxItems {
			all = all[:maxItems]
			break
		}
		if q.Page >= page.TotalPages() {
			break
		}
		q.Page++
	}
	if progress != nil {
		fmt.Fprintln(progress, "\nDone.")
	}
	return all, total, nil
}
