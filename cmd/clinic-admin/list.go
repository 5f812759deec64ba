package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxviazov/clinic-admin-service/internal/client"
	"github.com/maxviazov/clinic-admin-service/internal/query"
)

// listCmd queries a running server through the filter endpoint and prints the page as JSON.
func listCmd() *cobra.Command {
	var (
		server, search, sortBy, sortDir string
		page, size                      int
		filters                         []string
		timeout, watch                  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "list <module>",
		Short: "Query a list module of a running server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := query.ParseDirection(sortDir)
			if err != nil {
				return err
			}
			b := query.NewRequest(page, size).Search(search).Sort(sortBy, dir)
			for _, f := range filters {
				key, opts, ok := strings.Cut(f, "=")
				if !ok {
					return fmt.Errorf("filter %q: want key=a,b", f)
				}
				b.Filter(key, strings.Split(opts, ",")...)
			}

			l := newLister(client.New(client.Config{BaseURL: server, Timeout: timeout}), args[0])
			if watch <= 0 {
				res, err := l.Run(cmd.Context(), b.Build())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchList(ctx, l, b.Build(), watch, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVar(&server, "server", "http://localhost:8080", "base URL of the server")
	f.IntVar(&page, "page", 0, "zero-based page number")
	f.IntVar(&size, "size", 10, "page size")
	f.StringVar(&search, "search", "", "free-text search term")
	f.StringArrayVar(&filters, "filter", nil, "filter as key=a,b (repeatable)")
	f.StringVar(&sortBy, "sort-by", "", "sort field")
	f.StringVar(&sortDir, "sort-direction", "asc", "asc or desc")
	f.DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	f.DurationVar(&watch, "watch", 0, "re-run the query at this interval until interrupted")
	return cmd
}

func newLister(c *client.Client, module string) *client.Latest[json.RawMessage] {
	return client.NewLatest(func(ctx context.Context, req query.Request) (query.Page[json.RawMessage], error) {
		return client.Filter[json.RawMessage](ctx, c, module, req)
	})
}

// watchList starts req every interval until ctx ends. A query still running
// when the next tick fires is superseded and its result is dropped.
func watchList(ctx context.Context, l *client.Latest[json.RawMessage], req query.Request, every time.Duration, out, errOut io.Writer) error {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	run := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := l.Run(ctx, req)
			if errors.Is(err, client.ErrSuperseded) || ctx.Err() != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(errOut, "query failed: %v\n", err)
				if last, ok := l.Last(); ok {
					fmt.Fprintf(errOut, "last good page: %d of %d (%d total)\n", last.Number+1, last.TotalPages, last.TotalElements)
				}
				return
			}
			_ = printJSON(out, page)
		}()
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	run()
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			wg.Wait()
			if _, ok := l.Last(); !ok {
				return l.Err()
			}
			return nil
		case <-ticker.C:
			run()
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
