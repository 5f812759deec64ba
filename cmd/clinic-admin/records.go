package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxviazov/clinic-admin-service/internal/client"
)

type remoteFlags struct {
	server  string
	timeout time.Duration
}

func (r *remoteFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.server, "server", "http://localhost:8080", "base URL of the server")
	cmd.Flags().DurationVar(&r.timeout, "timeout", 10*time.Second, "request timeout")
}

func (r *remoteFlags) client() *client.Client {
	return client.New(client.Config{BaseURL: r.server, Timeout: r.timeout})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q: want a positive integer", s)
	}
	return id, nil
}

// getCmd fetches one record of a module and prints it as JSON.
func getCmd() *cobra.Command {
	var remote remoteFlags
	cmd := &cobra.Command{
		Use:   "get <module> <id>",
		Short: "Fetch one record from a running server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			rec, err := client.Get[json.RawMessage](cmd.Context(), remote.client(), args[0], id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	remote.bind(cmd)
	return cmd
}

// createCmd posts a JSON record read from --file or stdin and prints what the server stored.
func createCmd() *cobra.Command {
	var (
		remote remoteFlags
		file   string
	)
	cmd := &cobra.Command{
		Use:   "create <module>",
		Short: "Create a record on a running server from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			raw, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			if !json.Valid(raw) {
				return fmt.Errorf("record is not valid JSON")
			}
			rec, err := client.Create(cmd.Context(), remote.client(), args[0], json.RawMessage(raw))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	remote.bind(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file to read, - for stdin")
	return cmd
}

// deleteCmd removes one record of a module.
func deleteCmd() *cobra.Command {
	var remote remoteFlags
	cmd := &cobra.Command{
		Use:   "delete <module> <id>",
		Short: "Delete one record on a running server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := remote.client().Delete(cmd.Context(), args[0], id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%d\n", args[0], id)
			return nil
		},
	}
	remote.bind(cmd)
	return cmd
}
