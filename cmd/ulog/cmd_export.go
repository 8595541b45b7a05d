package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var flags stateFlags
	var outPath string
	var urlOnly bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching records as CSV",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			st, err := flags.state()
			if err != nil {
				fatal("invalid criteria", err)
			}
			exportURL := apiClient.Logs.ExportURL(st)
			if urlOnly {
				fmt.Println(exportURL)
				return
			}

			req, err := http.NewRequest(http.MethodGet, exportURL, nil)
			if err != nil {
				fatal("export", err)
			}
			if flagKey != "" {
				req.Header.Set("Authorization", "Bearer "+flagKey)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fatal("export", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				fatal("export", fmt.Errorf("status %d: %s", resp.StatusCode, body))
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					fatal("export", err)
				}
				defer f.Close()
				out = f
			}
			if _, err := io.Copy(out, resp.Body); err != nil {
				fatal("export", err)
			}
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write CSV to file instead of stdout")
	cmd.Flags().BoolVar(&urlOnly, "url-only", false, "Print the export URL without downloading")
	return cmd
}
