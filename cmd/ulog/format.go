package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/phersys/unifi-log-insight-sub001/client"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.Join(parts, "  "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

func output(v any) {
	if flagFmt == "json" {
		formatJSON(v)
		return
	}
	switch t := v.(type) {
	case *client.ResultPage:
		printLogTable(t.Data)
		fmt.Printf("page %d/%d, %d total\n", t.Page, t.Pages, t.Total)
	case []client.LogRecord:
		printLogTable(t)
	default:
		formatJSON(v)
	}
}

func printLogTable(recs []client.LogRecord) {
	headers := []string{"TIME", "TYPE", "ACTION", "DIR", "SOURCE", "DEST", "RULE", "IFACE"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Timestamp.Local().Format(time.DateTime),
			r.Type, r.Action, r.Direction,
			hostPort(r.SourceIP, r.SrcPort),
			hostPort(r.DestIP, r.DstPort),
			r.Rule, r.Interface,
		})
	}
	formatTable(headers, rows)
}

func hostPort(ip string, port int) string {
	if port == 0 {
		return ip
	}
	return fmt.Sprintf("%s:%d", ip, port)
}
