package probe

import "os"

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`mindscan probe
==============

Replays known assessments against a running mindscan server and checks the
returned stress levels, depression levels and alerts.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -rounds int
        Times each scenario is submitted (default 25)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every passing response
  -help
        Show this help message

Examples:
  go run ./cmd/probe -rounds 200 -workers 16 -url http://localhost:8080
`)
}
