// Package logger provides the small logging surface shared by the CLI
// and the MCP server front ends.
package logger
