package mcpserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/schemaforge/schemaforge/logger"
)

// Run starts the stdio MCP server and blocks until the client
// disconnects or a termination signal arrives. Diagnostics go through
// log, which must stay off stdout; a nil log discards them.
func Run(version string, log logger.Logger) error {
	if log == nil {
		log = logger.NewMCPLogger(os.Stderr, true)
	}

	s := server.NewMCPServer(
		"schemaforge",
		version,
		server.WithToolCapabilities(true),
	)
	tools := createTools()
	for _, td := range tools {
		s.AddTool(td.Tool, server.ToolHandlerFunc(td.Handler))
	}
	log.Printf("schemaforge %s: serving %d tool(s) on stdio", version, len(tools))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		log.Println("termination signal received, shutting down")
		cancel()
	}()

	stdio := server.NewStdioServer(s)
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdio.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Printf("stdio server stopped: %v", err)
			return err
		}
		log.Println("client disconnected")
		return nil
	case <-ctx.Done():
		return nil
	}
}
