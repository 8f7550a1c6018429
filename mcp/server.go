// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mcp serves the tool registry over the Model Context Protocol:
// JSON-RPC 2.0 on newline-delimited stdio.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/poiesic/schoolbridge/tools"
)

// ErrRegistryRequired is returned when a server is built without a tool
// registry.
var ErrRegistryRequired = errors.New("tool registry is required")

const serverName = "schoolbridge"

// Server answers MCP requests against a tool registry.
type Server struct {
	registry    *tools.Registry
	version     string
	initialized bool
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the logger. A nil logger restores the default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "mcp")
		return nil
	}
}

// WithVersion sets the version reported to clients during initialization.
func WithVersion(version string) Option {
	return func(s *Server) error {
		if version != "" {
			s.version = version
		}
		return nil
	}
}

func NewServer(registry *tools.Registry, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	s := &Server{
		registry: registry,
		version:  "dev",
		logger:   slog.Default().With("component", "mcp"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Serve runs the server on stdin and stdout until EOF or context
// cancellation.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, os.Stdin, os.Stdout)
}

// Run processes newline-delimited JSON-RPC requests from input and writes
// responses to output until input reaches EOF or the context is cancelled.
func (s *Server) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	scanner := bufio.NewScanner(input)
	// Tool calls can carry whole documents.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	encoder := json.NewEncoder(output)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("unparseable request line", "err", err)
			if writeErr := writeError(encoder, json.RawMessage("null"), codeParseError, "parse error: "+err.Error()); writeErr != nil {
				return writeErr
			}
			continue
		}

		if req.JSONRPC != "2.0" {
			if !req.isNotification() {
				if writeErr := writeError(encoder, req.ID, codeInvalidRequest, "unsupported JSON-RPC version"); writeErr != nil {
					return writeErr
				}
			}
			continue
		}

		// Notifications expect no response.
		if req.isNotification() {
			continue
		}

		if err := s.dispatch(ctx, encoder, &req); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func (s *Server) dispatch(ctx context.Context, encoder *json.Encoder, req *request) error {
	s.logger.Debug("dispatching request", "method", req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(encoder, req)
	case "ping":
		return writeResult(encoder, req.ID, map[string]any{})
	case "tools/list":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsList(encoder, req)
	case "tools/call":
		if !s.initialized {
			return writeError(encoder, req.ID, codeInvalidRequest, "server not initialized (call initialize first)")
		}
		return s.handleToolsCall(ctx, encoder, req)
	default:
		return writeError(encoder, req.ID, codeMethodNotFound, "unknown method: "+req.Method)
	}
}

func (s *Server) handleInitialize(encoder *json.Encoder, req *request) error {
	// The server always reports its own protocol version. Clients decide
	// whether they can proceed with it.
	s.initialized = true

	return writeResult(encoder, req.ID, initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: serverCapabilities{
			Tools: &toolCapability{},
		},
		ServerInfo: serverInfo{
			Name:    serverName,
			Version: s.version,
		},
	})
}

func (s *Server) handleToolsList(encoder *json.Encoder, req *request) error {
	defs := s.registry.Definitions()
	descriptions := make([]toolDescription, 0, len(defs))
	for _, def := range defs {
		descriptions = append(descriptions, toolDescription{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		})
	}
	return writeResult(encoder, req.ID, toolsListResult{Tools: descriptions})
}

func (s *Server) handleToolsCall(ctx context.Context, encoder *json.Encoder, req *request) error {
	if len(req.Params) == 0 {
		return writeError(encoder, req.ID, codeInvalidParams, "params required for tools/call")
	}

	var params toolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return writeError(encoder, req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	text := s.registry.Call(ctx, params.Name, params.Arguments)

	return writeResult(encoder, req.ID, toolsCallResult{
		Content: []contentBlock{{Type: "text", Text: text}},
	})
}

func writeResult(encoder *json.Encoder, id json.RawMessage, result any) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func writeError(encoder *json.Encoder, id json.RawMessage, code int, message string) error {
	return encoder.Encode(response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}
