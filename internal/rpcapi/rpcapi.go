// Package rpcapi exposes the toc loader as a JSON-RPC service over TCP.
package rpcapi

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/doctoolkit/tocloader/internal/toc"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tocloader.rpcapi")

// Toc is the registered RPC receiver; its exported methods become the
// service's callable procedures ("Toc.Load").
type Toc struct {
	loader *toc.TocLoader
}

// LoadParams is the request payload for Toc.Load.
type LoadParams struct {
	File string `json:"file"`
}

// LoadResult is the response payload for Toc.Load.
type LoadResult struct {
	Node            *toc.TocNode `json:"node"`
	ReferencedFiles []string     `json:"referencedFiles"`
	ReferencedTocs  []string     `json:"referencedTocs"`
	Error           string       `json:"error,omitempty"`
}

// Load resolves params.File via the wrapped loader.
func (t *Toc) Load(params *LoadParams, result *LoadResult) error {
	res, err := t.loader.Load(context.Background(), toc.NewFilePath(params.File))
	if err != nil {
		result.Error = err.Error()
		return nil
	}
	result.Node = res.Node
	for _, d := range res.ReferencedFiles {
		result.ReferencedFiles = append(result.ReferencedFiles, d.FilePath.Path())
	}
	for _, d := range res.ReferencedTocs {
		result.ReferencedTocs = append(result.ReferencedTocs, d.FilePath.Path())
	}
	return nil
}

var connMu sync.Mutex
var activeConnections int

// Serve listens on addr and serves JSON-RPC connections until the listener
// is closed or accepting fails permanently.
func Serve(addr string, loader *toc.TocLoader) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("rpcapi: listen on %s: %w", addr, err)
	}
	defer listener.Close()
	log.Infof("JSON-RPC server listening on %s", addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			return fmt.Errorf("rpcapi: accept: %w", err)
		}

		connMu.Lock()
		activeConnections++
		connMu.Unlock()

		go func(conn net.Conn) {
			defer func() {
				conn.Close()
				connMu.Lock()
				activeConnections--
				connMu.Unlock()
			}()

			server := rpc.NewServer()
			if err := server.RegisterName("Toc", &Toc{loader: loader}); err != nil {
				log.Errorf("register Toc service: %s", err)
				return
			}
			server.ServeCodec(jsonrpc.NewServerCodec(conn))
		}(conn)
	}
}
