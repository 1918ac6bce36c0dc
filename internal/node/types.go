package node

import (
	"context"

	"github.com/goodnatureofminers/txsubmitter/internal/jsonrpc"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Caller performs a single JSON-RPC call.
	Caller interface {
		Call(ctx context.Context, req jsonrpc.Request, result any) error
	}
)
