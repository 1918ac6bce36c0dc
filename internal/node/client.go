// Package node exposes the wallet node's JSON-RPC methods as typed calls.
package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/txsubmitter/internal/jsonrpc"
	"github.com/goodnatureofminers/txsubmitter/internal/model"
)

const (
	methodListUnspentOutputs = "listunspentoutputs"
	methodSignTransaction    = "signtransaction"
	methodSendRawTransaction = "sendrawtransaction"
	methodGetInfo            = "getinfo"
)

// Client is the wallet node API.
type Client struct {
	caller         Caller
	retryBroadcast bool
}

// Option configures a Client.
type Option func(*Client)

// WithBroadcastRetry lets the transport repeat sendrawtransaction after a transport
// failure. The node may then see the same signed transaction twice.
func WithBroadcastRetry() Option {
	return func(c *Client) {
		c.retryBroadcast = true
	}
}

// NewClient constructs a Client on top of caller.
func NewClient(caller Caller, opts ...Option) (*Client, error) {
	if caller == nil {
		return nil, errors.New("rpc caller is required")
	}
	c := &Client{caller: caller}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type accountParams struct {
	Account string `json:"account"`
}

type signParams struct {
	Transaction model.UnsignedTransaction `json:"transaction"`
	Password    string                    `json:"password"`
}

type sendParams struct {
	Transaction model.SignedTransaction `json:"transaction"`
}

// ListUnspentOutputs returns the unspent outputs owned by account, in node order.
func (c *Client) ListUnspentOutputs(ctx context.Context, account string) ([]model.UnspentOutput, error) {
	var res struct {
		Outputs *[]model.UnspentOutput `json:"outputs"`
	}
	err := c.caller.Call(ctx, jsonrpc.Request{
		Method:     methodListUnspentOutputs,
		Params:     accountParams{Account: account},
		Idempotent: true,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Outputs == nil {
		return nil, jsonrpc.ProtocolError(methodListUnspentOutputs, jsonrpc.ReasonMissingResult, errors.New("result.outputs missing"))
	}

	outputs := *res.Outputs
	for i := range outputs {
		if outputs[i].ID == "" {
			return nil, jsonrpc.ProtocolError(methodListUnspentOutputs, jsonrpc.ReasonMalformed, fmt.Errorf("output %d has no id", i))
		}
		outputs[i].Account = account
	}
	return outputs, nil
}

// SignTransaction asks the node to sign tx with the account password.
func (c *Client) SignTransaction(ctx context.Context, tx model.UnsignedTransaction, password string) (model.SignedTransaction, error) {
	var raw json.RawMessage
	err := c.caller.Call(ctx, jsonrpc.Request{
		Method:     methodSignTransaction,
		Params:     signParams{Transaction: tx, Password: password},
		Idempotent: true,
	}, &raw)
	if err != nil {
		return model.SignedTransaction{}, err
	}
	signed, err := model.NewSignedTransaction(raw)
	if err != nil {
		return model.SignedTransaction{}, jsonrpc.ProtocolError(methodSignTransaction, jsonrpc.ReasonMalformed, err)
	}
	return signed, nil
}

// SendRawTransaction broadcasts a signed transaction. The node answers with a boolean
// or, on newer builds, an object carrying the transaction id.
func (c *Client) SendRawTransaction(ctx context.Context, signed model.SignedTransaction) (model.BroadcastReply, error) {
	var raw json.RawMessage
	err := c.caller.Call(ctx, jsonrpc.Request{
		Method:     methodSendRawTransaction,
		Params:     sendParams{Transaction: signed},
		Idempotent: c.retryBroadcast,
	}, &raw)
	if err != nil {
		return model.BroadcastReply{}, err
	}
	reply, err := parseBroadcastReply(raw)
	if err != nil {
		return model.BroadcastReply{}, jsonrpc.ProtocolError(methodSendRawTransaction, jsonrpc.ReasonMalformed, err)
	}
	// Only nodes that embed an id in signed transactions fill this in. CryptoKernel
	// serializes transactions without one.
	if reply.TxID == "" {
		reply.TxID = signed.ID()
	}
	return reply, nil
}

// GetInfo returns the node's version, peer count, wallet balance and chain height.
func (c *Client) GetInfo(ctx context.Context) (model.NodeInfo, error) {
	var info model.NodeInfo
	if err := c.caller.Call(ctx, jsonrpc.Request{Method: methodGetInfo, Idempotent: true}, &info); err != nil {
		return model.NodeInfo{}, err
	}
	return info, nil
}

func parseBroadcastReply(raw json.RawMessage) (model.BroadcastReply, error) {
	var accepted bool
	if err := json.Unmarshal(raw, &accepted); err == nil {
		return model.BroadcastReply{Accepted: accepted}, nil
	}

	var obj struct {
		Accepted *bool  `json:"accepted"`
		TxID     string `json:"txid"`
		ID       string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return model.BroadcastReply{}, fmt.Errorf("unexpected broadcast result %s", raw)
	}
	reply := model.BroadcastReply{Accepted: true, TxID: obj.TxID}
	if obj.Accepted != nil {
		reply.Accepted = *obj.Accepted
	}
	if reply.TxID == "" {
		reply.TxID = obj.ID
	}
	return reply, nil
}
