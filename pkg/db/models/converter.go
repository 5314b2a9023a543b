package models

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propchain/bridge/pkg/types"
)

func FromBridgeRequest(req *types.BridgeRequest) *BridgeRequest {
	row := &BridgeRequest{
		ID:                 req.ID,
		AssetID:            req.AssetID,
		SourceChain:        string(req.SourceChain),
		DestinationChain:   string(req.DestinationChain),
		Sender:             string(req.Sender),
		Recipient:          string(req.Recipient),
		RequiredSignatures: req.RequiredSignatures,
		Status:             int(req.Status),
		CreatedAt:          req.CreatedAt,
		ExpiresAt:          req.ExpiresAt,
		Location:           req.Metadata.Location,
		Size:               req.Metadata.Size,
		LegalDescription:   req.Metadata.LegalDescription,
		Valuation:          req.Metadata.Valuation,
		DocumentsURL:       req.Metadata.DocumentsURL,
	}
	for i, signer := range req.Signatures {
		row.Signatures = append(row.Signatures, BridgeSignature{
			RequestID: req.ID,
			Signer:    string(signer),
			Ordinal:   i,
		})
	}
	return row
}

func (row *BridgeRequest) ToBridgeRequest() *types.BridgeRequest {
	req := &types.BridgeRequest{
		ID:                 row.ID,
		AssetID:            row.AssetID,
		SourceChain:        types.ChainID(row.SourceChain),
		DestinationChain:   types.ChainID(row.DestinationChain),
		Sender:             types.AccountID(row.Sender),
		Recipient:          types.AccountID(row.Recipient),
		RequiredSignatures: row.RequiredSignatures,
		Status:             types.RequestStatus(row.Status),
		CreatedAt:          row.CreatedAt,
		ExpiresAt:          row.ExpiresAt,
		Metadata: types.PropertyMetadata{
			Location:         row.Location,
			Size:             row.Size,
			LegalDescription: row.LegalDescription,
			Valuation:        row.Valuation,
			DocumentsURL:     row.DocumentsURL,
		},
	}
	signatures := append([]BridgeSignature(nil), row.Signatures...)
	sort.Slice(signatures, func(i, j int) bool { return signatures[i].Ordinal < signatures[j].Ordinal })
	for _, sig := range signatures {
		req.Signatures = append(req.Signatures, types.AccountID(sig.Signer))
	}
	return req
}

func FromBridgeTransaction(tx *types.BridgeTransaction) *BridgeTransaction {
	return &BridgeTransaction{
		ID:               tx.ID,
		RequestID:        tx.RequestID,
		AssetID:          tx.AssetID,
		SourceChain:      string(tx.SourceChain),
		DestinationChain: string(tx.DestinationChain),
		Sender:           string(tx.Sender),
		Recipient:        string(tx.Recipient),
		TxHash:           tx.TxHash.Hex(),
		Timestamp:        tx.Timestamp,
		GasUsed:          tx.GasUsed,
		Status:           int(tx.Status),
		Location:         tx.Metadata.Location,
		Size:             tx.Metadata.Size,
		LegalDescription: tx.Metadata.LegalDescription,
		Valuation:        tx.Metadata.Valuation,
		DocumentsURL:     tx.Metadata.DocumentsURL,
	}
}

func (row *BridgeTransaction) ToBridgeTransaction() *types.BridgeTransaction {
	return &types.BridgeTransaction{
		ID:               row.ID,
		RequestID:        row.RequestID,
		AssetID:          row.AssetID,
		SourceChain:      types.ChainID(row.SourceChain),
		DestinationChain: types.ChainID(row.DestinationChain),
		Sender:           types.AccountID(row.Sender),
		Recipient:        types.AccountID(row.Recipient),
		TxHash:           common.HexToHash(row.TxHash),
		Timestamp:        row.Timestamp,
		GasUsed:          row.GasUsed,
		Status:           types.RequestStatus(row.Status),
		Metadata: types.PropertyMetadata{
			Location:         row.Location,
			Size:             row.Size,
			LegalDescription: row.LegalDescription,
			Valuation:        row.Valuation,
			DocumentsURL:     row.DocumentsURL,
		},
	}
}

func FromBridgedToken(info *types.BridgedTokenInfo) *BridgedToken {
	return &BridgedToken{
		Chain:              string(info.DestinationChain),
		OriginalAssetID:    info.OriginalAssetID,
		OriginalChain:      string(info.OriginalChain),
		DestinationAssetID: info.DestinationAssetID,
		BridgedAt:          info.BridgedAt,
		Status:             int(info.Status),
	}
}

func (row *BridgedToken) ToBridgedTokenInfo() *types.BridgedTokenInfo {
	return &types.BridgedTokenInfo{
		OriginalChain:      types.ChainID(row.OriginalChain),
		OriginalAssetID:    row.OriginalAssetID,
		DestinationChain:   types.ChainID(row.Chain),
		DestinationAssetID: row.DestinationAssetID,
		BridgedAt:          row.BridgedAt,
		Status:             types.BridgingStatus(row.Status),
	}
}
