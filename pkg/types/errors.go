package types

import "errors"

// Error taxonomy of the bridge protocol. Every state-changing call
// returns one of these synchronously; a rejected call leaves all
// records unchanged.
var (
	ErrUnauthorized           = errors.New("caller lacks the required role")
	ErrInvalidRequest         = errors.New("unknown request or wrong status for this transition")
	ErrInsufficientSignatures = errors.New("signature quorum not met")
	ErrRequestExpired         = errors.New("request deadline has passed")
	ErrAlreadySigned          = errors.New("signer already recorded for this request")
	ErrInvalidChain           = errors.New("destination chain not supported")
	ErrBridgePaused           = errors.New("bridge is paused")
	ErrComplianceFailed       = errors.New("asset compliance not verified")
	ErrDuplicateRequest       = errors.New("asset already has an active bridge request")
	ErrAssetNotFound          = errors.New("asset not found")
)
