package bridge

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propchain/bridge/pkg/types"
	"github.com/rs/zerolog/log"
)

// Service orchestrates the bridge request lifecycle: creation, quorum
// signing, custody locking, execution and recovery. All state-changing
// calls are serialized; each either applies its full transition or, on
// a precondition failure, applies nothing.
type Service struct {
	mu sync.Mutex

	cfg         types.BridgeConfig
	chains      map[types.ChainID]types.ChainBridgeInfo
	sourceChain types.ChainID
	admin       types.AccountID

	store      Store
	ledger     AssetLedger
	compliance ComplianceGate
	operators  OperatorRegistry
	custodian  *Custodian
	sink       EventSink

	now func() time.Time
}

type Option func(*Service)

// WithClock overrides the service clock; expiry is checked lazily
// against it on every sign and execute.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(
	cfg types.BridgeConfig,
	sourceChain types.ChainID,
	admin types.AccountID,
	store Store,
	ledger AssetLedger,
	compliance ComplianceGate,
	operators OperatorRegistry,
	sink EventSink,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:         cfg,
		chains:      make(map[types.ChainID]types.ChainBridgeInfo),
		sourceChain: sourceChain,
		admin:       admin,
		store:       store,
		ledger:      ledger,
		compliance:  compliance,
		operators:   operators,
		sink:        sink,
		now:         time.Now,
	}
	for _, chain := range cfg.SupportedChains {
		s.chains[chain] = types.ChainBridgeInfo{
			ChainID:            chain,
			Name:               string(chain),
			Active:             true,
			GasMultiplier:      100,
			ConfirmationBlocks: 6,
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.custodian = NewCustodian(ledger, store, sourceChain, sink)
	s.custodian.now = s.now
	return s
}

// Custodian exposes the destination-side entry points (MintFromBridge,
// BurnForReturn) to the relayer surface.
func (s *Service) Custodian() *Custodian {
	return s.custodian
}

// CreateParams carries the asset owner's intent to move an asset.
type CreateParams struct {
	AssetID            uint64
	DestinationChain   types.ChainID
	Recipient          types.AccountID
	RequiredSignatures int
	// Timeout overrides the configured default window; nil means use
	// the default, zero means no deadline.
	Timeout *time.Duration
	// Metadata overrides the ledger snapshot when the caller already
	// carries the authoritative copy.
	Metadata  *types.PropertyMetadata
	Requester types.AccountID
}

// CreateRequest validates the owner's intent and stores a Pending
// request. Exactly one active request may exist per asset.
func (s *Service) CreateRequest(p CreateParams) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.EmergencyPause {
		return 0, types.ErrBridgePaused
	}
	if !s.cfg.SupportsChain(p.DestinationChain) {
		return 0, types.ErrInvalidChain
	}
	if chain, ok := s.chains[p.DestinationChain]; ok && !chain.Active {
		return 0, types.ErrInvalidChain
	}
	if p.RequiredSignatures < s.cfg.MinSignatures || p.RequiredSignatures > s.cfg.MaxSignatures {
		return 0, types.ErrInsufficientSignatures
	}

	owner, err := s.ledger.OwnerOf(p.AssetID)
	if err != nil {
		return 0, types.ErrAssetNotFound
	}
	if owner != p.Requester {
		return 0, types.ErrUnauthorized
	}
	if !s.compliance.IsVerified(p.AssetID) {
		return 0, types.ErrComplianceFailed
	}
	if _, active, err := s.store.ActiveRequestID(p.AssetID); err != nil {
		return 0, err
	} else if active {
		return 0, types.ErrDuplicateRequest
	}

	metadata := types.PropertyMetadata{}
	if p.Metadata != nil {
		metadata = *p.Metadata
	} else if metadata, err = s.ledger.MetadataOf(p.AssetID); err != nil {
		return 0, types.ErrAssetNotFound
	}

	id, err := s.store.NextRequestID()
	if err != nil {
		return 0, err
	}

	now := s.now()
	timeout := s.cfg.DefaultTimeout
	if p.Timeout != nil {
		timeout = *p.Timeout
	}
	var expiresAt *time.Time
	if timeout > 0 {
		deadline := now.Add(timeout)
		expiresAt = &deadline
	}

	req := &types.BridgeRequest{
		ID:                 id,
		AssetID:            p.AssetID,
		SourceChain:        s.sourceChain,
		DestinationChain:   p.DestinationChain,
		Sender:             p.Requester,
		Recipient:          p.Recipient,
		RequiredSignatures: p.RequiredSignatures,
		CreatedAt:          now,
		ExpiresAt:          expiresAt,
		Status:             types.StatusPending,
		Metadata:           metadata,
	}
	if err := s.store.SaveRequest(req); err != nil {
		return 0, err
	}

	s.emit(types.EventBridgeRequestCreated, req.DestinationChain, id, types.RequestCreatedEvent{
		RequestID:        id,
		AssetID:          p.AssetID,
		SourceChain:      s.sourceChain,
		DestinationChain: p.DestinationChain,
		Requester:        p.Requester,
	})
	log.Info().
		Uint64("requestId", id).
		Uint64("assetId", p.AssetID).
		Str("destinationChain", string(p.DestinationChain)).
		Msg("[BridgeService] [CreateRequest] request created")
	return id, nil
}

// SignRequest records one operator's verdict. A single rejection fails
// the whole request; the approval that first meets the threshold locks
// custody and moves the request to Locked, exactly once.
func (s *Service) SignRequest(requestID uint64, signer types.AccountID, approve bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.operators.IsOperator(signer) {
		return types.ErrUnauthorized
	}
	req, err := s.store.GetRequest(requestID)
	if err != nil {
		return err
	}
	if err := s.expireIfPastDeadline(req); err != nil {
		return err
	}
	if req.Status != types.StatusPending {
		// Requests that already left Pending (locked, terminal) take
		// no further signatures.
		return types.ErrInvalidRequest
	}

	tracker := NewQuorumTracker(req.RequiredSignatures, req.Signatures)
	crossed, err := tracker.Add(signer)
	if err != nil {
		return err
	}
	req.Signatures = tracker.Signers()

	if !approve {
		if err := Transition(req, types.StatusFailed); err != nil {
			return err
		}
		if err := s.store.SaveRequest(req); err != nil {
			return err
		}
		s.emit(types.EventBridgeRequestFailed, req.DestinationChain, req.ID, types.RequestFailedEvent{
			RequestID: req.ID,
			AssetID:   req.AssetID,
			Reason:    "request rejected by operator",
		})
		log.Info().
			Uint64("requestId", req.ID).
			Str("signer", string(signer)).
			Msg("[BridgeService] [SignRequest] request vetoed")
		return nil
	}

	if crossed {
		if err := s.custodian.Lock(req.AssetID); err != nil {
			return err
		}
		if err := Transition(req, types.StatusLocked); err != nil {
			return err
		}
	}
	if err := s.store.SaveRequest(req); err != nil {
		return err
	}

	s.emit(types.EventBridgeRequestSigned, req.DestinationChain, req.ID, types.RequestSignedEvent{
		RequestID:           req.ID,
		Signer:              signer,
		SignaturesCollected: tracker.Count(),
		SignaturesRequired:  req.RequiredSignatures,
	})
	log.Info().
		Uint64("requestId", req.ID).
		Str("signer", string(signer)).
		Int("collected", tracker.Count()).
		Int("required", req.RequiredSignatures).
		Msg("[BridgeService] [SignRequest] signature recorded")
	return nil
}

// ExecuteRequest finalizes a Locked request: generates the transaction
// hash, appends the immutable history record, marks the hash verified
// for the destination-side mint and completes the request.
func (s *Service) ExecuteRequest(requestID uint64, executor types.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.operators.IsOperator(executor) {
		return types.ErrUnauthorized
	}
	req, err := s.store.GetRequest(requestID)
	if err != nil {
		return err
	}
	if err := s.expireIfPastDeadline(req); err != nil {
		return err
	}
	if req.Status != types.StatusLocked {
		return types.ErrInvalidRequest
	}
	if len(req.Signatures) < req.RequiredSignatures {
		return types.ErrInsufficientSignatures
	}

	executedAt := s.now()
	txHash := GenerateTransactionHash(req, executedAt)
	txID, err := s.store.NextTransactionID()
	if err != nil {
		return err
	}
	chain, ok := s.chains[req.DestinationChain]
	var chainInfo *types.ChainBridgeInfo
	if ok {
		chainInfo = &chain
	}
	tx := &types.BridgeTransaction{
		ID:               txID,
		RequestID:        req.ID,
		AssetID:          req.AssetID,
		SourceChain:      req.SourceChain,
		DestinationChain: req.DestinationChain,
		Sender:           req.Sender,
		Recipient:        req.Recipient,
		TxHash:           txHash,
		Timestamp:        executedAt,
		GasUsed:          EstimateGas(&s.cfg, chainInfo, len(req.Metadata.LegalDescription), req.RequiredSignatures),
		Status:           types.StatusInTransit,
		Metadata:         req.Metadata,
	}

	if err := Transition(req, types.StatusCompleted); err != nil {
		return err
	}
	// The status commit goes last: if any side-record write fails the
	// persisted request is still Locked and execute can be retried.
	if err := s.store.MarkHashVerified(txHash); err != nil {
		return err
	}
	if err := s.store.AppendTransaction(tx); err != nil {
		return err
	}
	if err := s.store.SaveBridgedToken(&types.BridgedTokenInfo{
		OriginalChain:    req.SourceChain,
		OriginalAssetID:  req.AssetID,
		DestinationChain: req.DestinationChain,
		BridgedAt:        executedAt,
		Status:           types.BridgingInTransit,
	}); err != nil {
		return err
	}
	if err := s.store.SaveRequest(req); err != nil {
		return err
	}

	s.emit(types.EventBridgeRequestExecuted, req.DestinationChain, req.ID, types.RequestExecutedEvent{
		RequestID:       req.ID,
		AssetID:         req.AssetID,
		TransactionHash: txHash,
	})
	log.Info().
		Uint64("requestId", req.ID).
		Str("txHash", txHash.Hex()).
		Str("executor", string(executor)).
		Msg("[BridgeService] [ExecuteRequest] request executed")
	return nil
}

// expireIfPastDeadline performs the lazy expiry check: a Pending or
// Locked request whose deadline has passed is flipped to Expired on the
// first interaction that touches it.
func (s *Service) expireIfPastDeadline(req *types.BridgeRequest) error {
	if !req.Status.Active() || !req.Expired(s.now()) {
		return nil
	}
	if err := Transition(req, types.StatusExpired); err != nil {
		return err
	}
	if err := s.store.SaveRequest(req); err != nil {
		return err
	}
	s.emit(types.EventBridgeRequestExpired, req.DestinationChain, req.ID, types.RequestFailedEvent{
		RequestID: req.ID,
		AssetID:   req.AssetID,
		Reason:    "request deadline passed",
	})
	log.Info().Uint64("requestId", req.ID).Msg("[BridgeService] [expireIfPastDeadline] request expired")
	return types.ErrRequestExpired
}

func (s *Service) emit(event string, destinationChain types.ChainID, requestID uint64, data any) {
	s.sink.Publish(&types.EventEnvelope{
		ID:               uuid.New().String(),
		Event:            event,
		DestinationChain: destinationChain,
		RequestID:        requestID,
		EmittedAt:        s.now(),
		Data:             data,
	})
}
