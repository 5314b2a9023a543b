package db

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/propchain/bridge/pkg/db/models"
	"github.com/propchain/bridge/pkg/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	counterRequests     = "bridge_requests"
	counterTransactions = "bridge_transactions"
)

// DatabaseAdapter is the durable request store. It implements the
// bridge Store contract on Postgres; status writes and the active
// index always commit in one transaction.
type DatabaseAdapter struct {
	PostgresClient *gorm.DB
}

func NewDatabaseAdapter(url string) (*DatabaseAdapter, error) {
	client, err := NewPostgresClient(url)
	if err != nil {
		return nil, err
	}
	return &DatabaseAdapter{PostgresClient: client}, nil
}

func (da *DatabaseAdapter) NextRequestID() (uint64, error) {
	return da.nextCounter(counterRequests)
}

func (da *DatabaseAdapter) NextTransactionID() (uint64, error) {
	return da.nextCounter(counterTransactions)
}

func (da *DatabaseAdapter) nextCounter(name string) (uint64, error) {
	var value uint64
	err := da.PostgresClient.Transaction(func(tx *gorm.DB) error {
		counter := models.Counter{Name: name}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			FirstOrCreate(&counter, models.Counter{Name: name}).Error; err != nil {
			return err
		}
		counter.Value++
		value = counter.Value
		return tx.Save(&counter).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", name, err)
	}
	return value, nil
}

func (da *DatabaseAdapter) SaveRequest(req *types.BridgeRequest) error {
	row := models.FromBridgeRequest(req)
	return da.PostgresClient.Transaction(func(tx *gorm.DB) error {
		signatures := row.Signatures
		row.Signatures = nil
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", row.ID).Delete(&models.BridgeSignature{}).Error; err != nil {
			return err
		}
		if len(signatures) > 0 {
			if err := tx.Create(&signatures).Error; err != nil {
				return err
			}
		}
		if req.Status.Active() {
			active := models.ActiveRequest{AssetID: req.AssetID, RequestID: req.ID}
			return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&active).Error
		}
		return tx.Where("asset_id = ? AND request_id = ?", req.AssetID, req.ID).
			Delete(&models.ActiveRequest{}).Error
	})
}

func (da *DatabaseAdapter) GetRequest(id uint64) (*types.BridgeRequest, error) {
	var row models.BridgeRequest
	result := da.PostgresClient.Preload("Signatures").First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, types.ErrInvalidRequest
		}
		return nil, result.Error
	}
	return row.ToBridgeRequest(), nil
}

func (da *DatabaseAdapter) ActiveRequestID(assetID uint64) (uint64, bool, error) {
	var row models.ActiveRequest
	result := da.PostgresClient.First(&row, "asset_id = ?", assetID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, result.Error
	}
	return row.RequestID, true, nil
}

func (da *DatabaseAdapter) AppendTransaction(tx *types.BridgeTransaction) error {
	return da.PostgresClient.Create(models.FromBridgeTransaction(tx)).Error
}

func (da *DatabaseAdapter) History(sender types.AccountID) ([]types.BridgeTransaction, error) {
	var rows []models.BridgeTransaction
	result := da.PostgresClient.
		Where("sender = ?", string(sender)).
		Order("id asc").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	history := make([]types.BridgeTransaction, 0, len(rows))
	for i := range rows {
		history = append(history, *rows[i].ToBridgeTransaction())
	}
	return history, nil
}

func (da *DatabaseAdapter) MarkHashVerified(hash common.Hash) error {
	row := models.VerifiedHash{Hash: hash.Hex()}
	return da.PostgresClient.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (da *DatabaseAdapter) IsHashVerified(hash common.Hash) (bool, error) {
	var count int64
	result := da.PostgresClient.Model(&models.VerifiedHash{}).
		Where("hash = ?", hash.Hex()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (da *DatabaseAdapter) SaveBridgedToken(info *types.BridgedTokenInfo) error {
	row := models.FromBridgedToken(info)
	return da.PostgresClient.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain"}, {Name: "original_asset_id"}},
		UpdateAll: true,
	}).Create(row).Error
}

func (da *DatabaseAdapter) GetBridgedToken(chain types.ChainID, originalAssetID uint64) (*types.BridgedTokenInfo, error) {
	var row models.BridgedToken
	result := da.PostgresClient.First(&row, "chain = ? AND original_asset_id = ?", string(chain), originalAssetID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return row.ToBridgedTokenInfo(), nil
}
