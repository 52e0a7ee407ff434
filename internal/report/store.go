package report

import (
	"context"

	"gorm.io/gorm"
)

const tradeBatchSize = 500

var _ Store = (*GormStore)(nil)

// GormStore keeps reports in postgres through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&TradeRecord{}, &RunSummary{})
}

func (s *GormStore) SaveTrades(ctx context.Context, trades []TradeRecord) error {
	return s.db.WithContext(ctx).CreateInBatches(trades, tradeBatchSize).Error
}

func (s *GormStore) SaveSummary(ctx context.Context, summary RunSummary) error {
	return s.db.WithContext(ctx).Create(&summary).Error
}
