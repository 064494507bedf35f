package session

import (
	"errors"
	"fmt"

	"github.com/blues/cfc/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// 本地只持久化一条会话记录
const sessionRowID = 1

// Store 本地会话存储
// 只保存最近一次连接的地址，作为断连检测的提示；登出时清除
type Store struct {
	db *gorm.DB
}

// Open 打开本地会话库
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveAddress 记录最近连接的地址
func (s *Store) SaveAddress(address string) error {
	record := model.Session{ID: sessionRowID, Address: address}
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save session address: %w", err)
	}
	return nil
}

// LastAddress 读取最近连接的地址
func (s *Store) LastAddress() (string, bool, error) {
	var record model.Session
	err := s.db.First(&record, sessionRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session address: %w", err)
	}
	return record.Address, true, nil
}

// Clear 清除会话记录，显式登出时调用
func (s *Store) Clear() error {
	if err := s.db.Delete(&model.Session{}, sessionRowID).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
