package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hostel-backend/models"
)

// HostelService wraps *gorm.DB for hostel reads and writes. The
// occupied_rooms column is a denormalized cache with no single update
// path, so reads recompute it from the rooms table instead of trusting it.
type HostelService struct {
	DB *gorm.DB
}

func NewHostelService(db *gorm.DB) *HostelService {
	return &HostelService{DB: db}
}

func (s *HostelService) occupiedCounts(ctx context.Context) (map[string]int, error) {
	type row struct {
		HostelID string
		Count    int
	}
	var rows []row
	err := s.DB.WithContext(ctx).
		Model(&models.Room{}).
		Select("hostel_id, COUNT(*) AS count").
		Where("status = ? AND hostel_id IS NOT NULL", models.RoomStatusOccupied).
		Group("hostel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count occupied rooms: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.HostelID] = r.Count
	}
	return counts, nil
}

// GetAll lists hostels with occupied_rooms recomputed on read.
func (s *HostelService) GetAll(ctx context.Context) ([]models.Hostel, error) {
	var hostels []models.Hostel
	if err := s.DB.WithContext(ctx).Find(&hostels).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve hostels: %w", err)
	}

	counts, err := s.occupiedCounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range hostels {
		hostels[i].OccupiedRooms = counts[hostels[i].ID]
	}
	return hostels, nil
}

// GetByID fetches one hostel, occupied_rooms recomputed.
func (s *HostelService) GetByID(ctx context.Context, id string) (models.Hostel, error) {
	var hostel models.Hostel
	if err := s.DB.WithContext(ctx).First(&hostel, "id = ?", id).Error; err != nil {
		return models.Hostel{}, err
	}

	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Room{}).
		Where("hostel_id = ? AND status = ?", id, models.RoomStatusOccupied).
		Count(&count).Error
	if err != nil {
		return models.Hostel{}, fmt.Errorf("failed to count occupied rooms: %w", err)
	}
	hostel.OccupiedRooms = int(count)
	return hostel, nil
}

func (s *HostelService) Create(ctx context.Context, hostel *models.Hostel) error {
	if hostel.Status == "" {
		hostel.Status = models.HostelStatusActive
	}
	return s.DB.WithContext(ctx).Create(hostel).Error
}

func (s *HostelService) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	res := s.DB.WithContext(ctx).Model(&models.Hostel{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *HostelService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&models.Hostel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound lets controllers translate lookups to 404 without importing
// gorm.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
