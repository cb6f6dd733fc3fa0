// services/mirror_service.go
package services

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gramx-admin-gateway/models"
)

// MirrorService reads the local snapshot tables maintained by the snapshot
// worker. It backs the user search box and keeps headline counts available
// when the upstream is down. Absent a configured database it is simply not
// wired up.
type MirrorService struct {
	DB *gorm.DB
}

func NewMirrorService(db *gorm.DB) *MirrorService {
	return &MirrorService{DB: db}
}

// SearchUsers searches the mirrored user snapshot by name or referral code.
func (m *MirrorService) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := m.DB.Model(&models.UserMirror{}).Order("name").Limit(limit)
	if query != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(referral_code) LIKE ?", term, term)
	}

	var users []models.UserMirror
	if err := db.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}

	type userSummary struct {
		SourceID     string  `json:"_id"`
		Name         string  `json:"name"`
		ReferralCode string  `json:"referralCode"`
		Tokens       float64 `json:"tokens"`
		Shares       float64 `json:"shares"`
	}
	res := make([]userSummary, len(users))
	for i, u := range users {
		res[i] = userSummary{
			SourceID:     u.SourceID,
			Name:         u.Name,
			ReferralCode: u.ReferralCode,
			Tokens:       u.Tokens,
			Shares:       u.Shares,
		}
	}
	return c.JSON(res)
}

// Counts returns the snapshot row counts per collection.
func (m *MirrorService) Counts() (fiber.Map, error) {
	var users, tasks, leaderboard, batches int64
	if err := m.DB.Model(&models.UserMirror{}).Count(&users).Error; err != nil {
		return nil, err
	}
	if err := m.DB.Model(&models.TaskMirror{}).Count(&tasks).Error; err != nil {
		return nil, err
	}
	if err := m.DB.Model(&models.LeaderboardMirror{}).Count(&leaderboard).Error; err != nil {
		return nil, err
	}
	if err := m.DB.Model(&models.BatchMirror{}).Count(&batches).Error; err != nil {
		return nil, err
	}
	return fiber.Map{
		"users":       users,
		"tasks":       tasks,
		"leaderboard": leaderboard,
		"batches":     batches,
	}, nil
}
