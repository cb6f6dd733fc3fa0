// workers/snapshot_sync_worker.go
package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gramx-admin-gateway/models"
	"gramx-admin-gateway/services"
)

// SnapshotWorker mirrors the upstream admin collections into local Postgres
// so headline stats and user search stay available when the upstream is
// down. The upstream copy is always authoritative; rows are upserted on their
// upstream id and never written back.
type SnapshotWorker struct {
	db          *gorm.DB
	users       *services.UsersClient
	tasks       *services.TasksClient
	leaderboard *services.LeaderboardClient
	batches     *services.BatchesClient
	interval    time.Duration
}

func NewSnapshotWorker(db *gorm.DB, svc *services.AdminService, interval time.Duration) *SnapshotWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SnapshotWorker{
		db:          db,
		users:       svc.Users,
		tasks:       svc.Tasks,
		leaderboard: svc.Leaderboard,
		batches:     svc.Batches,
		interval:    interval,
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting snapshot worker (upstream collections → mirror tables)…")
	go w.run(ctx)
}

func (w *SnapshotWorker) run(ctx context.Context) {
	// Initial sync so the mirror is useful right after boot.
	w.syncAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncAll(ctx)
		case <-ctx.Done():
			log.Println("⏹️ Snapshot worker stopped")
			return
		}
	}
}

func (w *SnapshotWorker) syncAll(ctx context.Context) {
	for name, sync := range map[string]func(context.Context) (int, error){
		"users":       w.syncUsers,
		"tasks":       w.syncTasks,
		"leaderboard": w.syncLeaderboard,
		"batches":     w.syncBatches,
	} {
		n, err := sync(ctx)
		if err != nil {
			log.Printf("[SYNC] ❌ %s snapshot failed: %v", name, err)
			continue
		}
		log.Printf("[SYNC] ✅ Mirrored %d %s row(s)", n, name)
	}
}

func (w *SnapshotWorker) syncUsers(ctx context.Context) (int, error) {
	users, err := w.users.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch users: %w", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]models.UserMirror, len(users))
	for i, u := range users {
		rows[i] = models.UserMirror{
			SourceID:     u.ID,
			Name:         u.Name,
			ReferralCode: u.ReferralCode,
			Tokens:       u.Tokens,
			Shares:       u.Shares,
			ProfileImage: u.ProfileImage,
			SyncedAt:     now,
		}
	}
	return len(rows), w.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "referral_code", "tokens", "shares", "profile_image", "synced_at",
		}),
	}).Create(&rows).Error
}

func (w *SnapshotWorker) syncTasks(ctx context.Context) (int, error) {
	tasks, err := w.tasks.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]models.TaskMirror, len(tasks))
	for i, t := range tasks {
		rows[i] = models.TaskMirror{
			SourceID:           t.ID,
			Task:               t.Task,
			Description:        t.Description,
			Reward:             t.Reward,
			Platform:           string(t.Platform),
			PlatformID:         t.PlatformID,
			VerificationMethod: string(t.VerificationMethod),
			SyncedAt:           now,
		}
	}
	return len(rows), w.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"task", "description", "reward", "platform", "platform_id",
			"verification_method", "synced_at",
		}),
	}).Create(&rows).Error
}

func (w *SnapshotWorker) syncLeaderboard(ctx context.Context) (int, error) {
	entries, err := w.leaderboard.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch leaderboard: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]models.LeaderboardMirror, len(entries))
	for i, e := range entries {
		row := models.LeaderboardMirror{
			SourceID: e.ID,
			Position: e.Position,
			Coins:    e.Coins,
			Shares:   e.Shares,
			SyncedAt: now,
		}
		if e.User != nil {
			row.UserName = e.User.Name
			row.UserEmail = e.User.Email
		}
		rows[i] = row
	}
	return len(rows), w.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "user_name", "user_email", "coins", "shares", "synced_at",
		}),
	}).Create(&rows).Error
}

func (w *SnapshotWorker) syncBatches(ctx context.Context) (int, error) {
	batches, err := w.batches.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch batches: %w", err)
	}
	if len(batches) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]models.BatchMirror, len(batches))
	for i, b := range batches {
		rows[i] = models.BatchMirror{
			SourceID:     b.ID,
			BatchNumber:  b.BatchNumber,
			CurrentPrice: b.CurrentPrice,
			NextPrice:    b.NextPrice,
			TokensSold:   b.TokensSold,
			TotalTokens:  b.TotalTokens,
			Status:       string(b.Status),
			SyncedAt:     now,
		}
	}
	return len(rows), w.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"batch_number", "current_price", "next_price", "tokens_sold",
			"total_tokens", "status", "synced_at",
		}),
	}).Create(&rows).Error
}
