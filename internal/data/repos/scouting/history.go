package scouting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// HistoryItem is one ledger entry reached through an athlete's evaluations.
type HistoryItem struct {
	HistoryEntryID uuid.UUID `json:"history_entry_id"`
	EvaluationID   uuid.UUID `json:"evaluation_id"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// HistoryEntryRepo is the append-only revision ledger. There is no update or delete.
type HistoryEntryRepo interface {
	Create(dbc dbctx.Context, recordedAt time.Time) (*types.HistoryEntry, error)
	ListByAthlete(dbc dbctx.Context, athleteID uuid.UUID) ([]HistoryItem, error)
	ListByEvaluation(dbc dbctx.Context, evaluationID uuid.UUID) ([]HistoryItem, error)
}

type historyEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryEntryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryEntryRepo {
	return &historyEntryRepo{db: db, log: baseLog.With("repo", "HistoryEntryRepo")}
}

func (r *historyEntryRepo) Create(dbc dbctx.Context, recordedAt time.Time) (*types.HistoryEntry, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	row := &types.HistoryEntry{ID: uuid.New(), RecordedAt: recordedAt.UTC()}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *historyEntryRepo) ListByAthlete(dbc dbctx.Context, athleteID uuid.UUID) ([]HistoryItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []HistoryItem{}
	if athleteID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Table("history_entry AS h").
		Select("h.id AS history_entry_id, eh.evaluation_id AS evaluation_id, h.recorded_at AS recorded_at").
		Joins("JOIN evaluation_history eh ON eh.history_entry_id = h.id").
		Joins("JOIN athlete_evaluation ae ON ae.evaluation_id = eh.evaluation_id").
		Where("ae.athlete_id = ?", athleteID).
		Order("h.recorded_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *historyEntryRepo) ListByEvaluation(dbc dbctx.Context, evaluationID uuid.UUID) ([]HistoryItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []HistoryItem{}
	if evaluationID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Table("history_entry AS h").
		Select("h.id AS history_entry_id, eh.evaluation_id AS evaluation_id, h.recorded_at AS recorded_at").
		Joins("JOIN evaluation_history eh ON eh.history_entry_id = h.id").
		Where("eh.evaluation_id = ?", evaluationID).
		Order("h.recorded_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluationHistoryRepo links ledger entries to evaluations.
type EvaluationHistoryRepo interface {
	Link(dbc dbctx.Context, evaluationID, historyEntryID uuid.UUID) (int, error)
	CountByEvaluation(dbc dbctx.Context, evaluationID uuid.UUID) (int64, error)
	DeleteByEvaluationID(dbc dbctx.Context, evaluationID uuid.UUID) error
}

type evaluationHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvaluationHistoryRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationHistoryRepo {
	return &evaluationHistoryRepo{db: db, log: baseLog.With("repo", "EvaluationHistoryRepo")}
}

func (r *evaluationHistoryRepo) Link(dbc dbctx.Context, evaluationID, historyEntryID uuid.UUID) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if evaluationID == uuid.Nil || historyEntryID == uuid.Nil {
		return 0, nil
	}
	row := &types.EvaluationHistory{ID: uuid.New(), EvaluationID: evaluationID, HistoryEntryID: historyEntryID}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "evaluation_id"}, {Name: "history_entry_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *evaluationHistoryRepo) CountByEvaluation(dbc dbctx.Context, evaluationID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(dbc.Ctx).
		Model(&types.EvaluationHistory{}).
		Where("evaluation_id = ?", evaluationID).
		Count(&n).Error
	return n, err
}

func (r *evaluationHistoryRepo) DeleteByEvaluationID(dbc dbctx.Context, evaluationID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("evaluation_id = ?", evaluationID).Delete(&types.EvaluationHistory{}).Error
}
