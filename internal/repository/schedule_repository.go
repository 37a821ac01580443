package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/stankin_schedule/internal/codec"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const pairColumns = `id, schedule_id, title, lecturer, classroom, type, subgroup, time, dates, link`

type ScheduleRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт пустое расписание
func (r *ScheduleRepository) Create(ctx context.Context, info *model.ScheduleInfo) error {
	query := `
		INSERT INTO schedules (name, synced, position)
		VALUES ($1, $2, $3)
		RETURNING id, last_update
	`

	err := r.QueryRow(ctx, query, info.Name, info.Synced, info.Position).Scan(&info.ID, &info.LastUpdate)
	if err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	r.logger.Info("Schedule created", zap.Int64("schedule_id", info.ID), zap.String("name", info.Name))
	return nil
}

// GetByName получает расписание по имени
func (r *ScheduleRepository) GetByName(ctx context.Context, name string) (*model.ScheduleInfo, error) {
	query := `
		SELECT id, name, last_update, synced, position
		FROM schedules
		WHERE name = $1
	`

	info, err := scanScheduleInfo(r.QueryRow(ctx, query, name))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by name: %w", err)
	}
	return info, nil
}

// GetByID получает расписание по ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleInfo, error) {
	query := `
		SELECT id, name, last_update, synced, position
		FROM schedules
		WHERE id = $1
	`

	info, err := scanScheduleInfo(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule by id: %w", err)
	}
	return info, nil
}

// List возвращает все расписания в порядке отображения
func (r *ScheduleRepository) List(ctx context.Context) ([]*model.ScheduleInfo, error) {
	query := `
		SELECT id, name, last_update, synced, position
		FROM schedules
		ORDER BY position, name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var infos []*model.ScheduleInfo
	for rows.Next() {
		info, err := scanScheduleInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	return infos, nil
}

// Load собирает расписание вместе с парами. Возвращает nil, если расписания нет.
func (r *ScheduleRepository) Load(ctx context.Context, id int64) (*model.Schedule, error) {
	info, err := r.GetByID(ctx, id)
	if err != nil || info == nil {
		return nil, err
	}

	pairs, err := r.pairs(ctx, id)
	if err != nil {
		return nil, err
	}

	schedule := model.NewSchedule(*info)
	for _, pair := range pairs {
		if err := schedule.Add(pair); err != nil {
			r.logger.Error("Stored pair conflicts with schedule",
				zap.Int64("schedule_id", id),
				zap.Int64("pair_id", pair.Info.ID),
				zap.Error(err))
			return nil, fmt.Errorf("load schedule %d: %w", id, err)
		}
	}

	return schedule, nil
}

func (r *ScheduleRepository) pairs(ctx context.Context, scheduleID int64) ([]*model.Pair, error) {
	query := `SELECT ` + pairColumns + ` FROM schedule_pairs WHERE schedule_id = $1 ORDER BY id`

	rows, err := r.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get pairs: %w", err)
	}
	defer rows.Close()

	var pairs []*model.Pair
	for rows.Next() {
		pair, err := scanPair(rows)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get pairs: %w", err)
	}

	return pairs, nil
}

// Rename меняет имя расписания
func (r *ScheduleRepository) Rename(ctx context.Context, id int64, name string) (bool, error) {
	affected, err := r.ExecAffected(ctx,
		`UPDATE schedules SET name = $2, last_update = NOW() WHERE id = $1`, id, name)
	if err != nil {
		return false, fmt.Errorf("rename schedule: %w", err)
	}
	return affected > 0, nil
}

// Delete удаляет расписание, пары и подписки удаляются каскадом
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete schedule: %w", err)
	}
	return affected > 0, nil
}

// AddPair сохраняет пару и заполняет pair.Info
func (r *ScheduleRepository) AddPair(ctx context.Context, scheduleID int64, pair *model.Pair) error {
	dates, err := codec.MarshalDates(pair.Date)
	if err != nil {
		return err
	}

	return r.WithTx(ctx, func(q base.Querier) error {
		query := `
			INSERT INTO schedule_pairs (schedule_id, title, lecturer, classroom, type, subgroup, time, dates, link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		err := q.QueryRow(ctx, query, pairArgs(scheduleID, pair, dates)...).Scan(&pair.Info.ID)
		if err != nil {
			return fmt.Errorf("add pair: %w", err)
		}
		pair.Info.ScheduleID = scheduleID
		return touch(ctx, q, scheduleID)
	})
}

// UpdatePair перезаписывает пару по pair.Info.ID
func (r *ScheduleRepository) UpdatePair(ctx context.Context, pair *model.Pair) (bool, error) {
	dates, err := codec.MarshalDates(pair.Date)
	if err != nil {
		return false, err
	}

	var updated bool
	err = r.WithTx(ctx, func(q base.Querier) error {
		query := `
			UPDATE schedule_pairs
			SET title = $2, lecturer = $3, classroom = $4, type = $5, subgroup = $6, time = $7, dates = $8, link = $9
			WHERE id = $1
		`
		args := pairArgs(pair.Info.ID, pair, dates)
		affected, err := base.ExecAffected(ctx, q, query, args...)
		if err != nil {
			return fmt.Errorf("update pair: %w", err)
		}
		updated = affected > 0
		if !updated {
			return nil
		}
		return touch(ctx, q, pair.Info.ScheduleID)
	})
	return updated, err
}

// DeletePair удаляет пару
func (r *ScheduleRepository) DeletePair(ctx context.Context, scheduleID, pairID int64) (bool, error) {
	var deleted bool
	err := r.WithTx(ctx, func(q base.Querier) error {
		affected, err := base.ExecAffected(ctx, q,
			`DELETE FROM schedule_pairs WHERE id = $1 AND schedule_id = $2`, pairID, scheduleID)
		if err != nil {
			return fmt.Errorf("delete pair: %w", err)
		}
		deleted = affected > 0
		if !deleted {
			return nil
		}
		return touch(ctx, q, scheduleID)
	})
	return deleted, err
}

// ReplacePairs заменяет все пары расписания одной транзакцией
func (r *ScheduleRepository) ReplacePairs(ctx context.Context, scheduleID int64, pairs []*model.Pair) error {
	return r.WithTx(ctx, func(q base.Querier) error {
		if err := replacePairs(ctx, q, scheduleID, pairs); err != nil {
			return err
		}
		return touch(ctx, q, scheduleID)
	})
}

// Import создаёт расписание или обновляет существующее с тем же именем.
// info.ID и служебные поля заполняются из БД.
func (r *ScheduleRepository) Import(ctx context.Context, info *model.ScheduleInfo, pairs []*model.Pair) error {
	err := r.WithTx(ctx, func(q base.Querier) error {
		query := `
			INSERT INTO schedules (name, synced, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET last_update = NOW()
			RETURNING id, last_update, synced, position
		`
		err := q.QueryRow(ctx, query, info.Name, info.Synced, info.Position).
			Scan(&info.ID, &info.LastUpdate, &info.Synced, &info.Position)
		if err != nil {
			return fmt.Errorf("upsert schedule: %w", err)
		}
		return replacePairs(ctx, q, info.ID, pairs)
	})
	if err != nil {
		return err
	}

	r.logger.Info("Schedule imported",
		zap.Int64("schedule_id", info.ID),
		zap.String("name", info.Name),
		zap.Int("pairs", len(pairs)))
	return nil
}

func replacePairs(ctx context.Context, q base.Querier, scheduleID int64, pairs []*model.Pair) error {
	if _, err := q.Exec(ctx, `DELETE FROM schedule_pairs WHERE schedule_id = $1`, scheduleID); err != nil {
		return fmt.Errorf("clear pairs: %w", err)
	}

	query := `
		INSERT INTO schedule_pairs (schedule_id, title, lecturer, classroom, type, subgroup, time, dates, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, pair := range pairs {
		dates, err := codec.MarshalDates(pair.Date)
		if err != nil {
			return err
		}
		batch.Queue(query, pairArgs(scheduleID, pair, dates)...)
	}

	results := q.SendBatch(ctx, batch)
	for _, pair := range pairs {
		if err := results.QueryRow().Scan(&pair.Info.ID); err != nil {
			results.Close()
			return fmt.Errorf("insert pair %q: %w", pair.Title, err)
		}
		pair.Info.ScheduleID = scheduleID
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("insert pairs: %w", err)
	}

	return touch(ctx, q, scheduleID)
}

func touch(ctx context.Context, q base.Querier, scheduleID int64) error {
	if _, err := q.Exec(ctx, `UPDATE schedules SET last_update = NOW() WHERE id = $1`, scheduleID); err != nil {
		return fmt.Errorf("touch schedule: %w", err)
	}
	return nil
}

// pairArgs аргументы в порядке колонок после id
func pairArgs(first int64, pair *model.Pair, dates []byte) []interface{} {
	return []interface{}{
		first,
		pair.Title,
		pair.Lecturer,
		pair.Classroom,
		pair.Type.Tag(),
		pair.Subgroup.Tag(),
		pair.Time.String(),
		dates,
		pair.Link,
	}
}

func scanScheduleInfo(row pgx.Row) (*model.ScheduleInfo, error) {
	var info model.ScheduleInfo
	if err := row.Scan(&info.ID, &info.Name, &info.LastUpdate, &info.Synced, &info.Position); err != nil {
		return nil, err
	}
	return &info, nil
}

func scanPair(row pgx.Row) (*model.Pair, error) {
	var (
		info                         model.PairInfo
		title, lecturer, classroom   string
		typeTag, subgroupTag, tmText string
		dates                        []byte
		link                         string
	)

	err := row.Scan(&info.ID, &info.ScheduleID, &title, &lecturer, &classroom,
		&typeTag, &subgroupTag, &tmText, &dates, &link)
	if err != nil {
		return nil, fmt.Errorf("scan pair: %w", err)
	}

	return buildPair(info, title, lecturer, classroom, typeTag, subgroupTag, tmText, dates, link)
}

// buildPair восстанавливает доменную пару из колонок таблицы
func buildPair(info model.PairInfo, title, lecturer, classroom, typeTag, subgroupTag, tmText string, dates []byte, link string) (*model.Pair, error) {
	typ, err := model.ParseType(typeTag)
	if err != nil {
		return nil, fmt.Errorf("pair %d: %w", info.ID, err)
	}
	subgroup, err := model.ParseSubgroup(subgroupTag)
	if err != nil {
		return nil, fmt.Errorf("pair %d: %w", info.ID, err)
	}
	tm, err := model.ParseTime(tmText)
	if err != nil {
		return nil, fmt.Errorf("pair %d: %w", info.ID, err)
	}
	date, err := codec.UnmarshalDates(dates)
	if err != nil {
		return nil, fmt.Errorf("pair %d: %w", info.ID, err)
	}

	pair, err := model.NewPair(title, lecturer, classroom, typ, subgroup, tm, date, link)
	if err != nil {
		return nil, fmt.Errorf("pair %d: %w", info.ID, err)
	}
	pair.Info = info
	return pair, nil
}
