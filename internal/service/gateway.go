package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"go-tms-api/internal/model"
	"go-tms-api/pkg/apierror"
)

// Repository is the persistence contract the gateway needs for one entity type.
type Repository[E model.Keyed[K], K model.ID] interface {
	FindByID(ctx context.Context, id K) (E, error)
	Insert(ctx context.Context, entity E) (E, error)
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id K) error
	ListBy(ctx context.Context, relation string, value int64) ([]E, error)
}

// Mapper converts between an entity and its DTO; both directions must be lossless.
type Mapper[E any, D any] struct {
	ToDTO    func(E) D
	ToEntity func(D) E
}

// ChangeRecorder observes committed mutations.
type ChangeRecorder interface {
	Record(ctx context.Context, change model.EntityChange)
}

// Gateway provides get/create/update/delete over one resource kind and maps
// absence and collisions onto NotFound/AlreadyExists errors.
type Gateway[E model.Keyed[K], D model.Keyed[K], K model.ID] struct {
	entity   string
	repo     Repository[E, K]
	mapper   Mapper[E, D]
	prepare  func(dto *D) error
	recorder ChangeRecorder
}

func NewGateway[E model.Keyed[K], D model.Keyed[K], K model.ID](entity string, repo Repository[E, K], mapper Mapper[E, D]) *Gateway[E, D, K] {
	return &Gateway[E, D, K]{entity: entity, repo: repo, mapper: mapper}
}

// SetPrepare installs a hook run on every DTO before it is written.
func (g *Gateway[E, D, K]) SetPrepare(prepare func(dto *D) error) {
	g.prepare = prepare
}

func (g *Gateway[E, D, K]) SetRecorder(recorder ChangeRecorder) {
	g.recorder = recorder
}

func (g *Gateway[E, D, K]) Entity() string {
	return g.entity
}

func (g *Gateway[E, D, K]) GetByID(ctx context.Context, id K) (D, error) {
	entity, err := g.repo.FindByID(ctx, id)
	if err != nil {
		var zero D
		return zero, g.translate(err, int64(id))
	}

	return g.mapper.ToDTO(entity), nil
}

// Create inserts dto in one statement; the uniqueness constraint of the
// store decides collisions, so concurrent creators cannot both succeed.
func (g *Gateway[E, D, K]) Create(ctx context.Context, dto D) (D, error) {
	var zero D
	if err := g.runPrepare(&dto); err != nil {
		return zero, err
	}

	stored, err := g.repo.Insert(ctx, g.mapper.ToEntity(dto))
	if err != nil {
		return zero, g.translate(err, int64(dto.GetID()))
	}

	g.record(ctx, model.ActionCreated, int64(stored.GetID()))
	return g.mapper.ToDTO(stored), nil
}

// Update overwrites every field of the stored entity with dto.
func (g *Gateway[E, D, K]) Update(ctx context.Context, dto D) error {
	if err := g.runPrepare(&dto); err != nil {
		return err
	}

	if err := g.repo.Update(ctx, g.mapper.ToEntity(dto)); err != nil {
		return g.translate(err, int64(dto.GetID()))
	}

	g.record(ctx, model.ActionUpdated, int64(dto.GetID()))
	return nil
}

func (g *Gateway[E, D, K]) Delete(ctx context.Context, id K) error {
	if err := g.repo.Delete(ctx, id); err != nil {
		return g.translate(err, int64(id))
	}

	g.record(ctx, model.ActionDeleted, int64(id))
	return nil
}

func (g *Gateway[E, D, K]) ListBy(ctx context.Context, relation string, value int64) ([]D, error) {
	entities, err := g.repo.ListBy(ctx, relation, value)
	if err != nil {
		return nil, g.translate(err, value)
	}

	items := make([]D, 0, len(entities))
	for _, entity := range entities {
		items = append(items, g.mapper.ToDTO(entity))
	}

	return items, nil
}

func (g *Gateway[E, D, K]) runPrepare(dto *D) error {
	if g.prepare == nil {
		return nil
	}
	return g.prepare(dto)
}

func (g *Gateway[E, D, K]) record(ctx context.Context, action model.ChangeAction, id int64) {
	if g.recorder == nil {
		return
	}
	g.recorder.Record(ctx, model.EntityChange{Action: action, Entity: g.entity, EntityID: id})
}

func (g *Gateway[E, D, K]) translate(err error, id int64) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		slog.Warn("entity not found", "entity", g.entity, "id", id)
		return apierror.NotFound(g.entity, id)
	case errors.Is(err, model.ErrAlreadyExists):
		return g.conflict(err, id)
	case errors.Is(err, model.ErrInvalidInput):
		slog.Warn("entity rejected by constraint", "entity", g.entity, "id", id, "error", err)
		return apierror.BadRequest(g.entity+" references a missing or invalid entity", "")
	default:
		return err
	}
}

// conflict reports the key the store says collided, falling back to id.
func (g *Gateway[E, D, K]) conflict(err error, id int64) error {
	var conflict *model.ConflictError
	if errors.As(err, &conflict) && conflict.Column != "" {
		if conflict.Column != "id" {
			slog.Warn("entity already exists", "entity", g.entity, "column", conflict.Column, "value", conflict.Value)
			return apierror.AlreadyExistsWith(g.entity, conflict.Column)
		}
		if collided, parseErr := strconv.ParseInt(conflict.Value, 10, 64); parseErr == nil {
			id = collided
		}
	}

	slog.Warn("entity already exists", "entity", g.entity, "id", id)
	return apierror.AlreadyExists(g.entity, id)
}
