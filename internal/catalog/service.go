package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	// catalog changes rarely, custom additions invalidate explicitly
	catalogCacheExpire = 10 * 60 // seconds
	// builtin exercises are shared by every user, but custom ones are not
	cacheKeyPrefix = "catalog::"
)

var (
	ErrEmptyName      = errors.New("exercise name is empty")
	ErrExerciseExists = errors.New("exercise already exists")
)

type exercisesRepo interface {
	ListExercises(ctx context.Context, userID string) ([]workout.Exercise, error)
	AddCustom(ctx context.Context, userID string, ex workout.Exercise) (bool, error)
}

type Service struct {
	repo  exercisesRepo
	cache *freecache.Cache
}

func NewService(repo exercisesRepo, cacheSizeMB int) *Service {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 10
	}
	return &Service{
		repo:  repo,
		cache: freecache.NewCache(cacheSizeMB * 1024 * 1024),
	}
}

func (s *Service) GetExercises(ctx context.Context, userID string) (_ []workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.get-exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte(cacheKeyPrefix + userID)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var exercises []workout.Exercise
		if err := json.Unmarshal(cached, &exercises); err == nil {
			return exercises, nil
		}
		log.Errorf("catalog cache: unmarshal for [%s] failed: %s", userID, err)
	}

	exercises, err := s.repo.ListExercises(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	exBytes, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("catalog cache: marshal exercises: %s", err)
		return exercises, nil
	}
	if err := s.cache.Set(cacheKey, exBytes, catalogCacheExpire); err != nil {
		log.Errorf("catalog cache: set for [%s]: %s", userID, err)
	}

	return exercises, nil
}

// SearchExercises filters the catalog with Exercise.Matches. An empty query returns all.
func (s *Service) SearchExercises(ctx context.Context, userID, query string) ([]workout.Exercise, error) {
	all, err := s.GetExercises(ctx, userID)
	if err != nil {
		return nil, err
	}
	matched := make([]workout.Exercise, 0, len(all))
	for _, ex := range all {
		if ex.Matches(query) {
			matched = append(matched, ex)
		}
	}
	return matched, nil
}

// CreateCustom stores a user exercise under an id derived from its name.
func (s *Service) CreateCustom(ctx context.Context, userID string, ex workout.Exercise) (_ *workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.create-custom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ex.Name = strings.TrimSpace(ex.Name)
	if ex.Name == "" {
		return nil, ErrEmptyName
	}
	ex.ID = workout.DeriveID(ex.Name)
	if ex.ID == "" {
		return nil, ErrEmptyName
	}

	added, err := s.repo.AddCustom(ctx, userID, ex)
	if err != nil {
		return nil, fmt.Errorf("add custom exercise: %w", err)
	}
	if !added {
		return nil, ErrExerciseExists
	}

	s.cache.Del([]byte(cacheKeyPrefix + userID))
	return &ex, nil
}
