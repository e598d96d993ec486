package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/evolfitness/booking-system/internal/core/domain"
	"github.com/evolfitness/booking-system/internal/core/ports"
)

// ImageStore abstracts the upload directory where class images are written.
type ImageStore interface {
	// Save writes content under a sanitized version of name and returns the
	// filename actually used (a numeric suffix is appended on collision).
	Save(name string, content []byte) (string, error)
}

// ClassListCache abstracts the read-side cache for the full class listing.
// Implementations must treat a miss as (nil, nil).
type ClassListCache interface {
	Get(ctx context.Context) ([]*domain.Class, error)
	Set(ctx context.Context, classes []*domain.Class) error
	Invalidate(ctx context.Context) error
}

// ClassService implements class creation and the roster/listing queries.
type ClassService struct {
	classes  ports.ClassRepository
	accounts ports.AccountRepository
	images   ImageStore
	cache    ClassListCache
	log      zerolog.Logger
}

func NewClassService(
	classes ports.ClassRepository,
	accounts ports.AccountRepository,
	images ImageStore,
	cache ClassListCache,
	log zerolog.Logger,
) *ClassService {
	return &ClassService{classes: classes, accounts: accounts, images: images, cache: cache, log: log}
}

// CreateClass validates the input, stores the decoded image, and inserts the
// class with an empty roster. The image write and the insert are two
// separate steps with no rollback: a crash in between leaves an orphaned
// file, which is acceptable for this domain.
func (s *ClassService) CreateClass(ctx context.Context, in ports.CreateClassInput) (*domain.Class, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	imageName := strings.TrimSpace(in.ImageName)
	imageContent := strings.TrimSpace(in.ImageContent)

	switch {
	case name == "":
		return nil, domain.Validation("El nombre es obligatorio")
	case description == "":
		return nil, domain.Validation("La descripcion es obligatoria")
	case in.ScheduledAt.IsZero():
		return nil, domain.Validation("La fechaHora no es valida")
	case in.Capacity <= 0:
		return nil, domain.Validation("plazasMaximas debe ser un entero mayor que 0")
	case imageName == "":
		return nil, domain.Validation("La imagen es obligatoria")
	case imageContent == "":
		return nil, domain.Validation("Contenido de imagen obligatorio")
	}

	decoded, err := base64.StdEncoding.DecodeString(imageContent)
	if err != nil || len(decoded) == 0 {
		return nil, domain.Validation("Contenido de imagen invalido")
	}

	storedName, err := s.images.Save(imageName, decoded)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	class := &domain.Class{
		Name:              name,
		Description:       description,
		ScheduledAt:       in.ScheduledAt,
		Capacity:          in.Capacity,
		Image:             storedName,
		Enrolled:          []string{},
		LateCancellations: []string{},
	}

	created, err := s.classes.Insert(ctx, class)
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("failed to insert class")
		return nil, err
	}

	s.invalidateCache(ctx)
	s.log.Info().Str("class_id", created.ID).Str("name", created.Name).Time("scheduled_at", created.ScheduledAt).Msg("class created")
	return created, nil
}

// ListClasses returns every class ascending by scheduled time, serving from
// the cache when possible. Cache failures fall through to the repository.
func (s *ClassService) ListClasses(ctx context.Context) ([]*domain.Class, error) {
	if cached, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("class cache read failed, falling back to store")
	} else if cached != nil {
		return cached, nil
	}

	classes, err := s.classes.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, classes); err != nil {
		s.log.Warn().Err(err).Msg("class cache write failed")
	}
	return classes, nil
}

// ListClassesOn filters the listing to classes on day's calendar date.
func (s *ClassService) ListClassesOn(ctx context.Context, day time.Time) ([]*domain.Class, error) {
	all, err := s.ListClasses(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Class, 0, len(all))
	for _, c := range all {
		if c.ScheduledOn(day) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// ListClassesForUser filters the listing to classes whose roster contains
// userID.
func (s *ClassService) ListClassesForUser(ctx context.Context, userID string) ([]*domain.Class, error) {
	all, err := s.ListClasses(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Class, 0, len(all))
	for _, c := range all {
		if c.HasEnrolled(userID) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// ListEnrolledUsernames resolves a class roster to usernames in stored
// order. Roster ids with no matching user record resolve to the
// deleted-user placeholder rather than dropping the seat from the count.
func (s *ClassService) ListEnrolledUsernames(ctx context.Context, classID string) ([]string, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if len(class.Enrolled) == 0 {
		return []string{}, nil
	}

	byID, err := s.accounts.ResolveUsernames(ctx, class.Enrolled)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(class.Enrolled))
	for _, id := range class.Enrolled {
		if name, ok := byID[id]; ok && name != "" {
			names = append(names, name)
		} else {
			names = append(names, domain.DeletedUserPlaceholder)
		}
	}
	return names, nil
}

func (s *ClassService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("class cache invalidation failed")
	}
}
