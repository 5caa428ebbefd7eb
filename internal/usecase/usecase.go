package usecase

import (
	"fmt"
	"unicode"

	"github.com/vadimbarashkov/tinyurl-service/internal/entity"
	"go.uber.org/zap"
)

// ShortURIGenerator produces candidate short URIs. Candidates may collide
// with existing ones; URLUseCase retries on collision.
type ShortURIGenerator interface {
	Generate(originalURL string) (string, error)
}

type urlRepository interface {
	InsertIfAbsent(shortURI string, url *entity.URL) bool
	Get(shortURI string) (*entity.URL, bool)
	Remove(shortURI string) bool
	IncrementClicks(shortURI string) (*entity.URL, bool)
	Size() int
}

// Limits bounds the work and the memory URLUseCase may consume.
type Limits struct {
	// MaxAddAttempts is the number of generated candidates tried per create call.
	MaxAddAttempts int
	// MaxTotalItems is the item ceiling checked before a create when MonitorMaxTotalItems is set.
	MaxTotalItems int
	// MonitorMaxTotalItems enables the MaxTotalItems check.
	MonitorMaxTotalItems bool
}

type URLUseCase struct {
	generator ShortURIGenerator
	urlRepo   urlRepository
	limits    Limits
	logger    *zap.Logger
}

// New returns a URLUseCase. All dependencies are required; a nil logger is
// replaced by a no-op one.
func New(generator ShortURIGenerator, urlRepo urlRepository, limits *Limits, logger *zap.Logger) (*URLUseCase, error) {
	const op = "usecase.New"

	if generator == nil {
		return nil, fmt.Errorf("%s: generator is required: %w", op, entity.ErrInvalidArgument)
	}
	if urlRepo == nil {
		return nil, fmt.Errorf("%s: url repository is required: %w", op, entity.ErrInvalidArgument)
	}
	if limits == nil {
		return nil, fmt.Errorf("%s: limits are required: %w", op, entity.ErrInvalidArgument)
	}
	if limits.MaxAddAttempts < 1 {
		return nil, fmt.Errorf("%s: max add attempts must be positive: %w", op, entity.ErrInvalidArgument)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &URLUseCase{
		generator: generator,
		urlRepo:   urlRepo,
		limits:    *limits,
		logger:    logger,
	}, nil
}

// CreateShortURI binds originalURL to a new short URI and returns it.
//
// With an empty customShortURI the short URI is generated, retrying on
// collision up to MaxAddAttempts times. Otherwise customShortURI is used as
// is and must consist of letters and digits only.
func (uc *URLUseCase) CreateShortURI(originalURL, customShortURI string) (string, error) {
	const op = "usecase.URLUseCase.CreateShortURI"

	if originalURL == "" {
		return "", fmt.Errorf("%s: empty original url: %w", op, entity.ErrInvalidArgument)
	}

	// Best effort: the check races with concurrent creates and may let the
	// store exceed the ceiling by the number of in-flight calls.
	if uc.limits.MonitorMaxTotalItems {
		if total := uc.urlRepo.Size(); total > uc.limits.MaxTotalItems {
			uc.logger.Error("total items limit exceeded",
				zap.String("op", op),
				zap.Int("total_items", total),
				zap.Int("max_total_items", uc.limits.MaxTotalItems),
			)
			return "", fmt.Errorf("%s: %w", op, entity.ErrCapacityExceeded)
		}
	}

	if customShortURI != "" {
		return uc.createCustomShortURI(originalURL, customShortURI)
	}

	for attempt := 1; ; attempt++ {
		if attempt > uc.limits.MaxAddAttempts {
			uc.logger.Error("failed to generate unique short uri",
				zap.String("op", op),
				zap.Int("max_add_attempts", uc.limits.MaxAddAttempts),
			)
			return "", fmt.Errorf("%s: %w", op, entity.ErrResourceExhausted)
		}

		shortURI, err := uc.generator.Generate(originalURL)
		if err != nil {
			return "", fmt.Errorf("%s: failed to generate short uri: %w", op, err)
		}

		if uc.urlRepo.InsertIfAbsent(shortURI, entity.NewURL(originalURL)) {
			return shortURI, nil
		}

		uc.logger.Debug("short uri collision", zap.String("op", op), zap.Int("attempt", attempt))
	}
}

func (uc *URLUseCase) createCustomShortURI(originalURL, customShortURI string) (string, error) {
	const op = "usecase.URLUseCase.createCustomShortURI"

	if !isLettersOrDigits(customShortURI) {
		return "", fmt.Errorf("%s: custom short uri must be alphanumeric: %w", op, entity.ErrInvalidArgument)
	}

	if !uc.urlRepo.InsertIfAbsent(customShortURI, entity.NewURL(originalURL)) {
		return "", fmt.Errorf("%s: %w", op, entity.ErrAlreadyExists)
	}

	return customShortURI, nil
}

// GetLongURL returns the original URL bound to shortURI and counts the click.
func (uc *URLUseCase) GetLongURL(shortURI string) (string, error) {
	const op = "usecase.URLUseCase.GetLongURL"

	url, ok := uc.urlRepo.IncrementClicks(shortURI)
	if !ok {
		return "", fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}

	return url.OriginalURL(), nil
}

// DeleteShortURI removes the record bound to shortURI.
func (uc *URLUseCase) DeleteShortURI(shortURI string) error {
	const op = "usecase.URLUseCase.DeleteShortURI"

	if !uc.urlRepo.Remove(shortURI) {
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}

	return nil
}

// GetClickCount returns how many times shortURI was resolved.
func (uc *URLUseCase) GetClickCount(shortURI string) (uint64, error) {
	const op = "usecase.URLUseCase.GetClickCount"

	url, ok := uc.urlRepo.Get(shortURI)
	if !ok {
		return 0, fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}

	return url.AccessCount(), nil
}

// GetTotalItemsNumber returns the number of live short URIs.
func (uc *URLUseCase) GetTotalItemsNumber() int {
	return uc.urlRepo.Size()
}

func isLettersOrDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
