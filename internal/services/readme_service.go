package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/ghreadme/ghreadme/internal/classifier"
	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
	"github.com/ghreadme/ghreadme/internal/logger"
	"github.com/ghreadme/ghreadme/internal/models"
	"github.com/ghreadme/ghreadme/internal/readme"
	"github.com/ghreadme/ghreadme/internal/regex"
	"github.com/ghreadme/ghreadme/internal/vcs"
)

// Cache stores JSON snapshots keyed by hash, such as the raw records of the
// last fetch per username.
type Cache interface {
	GenerateHash(key string) string
	Get(hash string) (json.RawMessage, bool, error)
	Set(hash string, response interface{}) error
}

// commentSource returns the comments a user attached to repositories.
type commentSource interface {
	Comments(username string) map[string]string
}

// GenerateOptions selects which repositories make it into the README.
type GenerateOptions struct {
	IncludePrivate bool
	IncludeForks   bool
}

func (o GenerateOptions) classifierOptions() classifier.Options {
	return classifier.Options{IncludePrivate: o.IncludePrivate, IncludeForks: o.IncludeForks}
}

// Result is one generated README and the data it was built from.
type Result struct {
	Username       string
	Records        []models.Contribution
	Classification models.Classification
	Markdown       string
	FetchedAt      time.Time
	Offline        bool
	Options        GenerateOptions
}

type contributionSnapshot struct {
	Username  string                `json:"username"`
	Records   []models.Contribution `json:"records"`
	FetchedAt time.Time             `json:"fetched_at"`
}

type ReadmeService struct {
	newClient  vcs.ClientFactory
	cache      Cache
	translator readme.Translator
	comments   commentSource
	now        func() time.Time

	mu   sync.Mutex
	last *Result
}

type ReadmeOption func(*ReadmeService)

func WithClientFactory(factory vcs.ClientFactory) ReadmeOption {
	return func(s *ReadmeService) {
		s.newClient = factory
	}
}

func WithContributionCache(c Cache) ReadmeOption {
	return func(s *ReadmeService) {
		s.cache = c
	}
}

func WithTranslator(t readme.Translator) ReadmeOption {
	return func(s *ReadmeService) {
		s.translator = t
	}
}

func WithComments(c commentSource) ReadmeOption {
	return func(s *ReadmeService) {
		s.comments = c
	}
}

func WithClock(now func() time.Time) ReadmeOption {
	return func(s *ReadmeService) {
		s.now = now
	}
}

func NewReadmeService(opts ...ReadmeOption) *ReadmeService {
	s := &ReadmeService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks the credential against GitHub and returns the login
// the token belongs to.
func (s *ReadmeService) Validate(ctx context.Context, cred models.Credential) (string, error) {
	_, login, err := s.connect(ctx, cred)
	return login, err
}

func (s *ReadmeService) connect(ctx context.Context, cred models.Credential) (vcs.ContributionsClient, string, error) {
	log := logger.FromContext(ctx)

	if !cred.Complete() {
		return nil, "", domainErrors.ErrCredentialsMissing
	}
	if !regex.IsLogin(cred.Username) {
		return nil, "", domainErrors.ErrInvalidUsername.WithContext("username", cred.Username)
	}
	if s.newClient == nil {
		return nil, "", domainErrors.NewAppError(domainErrors.TypeInternal, "GitHub client not configured", nil)
	}

	client, err := s.newClient(cred.Token)
	if err != nil {
		return nil, "", domainErrors.ErrGitHubData.WithError(err)
	}

	login, err := client.ValidateCredentials(ctx)
	if err != nil {
		log.Warn("credential validation failed",
			"username", cred.Username,
			"error", err)
		return nil, "", err
	}

	log.Debug("credentials validated",
		"username", cred.Username,
		"login", login)

	return client, login, nil
}

// Generate validates the credential, fetches every contribution of
// cred.Username, classifies and renders them. On failure the last result
// is kept as it was.
func (s *ReadmeService) Generate(ctx context.Context, cred models.Credential, opts GenerateOptions) (*Result, error) {
	log := logger.FromContext(ctx)

	client, _, err := s.connect(ctx, cred)
	if err != nil {
		return nil, err
	}

	since, err := client.GetUserCreationYear(ctx, cred.Username)
	if err != nil {
		log.Error("failed to get account creation year",
			"username", cred.Username,
			"error", err)
		return nil, err
	}

	records, err := client.FetchContributions(ctx, cred.Username, since)
	if err != nil {
		log.Error("failed to fetch contributions",
			"username", cred.Username,
			"error", err)
		return nil, err
	}

	fetchedAt := s.now()
	s.storeSnapshot(ctx, contributionSnapshot{
		Username:  cred.Username,
		Records:   records,
		FetchedAt: fetchedAt,
	})

	result := s.build(cred.Username, records, fetchedAt, opts)
	s.setLast(result)

	log.Info("readme generated",
		"username", cred.Username,
		"repositories", result.Classification.Total())

	return result, nil
}

// GenerateOffline renders the README from the cached records of username.
func (s *ReadmeService) GenerateOffline(ctx context.Context, username string, opts GenerateOptions) (*Result, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(username) == "" {
		return nil, domainErrors.ErrUsernameMissing
	}
	if !regex.IsLogin(username) {
		return nil, domainErrors.ErrInvalidUsername.WithContext("username", username)
	}
	if s.cache == nil {
		return nil, domainErrors.ErrNoResult.WithContext("username", username)
	}

	raw, found, err := s.cache.Get(s.cacheKey(username))
	if err != nil {
		log.Warn("failed to read contribution cache",
			"username", username,
			"error", err)
		return nil, domainErrors.ErrNoResult.WithError(err).WithContext("username", username)
	}
	if !found {
		return nil, domainErrors.ErrNoResult.WithContext("username", username)
	}

	var snapshot contributionSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, domainErrors.ErrNoResult.WithError(err).WithContext("username", username)
	}

	result := s.build(username, snapshot.Records, snapshot.FetchedAt, opts)
	result.Offline = true
	s.setLast(result)

	log.Debug("readme generated from cache",
		"username", username,
		"repositories", result.Classification.Total())

	return result, nil
}

// Rerender rebuilds the Markdown of the last result with the current
// comments and language. Classification is left untouched.
func (s *ReadmeService) Rerender() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return nil, domainErrors.ErrNoResult
	}

	updated := *s.last
	updated.Markdown = s.render(updated.Classification)
	s.last = &updated

	return s.copyLast(), nil
}

// Last returns the last successful result, or nil.
func (s *ReadmeService) Last() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyLast()
}

func (s *ReadmeService) build(username string, records []models.Contribution, fetchedAt time.Time, opts GenerateOptions) *Result {
	classification := classifier.Classify(username, records, opts.classifierOptions())
	classification.GeneratedAt = fetchedAt

	return &Result{
		Username:       username,
		Records:        records,
		Classification: classification,
		Markdown:       s.render(classification),
		FetchedAt:      fetchedAt,
		Options:        opts,
	}
}

func (s *ReadmeService) render(c models.Classification) string {
	var comments map[string]string
	if s.comments != nil {
		comments = s.comments.Comments(c.Username)
	}
	return readme.RenderMarkdown(c, comments, s.translator)
}

func (s *ReadmeService) setLast(result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *result
	s.last = &stored
}

func (s *ReadmeService) copyLast() *Result {
	if s.last == nil {
		return nil
	}
	out := *s.last
	return &out
}

func (s *ReadmeService) storeSnapshot(ctx context.Context, snapshot contributionSnapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(s.cacheKey(snapshot.Username), snapshot); err != nil {
		logger.FromContext(ctx).Warn("failed to write contribution cache",
			"username", snapshot.Username,
			"error", err)
	}
}

func (s *ReadmeService) cacheKey(username string) string {
	return s.cache.GenerateHash("contributions:" + strings.ToLower(username))
}
