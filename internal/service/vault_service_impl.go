package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type vaultService struct {
	vault    repository.VaultRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewVaultService(vault repository.VaultRepo, uow db.UnitOfWork, observers ...UseCaseObserver) VaultService {
	return &vaultService{vault: vault, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *vaultService) Save(ctx context.Context, userID string, p *domain.VaultPrompt) error {
	if err := preparePrompt(p); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.UserID = userID
	p.UpdatedAt = now

	if p.ID == "" {
		p.ID = uuid.New().String()
		p.CreatedAt = now
		return s.vault.Create(ctx, p)
	}

	existing, err := s.Get(ctx, userID, p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	return s.vault.Update(ctx, p)
}

func (s *vaultService) Get(ctx context.Context, userID, id string) (*domain.VaultPrompt, error) {
	p, err := s.vault.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("vault prompt: %w", repository.ErrNotFound)
	}
	return p, nil
}

func (s *vaultService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.vault.Delete(ctx, id)
}

func (s *vaultService) List(ctx context.Context, userID string) ([]*domain.VaultPrompt, error) {
	return s.vault.ListByUser(ctx, userID)
}

func (s *vaultService) Filter(ctx context.Context, userID string, f VaultFilter) ([]*domain.VaultPrompt, error) {
	all, err := s.vault.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*domain.VaultPrompt
	for _, p := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) {
			continue
		}
		if f.Tag != "" && !p.HasTag(f.Tag) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Tags returns every distinct tag in the order it first appears in List.
func (s *vaultService) Tags(ctx context.Context, userID string) ([]string, error) {
	all, err := s.vault.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var tags []string
	for _, p := range all {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags, nil
}

// vaultImportFile is the YAML layout accepted by ImportYAML.
type vaultImportFile struct {
	Prompts []vaultImportEntry `yaml:"prompts"`
}

type vaultImportEntry struct {
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	Tags     []string `yaml:"tags"`
	Category string   `yaml:"category"`
}

// ImportYAML saves every prompt in r in one transaction. Any invalid entry
// rejects the whole file.
func (s *vaultService) ImportYAML(ctx context.Context, userID string, r io.Reader) (n int, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "import-vault", userID, startedAt, map[string]any{"count": n}, err)
	}()

	var file vaultImportFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err = dec.Decode(&file); err != nil {
		if err == io.EOF {
			return 0, invalid("import file is empty")
		}
		return 0, invalid("parsing import file: %v", err)
	}

	prompts := make([]*domain.VaultPrompt, 0, len(file.Prompts))
	now := time.Now().UTC()
	for i, e := range file.Prompts {
		p := &domain.VaultPrompt{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     e.Title,
			Content:   e.Content,
			Tags:      e.Tags,
			Category:  e.Category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err = preparePrompt(p); err != nil {
			return 0, fmt.Errorf("prompt %d: %w", i+1, err)
		}
		prompts = append(prompts, p)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVault := repository.NewSQLiteVaultRepo(tx)
		for _, p := range prompts {
			if err := txVault.Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(prompts), nil
}

func preparePrompt(p *domain.VaultPrompt) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return invalidErr(err)
	}
	if !domain.IsVaultCategory(p.Category) {
		return invalid("unknown category %q (want one of %s)", p.Category, strings.Join(domain.VaultCategories, ", "))
	}
	return nil
}
