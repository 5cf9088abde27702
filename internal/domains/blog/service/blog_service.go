package service

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/pkg/keys"
	"fedblog-backend/pkg/logger"
)

type blogService struct {
	repo blog.Repository
}

// NewBlogService creates the identity service.
func NewBlogService(repo blog.Repository) blog.Service {
	return &blogService{repo: repo}
}

func (s *blogService) Setup(ctx context.Context, req blog.SetupRequest) (*blog.Identity, error) {
	// 1. Collected field validation - nothing is written on any error.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Read the prior record to decide between first setup and rewrite.
	prior, exists, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	// 3. A rewrite must be authorized by the current password.
	if exists && prior.PasswordHash != "" {
		if !blog.VerifyPasswordAgainst(prior.PasswordHash, req.Password) {
			return nil, validation.Errors{
				"password": fmt.Errorf("password is incorrect"),
			}
		}
	}

	// 4. Key pair: generated exactly once. Remote servers verify our
	// signatures against the key they discovered at follow time, so the pair
	// is carried forward verbatim on every rewrite.
	var privatePEM, publicPEM string
	if exists {
		privatePEM = prior.PrivateKey
		publicPEM = prior.PublicKey
	} else {
		pair, err := keys.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate key pair: %w", err)
		}
		if privatePEM, err = keys.ExportPrivate(pair.Private); err != nil {
			return nil, fmt.Errorf("export private key: %w", err)
		}
		if publicPEM, err = keys.ExportPublic(pair.Public); err != nil {
			return nil, fmt.Errorf("export public key: %w", err)
		}
	}

	// 5. Credential: rotate only when a replacement is explicitly supplied,
	// otherwise carry the existing hash forward. A rewrite can never
	// silently drop the credential.
	var passwordHash string
	switch {
	case req.NewPassword != "":
		passwordHash, err = blog.HashPassword(req.NewPassword)
	case exists && prior.PasswordHash != "":
		passwordHash = prior.PasswordHash
	default:
		passwordHash, err = blog.HashPassword(req.Password)
	}
	if err != nil {
		return nil, err
	}

	// 6. Persist the full record, overwriting any prior one.
	record := &blog.StoredIdentity{
		Handle:       req.Handle,
		Title:        req.Title,
		Description:  req.Description,
		Published:    time.Now().UTC().Format(time.RFC3339),
		Icon:         req.Icon,
		Image:        req.Image,
		PasswordHash: passwordHash,
		PrivateKey:   privatePEM,
		PublicKey:    publicPEM,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	logger.Info("blog identity written", map[string]interface{}{
		"handle":      record.Handle,
		"first_setup": !exists,
	})

	return toIdentity(record)
}

func (s *blogService) Get(ctx context.Context) (*blog.Identity, error) {
	record, exists, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, blog.ErrNoIdentity
	}

	identity, err := toIdentity(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", blog.ErrCorruptState, err)
	}
	return identity, nil
}

func (s *blogService) VerifyCurrentPassword(ctx context.Context, password string) bool {
	identity, err := s.Get(ctx)
	if err != nil {
		return false
	}
	return blog.VerifyPasswordAgainst(identity.PasswordHash, password)
}

// toIdentity deserializes the stored record back into usable key objects.
func toIdentity(record *blog.StoredIdentity) (*blog.Identity, error) {
	private, err := keys.ImportPrivate(record.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("import private key: %w", err)
	}
	public, err := keys.ImportPublic(record.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("import public key: %w", err)
	}
	published, err := time.Parse(time.RFC3339, record.Published)
	if err != nil {
		return nil, fmt.Errorf("parse published: %w", err)
	}

	return &blog.Identity{
		Handle:       record.Handle,
		Title:        record.Title,
		Description:  record.Description,
		Icon:         record.Icon,
		Image:        record.Image,
		PasswordHash: record.PasswordHash,
		PrivateKey:   private,
		PublicKey:    public,
		Published:    published,
	}, nil
}
