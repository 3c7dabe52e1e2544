// Package tenantbus provides business access to the companies using the system.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound   = errors.New("tenant not found")
	ErrUniqueSlug = errors.New("slug is not unique")
	ErrInvalid    = errors.New("tenant is invalid")
)

// Storer defines the behavior required by the tenantbus to interact with the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, t Tenant) error
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryBySlug(ctx context.Context, slug string) (Tenant, error)
}

// Core manages the set of APIs for tenant access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for tenant api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new tenant to the system. An empty slug is derived from the name.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	name := strings.TrimSpace(nt.Name)
	if name == "" {
		return Tenant{}, fmt.Errorf("create: name: %w", ErrInvalid)
	}

	slug := nt.Slug
	if slug == "" {
		slug = Slugify(name)
	}

	now := time.Now().UTC()

	t := Tenant{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	tenant, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return tenant, nil
}

// QueryBySlug finds the tenant by its slug.
func (c *Core) QueryBySlug(ctx context.Context, slug string) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryBySlug")
	defer span.End()

	tenant, err := c.storer.QueryBySlug(ctx, slug)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: slug[%s]: %w", slug, err)
	}

	return tenant, nil
}

// Slugify lowercases the name and joins its words with hyphens, folding the
// German umlauts the way company names are usually transliterated.
func Slugify(name string) string {
	r := strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
	name = r.Replace(strings.ToLower(name))

	var b strings.Builder
	dash := false
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			b.WriteRune(ch)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
