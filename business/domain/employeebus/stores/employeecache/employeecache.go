// Package employeecache contains employee related CRUD functionality with
// caching. Actor resolution runs on every authenticated request.
package employeecache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/employeebus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for employee data and caching.
type Store struct {
	log    *logger.Logger
	storer employeebus.Storer
	cache  *sturdyc.Client[employeebus.Employee]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer employeebus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[employeebus.Employee](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (employeebus.Storer, error) {
	storer, err := s.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Store{
		log:    s.log,
		storer: storer,
		cache:  s.cache,
	}, nil
}

// Create inserts a new employee into the database and primes the cache.
func (s *Store) Create(ctx context.Context, emp employeebus.Employee) error {
	if err := s.storer.Create(ctx, emp); err != nil {
		return err
	}

	s.cache.Set(emp.UserID.String(), emp)

	return nil
}

// QueryByUserID gets the employee bound to the specified user, reading
// through the cache.
func (s *Store) QueryByUserID(ctx context.Context, userID uuid.UUID) (employeebus.Employee, error) {
	key := userID.String()

	fetch := func(ctx context.Context) (employeebus.Employee, error) {
		s.log.Debug(ctx, "employeecache: miss", "user_id", key)
		return s.storer.QueryByUserID(ctx, userID)
	}

	return s.cache.GetOrFetch(ctx, key, fetch)
}
