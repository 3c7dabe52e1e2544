package mid

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/web"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
)

// BeginCommitRollback wraps the handler in a database transaction that is
// reachable through GetTran. An error response rolls the work back.
func BeginCommitRollback(log *logger.Logger, bgn sqldb.Beginner) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			tx, err := bgn.Begin()
			if err != nil {
				return errs.Errorf(errs.InternalOnlyLog, "begin tx: %s", err)
			}
			log.Debug(ctx, "tx begin", "path", r.URL.Path)

			resp := next(setTran(ctx, tx), r)

			if checkIsError(resp) != nil {
				rollback(ctx, log, tx)
				return resp
			}

			if err := tx.Commit(); err != nil {
				rollback(ctx, log, tx)
				return errs.Errorf(errs.InternalOnlyLog, "commit tx: %s", err)
			}
			log.Debug(ctx, "tx commit", "path", r.URL.Path)

			return resp
		}

		return h
	}

	return m
}

func rollback(ctx context.Context, log *logger.Logger, tx sqldb.CommitRollbacker) {
	err := tx.Rollback()
	switch {
	case err == nil:
		log.Debug(ctx, "tx rollback")
	case errors.Is(err, sql.ErrTxDone):
	default:
		log.Error(ctx, "tx rollback", "ERROR", err)
	}
}
