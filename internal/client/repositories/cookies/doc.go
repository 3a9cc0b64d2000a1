// Package cookies persists the client's cookie jar in the local database.
//
// A cookie is a named string value plus the attributes it was written with
// (secure-only transmission and SameSite policy). Writes are whole-value
// upserts; there are no partial updates.
//
// The SQLite implementation works over dbx.DBTX, so callers can run several
// writes inside one transaction:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := cookies.NewSQLiteRepository(tx)
//	    if err := repo.Set(ctx, tokenCookie); err != nil {
//	        return err
//	    }
//	    return repo.Set(ctx, progressCookie)
//	})
package cookies
