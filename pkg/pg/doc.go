// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose schema migrations served from an embedded
// filesystem, and a readiness probe.
//
// Typical wiring at service startup:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// Connect retries its verification ping with a doubling wait, so the service
// can come up before its database does. Migrate runs every pending goose
// migration from the provided fs.FS; shipping the SQL inside the binary via
// embed keeps deployments to a single artifact.
//
// All failures wrap the package sentinels (ErrInvalidDSN, ErrConnect,
// ErrMigrate, ErrHealthcheck) for errors.Is checks at the call site.
package pg
