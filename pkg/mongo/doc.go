// Package mongo bootstraps the MongoDB layer: an environment-configured
// client with startup retries and a readiness probe.
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Disconnect(context.Background())
//
//	db := client.Database(cfg.Database)
//
// Connect verifies the topology with a primary ping and retries on an
// interval, so services may start before the database answers. Failures
// wrap ErrConnect and ErrHealthcheck for errors.Is checks.
package mongo
