/*
Package nextbusclient is a client for the public NextBus real-time
prediction feed. It downloads an agency's route/stop topology once, builds a
normalized in-memory index over it, and thereafter issues batched prediction
queries, reshaping the heterogeneous XML responses into uniform records that
preserve caller-declared ordering.

# Basic Usage

	cfg, err := config.LoadAppConfig()
	if err != nil {
	    log.Fatal(err)
	}
	client := nextbusclient.NewClient(cfg)
	if err := client.BuildCache(); err != nil {
	    log.Fatal(err)
	}

	recs, err := client.PredictByRoute("501", "", nextbusclient.UnitMinutes)

Every predictor fails with ErrNoCache until BuildCache (or ImportCache)
succeeds, without issuing a network request.

# Active Subset

EstimateActive probes vehicle locations to learn which routes are currently
in service. While the resulting snapshot is fresh (default 600s), listings
and nearest-stop lookups prefer it over the full topology.

# Persistence

ExportCache/ImportCache move the topology through a caller-supplied store as
an opaque payload, so restarts can skip the routeConfig download.

# Concurrency

One logical owner per Client. Predictors may run concurrently against a
stable cache; nothing is safe to run concurrently with BuildCache or
ImportCache on the same instance.
*/
package nextbusclient
