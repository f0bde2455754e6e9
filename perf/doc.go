// Package perf runs volley load tests programmatically.
//
// It is the library form of `volley run`: build a Config, hand it to a
// Runner and read the Result.
//
// # Quick Start
//
//	cfg := perf.DefaultConfig()
//	cfg.URL = "http://localhost:8080/index.php"
//	cfg.Requests = 1000
//	cfg.Concurrency = 50
//
//	result, err := perf.NewRunner(cfg).Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stats := result.Statistics()
//	fmt.Printf("Success: %d, Fail: %d\n", stats.Success, stats.Failure)
//	fmt.Printf("Requests per second: %.2f\n", stats.RequestsPerSecond)
//
// # Loading From a File
//
// Configurations can also be read from YAML or JSON:
//
//	cfg, err := perf.LoadConfig("load.yaml")
//
// # Cancellation
//
// Cancelling the context passed to Run stops admission of new requests.
// Requests already in flight are awaited and the partial Result is returned
// together with the context error.
//
// # Thread Safety
//
// A Runner may be reused for sequential runs but must not run concurrently
// with itself.
package perf
