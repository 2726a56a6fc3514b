// Command placesim runs simulated-annealing placement over a problem loaded
// from YAML, or a synthetic one, and reports the final cost. Optionally
// serves Prometheus metrics the same way shardcache's cmd/bench does.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	promadapter "github.com/vlsiplace/vlsiplace/metrics/prom"
	"github.com/vlsiplace/vlsiplace/placement"
	"github.com/vlsiplace/vlsiplace/problemgen"
	"github.com/vlsiplace/vlsiplace/schedule"
)

func main() {
	var (
		problemPath = flag.String("problem", "", "path to a YAML problem file; empty = generate one")
		outPath     = flag.String("save", "", "path to write the generated problem to, when -problem is empty")

		genWidth    = flag.Int("gen-width", 16, "synthetic problem grid width")
		genHeight   = flag.Int("gen-height", 16, "synthetic problem grid height")
		genVertices = flag.Int("gen-vertices", 64, "synthetic problem vertex count")
		genNets     = flag.Int("gen-nets", 32, "synthetic problem net count")
		genSeed     = flag.Int64("gen-seed", 1, "synthetic problem RNG seed")

		t0            = flag.Float64("t0", 10, "initial annealing temperature")
		iterations    = flag.Int("iterations", 200, "number of temperature steps")
		stepsPerIter  = flag.Int("steps", 200, "Step calls per temperature value")
		distanceLimit = flag.Int("distance", 8, "nearby-chip search radius")
		coolingRatio  = flag.Float64("cooling", 0.95, "geometric cooling ratio")

		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr (e.g. :8080); empty = disabled")
	)
	flag.Parse()

	var s *placement.State
	if *problemPath != "" {
		loaded, err := problemgen.LoadProblem(*problemPath)
		if err != nil {
			log.Fatalf("load problem: %v", err)
		}
		s = loaded
	} else {
		generated, err := problemgen.Generate(
			problemgen.WithSeed(*genSeed),
			problemgen.WithDimensions(*genWidth, *genHeight),
			problemgen.WithVertices(*genVertices),
			problemgen.WithNets(*genNets),
		)
		if err != nil {
			log.Fatalf("generate problem: %v", err)
		}
		s = generated
		if *outPath != "" {
			if err := problemgen.SaveProblem(s, *outPath); err != nil {
				log.Fatalf("save generated problem: %v", err)
			}
		}
	}

	var metrics placement.Metrics = placement.NoopMetrics
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = promadapter.New(reg, "vlsiplace", "placesim", nil)
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	startCost := netTotalCost(s)
	log.Printf("initial cost=%.2f vertices=%d nets=%d grid=%dx%d",
		startCost, s.VertexCount(), s.NetCount(), s.Width(), s.Height())

	start := time.Now()
	res, err := schedule.Anneal(s, schedule.AnnealConfig{
		InitialTemperature:   *t0,
		Iterations:           *iterations,
		StepsPerIteration:    *stepsPerIter,
		DistanceLimit:        *distanceLimit,
		Schedule:             schedule.Geometric(*coolingRatio),
		ConvergenceWindow:    5,
		ConvergenceThreshold: 1e-9,
		Metrics:              metrics,
	})
	if err != nil {
		log.Fatalf("anneal: %v", err)
	}
	elapsed := time.Since(start)

	log.Printf("final cost=%.2f (was %.2f) iterations=%d converged=%v elapsed=%v",
		res.FinalCost, startCost, res.Iterations, res.Converged, elapsed)

	if *metricsAddr != "" {
		// Keep serving /metrics so a scraper can pull the last observation.
		log.Printf("serving final metrics at %s; press Ctrl+C to exit", *metricsAddr)
		<-context.Background().Done()
	}
}

func netTotalCost(s *placement.State) float64 {
	var total float64
	for i := 0; i < s.NetCount(); i++ {
		total += s.GetNetCostByIndex(i)
	}
	return total
}
