package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numChannels  = 20
	numUsers     = 200
)

var guesses = []string{"granite", "basalt", "obsidian", "pumice", "marble", "slate", "gneiss", "andesite"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Rockbot Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Channels: %d | Users: %d\n\n", numChannels, numUsers)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: open rounds everywhere
	fmt.Println("\n--- Phase 1: Starting rounds (POST /channels/:channel/round) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doRound(rng)
	})

	// Phase 2: game traffic
	fmt.Println("\n--- Phase 2: Game load (60% answer, 20% round, 10% hint, 10% quit) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doAnswer(rng)
		case r < 0.80:
			return doRound(rng)
		case r < 0.90:
			return doHint(rng)
		default:
			return doQuit(rng)
		}
	})

	// Phase 3: read-heavy
	fmt.Println("\n--- Phase 3: Read-heavy load (20% answer, 40% stats, 40% leaderboard) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doAnswer(rng)
		case r < 0.60:
			return doUserStats(rng)
		default:
			return doLeaderboard(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func channel(rng *rand.Rand) string {
	return fmt.Sprintf("ch_%d", rng.Intn(numChannels))
}

func user(rng *rand.Rand) string {
	return fmt.Sprintf("user_%d", rng.Intn(numUsers))
}

// call issues one request. Statuses listed in ok are not counted as errors.
func call(endpoint, method, url string, body []byte, ok ...int) result {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, !slices.Contains(ok, resp.StatusCode)}
}

func doRound(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/channels/%s/round", baseURL, channel(rng))
	return call("POST /round", http.MethodPost, url, nil, http.StatusOK)
}

func doAnswer(rng *rand.Rand) result {
	data, _ := json.Marshal(map[string]string{
		"user_id": user(rng),
		"guess":   guesses[rng.Intn(len(guesses))],
	})
	url := fmt.Sprintf("%s/channels/%s/answer", baseURL, channel(rng))
	return call("POST /answer", http.MethodPost, url, data, http.StatusOK, http.StatusNotFound)
}

func doHint(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/channels/%s/hint", baseURL, channel(rng))
	return call("GET /hint", http.MethodGet, url, nil, http.StatusOK, http.StatusNotFound)
}

func doQuit(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/channels/%s/quit", baseURL, channel(rng))
	return call("POST /quit", http.MethodPost, url, nil, http.StatusOK, http.StatusNotFound)
}

func doUserStats(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/users/%s/stats", baseURL, user(rng))
	return call("GET /users/stats", http.MethodGet, url, nil, http.StatusOK, http.StatusNotFound)
}

var modes = []string{"correct", "acc", "streak"}

func doLeaderboard(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/leaderboard?mode=%s", baseURL, modes[rng.Intn(len(modes))])
	return call("GET /leaderboard", http.MethodGet, url, nil, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
