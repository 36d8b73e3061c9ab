package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 20
	testDuration = 10 * time.Second
)

// Each created record needs its own calendar day, so dates are handed out
// from a single counter walking backwards from this anchor.
var (
	anchorDate = time.Date(1990, 1, 1, 12, 0, 0, 0, time.UTC)
	dayCounter atomic.Int64
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

var sampleEntries = []string{
	"Spent the whole morning in the garden and it felt great.",
	"Work was stressful, three deadlines landed on the same day.",
	"Quiet evening with a book and tea.",
	"Had a long call with an old friend, we laughed a lot.",
	"Could not sleep, too many thoughts about the move.",
	"Finally finished the painting I started last month.",
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

// createdIDs collects record ids from POST responses for updates and deletes.
var (
	idsMu      sync.Mutex
	createdIDs []string
)

func main() {
	fmt.Println("=== SDD Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

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

	// Phase 1: Seed records
	fmt.Println("\n--- Phase 1: Seeding records (POST /diary) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doCreate(rng)
	})

	// Give the analysis tasks a moment to merge
	fmt.Println("\nWaiting 2s for background analysis...")
	time.Sleep(2 * time.Second)

	// Phase 2: Mixed load
	fmt.Println("\n--- Phase 2: Mixed load (40% write, 60% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.25:
			return doCreate(rng)
		case r < 0.35:
			return doUpdate(rng)
		case r < 0.40:
			return doDelete(rng)
		case r < 0.75:
			return doList()
		case r < 0.90:
			return doStatistics(rng)
		default:
			return doHealth()
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (5% write, 95% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doCreate(rng)
		case r < 0.60:
			return doList()
		case r < 0.90:
			return doStatistics(rng)
		default:
			return doHealth()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
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
					results <- workFn(rng)
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

func nextDate() string {
	offset := dayCounter.Add(1)
	return anchorDate.AddDate(0, 0, -int(offset)).Format(time.RFC3339)
}

func doCreate(rng *rand.Rand) result {
	body := map[string]string{
		"content": sampleEntries[rng.Intn(len(sampleEntries))],
		"date":    nextDate(),
	}
	if rng.Float64() < 0.5 {
		body["title"] = fmt.Sprintf("Entry #%d", dayCounter.Load())
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/diary", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /diary", 0, lat, true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == 201 {
		var created struct {
			ID string `json:"id"`
		}
		if json.NewDecoder(resp.Body).Decode(&created) == nil && created.ID != "" {
			idsMu.Lock()
			createdIDs = append(createdIDs, created.ID)
			idsMu.Unlock()
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return result{"POST /diary", resp.StatusCode, lat, resp.StatusCode != 201}
}

func randomID(rng *rand.Rand) (string, bool) {
	idsMu.Lock()
	defer idsMu.Unlock()
	if len(createdIDs) == 0 {
		return "", false
	}
	return createdIDs[rng.Intn(len(createdIDs))], true
}

func doUpdate(rng *rand.Rand) result {
	id, ok := randomID(rng)
	if !ok {
		return doCreate(rng)
	}

	body := map[string]string{
		"id":      id,
		"content": "Edited: " + sampleEntries[rng.Intn(len(sampleEntries))],
		"date":    nextDate(),
	}
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, baseURL+"/diary", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"PUT /diary", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"PUT /diary", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doDelete(rng *rand.Rand) result {
	id, ok := func() (string, bool) {
		idsMu.Lock()
		defer idsMu.Unlock()
		if len(createdIDs) == 0 {
			return "", false
		}
		// Take the last id so updates mostly hit records that still exist.
		id := createdIDs[len(createdIDs)-1]
		createdIDs = createdIDs[:len(createdIDs)-1]
		return id, true
	}()
	if !ok {
		return doCreate(rng)
	}

	req, _ := http.NewRequest(http.MethodDelete, baseURL+"/diary?id="+id, nil)
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"DELETE /diary", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"DELETE /diary", resp.StatusCode, lat, resp.StatusCode != 204}
}

func doList() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/list")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /list", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /list", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doStatistics(rng *rand.Rand) result {
	to := anchorDate.AddDate(0, 0, -rng.Intn(30))
	from := to.AddDate(0, 0, -rng.Intn(365))
	url := fmt.Sprintf("%s/statistics?from=%s&to=%s",
		baseURL, from.Format("2006-01-02"), to.Format("2006-01-02"))

	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /statistics", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /statistics", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doHealth() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/health")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /health", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /health", resp.StatusCode, lat, resp.StatusCode != 200}
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
		return fmt.Sprintf("%dµs", d.Microseconds())
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
