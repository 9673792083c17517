package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// -------------------- 统计 --------------------

type APITestStats struct {
	mu        sync.Mutex
	latencies map[string][]time.Duration
	failures  map[string]int
}

func NewAPITestStats() *APITestStats {
	return &APITestStats{
		latencies: make(map[string][]time.Duration),
		failures:  make(map[string]int),
	}
}

func (s *APITestStats) Add(endpoint string, success bool, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if success {
		s.latencies[endpoint] = append(s.latencies[endpoint], latency)
	} else {
		s.failures[endpoint]++
	}
}

// Summary 单个接口的汇总结果
type Summary struct {
	Endpoint string
	Success  int
	Failed   int
	Average  time.Duration
	P95      time.Duration
	Max      time.Duration
}

func (s *APITestStats) Summaries() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for ep := range s.latencies {
		seen[ep] = true
	}
	for ep := range s.failures {
		seen[ep] = true
	}

	out := make([]Summary, 0, len(seen))
	for ep := range seen {
		lat := append([]time.Duration(nil), s.latencies[ep]...)
		sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })
		sum := Summary{Endpoint: ep, Success: len(lat), Failed: s.failures[ep]}
		if len(lat) > 0 {
			var total time.Duration
			for _, l := range lat {
				total += l
			}
			sum.Average = total / time.Duration(len(lat))
			sum.P95 = lat[(len(lat)*95-1)/100]
			sum.Max = lat[len(lat)-1]
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out
}

// -------------------- HTTP --------------------

type client struct {
	base  string
	http  *http.Client
	stats *APITestStats
}

// call 发送请求并记录延迟，响应码不等于 want 视为失败
func (c *client) call(method, path, label string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	lat := time.Since(start)
	if err != nil {
		c.stats.Add(label, false, lat)
		return err
	}
	defer resp.Body.Close()

	ok := resp.StatusCode == want
	c.stats.Add(label, ok, lat)
	if !ok {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// -------------------- 场景 --------------------

// scenario 两个新用户互加好友后互发消息并拉取会话
func scenario(c *client, rounds int) error {
	var ids [2]uint
	for i := range ids {
		tag := uuid.NewString()
		var reg struct {
			UserID uint `json:"user_id"`
		}
		err := c.call(http.MethodPost, "/users", "POST /users", map[string]string{
			"name":     "bench-" + tag[:8],
			"email":    tag + "@bench.local",
			"password": "bench-password",
		}, http.StatusCreated, &reg)
		if err != nil {
			return err
		}
		ids[i] = reg.UserID
	}
	a, b := ids[0], ids[1]

	pair := map[string]uint{"user_id": a, "friend_id": b}
	if err := c.call(http.MethodPost, "/friend-request", "POST /friend-request", pair, http.StatusCreated, nil); err != nil {
		return err
	}
	accept := map[string]uint{"user_id": b, "friend_id": a}
	if err := c.call(http.MethodPost, "/friend-request/accept", "POST /friend-request/accept", accept, http.StatusOK, nil); err != nil {
		return err
	}

	for i := 0; i < rounds; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		msg := map[string]interface{}{"sender_id": from, "receiver_id": to, "message": fmt.Sprintf("bench message %d", i)}
		if err := c.call(http.MethodPost, "/messages", "POST /messages", msg, http.StatusCreated, nil); err != nil {
			return err
		}
		if err := c.call(http.MethodGet, fmt.Sprintf("/messages/%d/%d", a, b), "GET /messages/:userId/:friendId", nil, http.StatusOK, nil); err != nil {
			return err
		}
	}
	return c.call(http.MethodGet, fmt.Sprintf("/friends/%d", a), "GET /friends/:userId", nil, http.StatusOK, nil)
}

// -------------------- 入口 --------------------

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	concurrency := flag.Int("c", 5, "concurrent scenarios")
	rounds := flag.Int("n", 10, "messages per scenario")
	flag.Parse()

	fmt.Println("=== Poco 后端并发测试 ===")
	fmt.Printf("开始时间: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("目标: %s 并发: %d 每场景消息: %d\n", *base, *concurrency, *rounds)

	c := &client{
		base:  *base,
		http:  &http.Client{Timeout: 8 * time.Second},
		stats: NewAPITestStats(),
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []error
	)
	start := time.Now()
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := scenario(c, *rounds); err != nil {
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	took := time.Since(start)

	fmt.Println("\n=== 测试结果 ===")
	fmt.Printf("耗时: %v\n", took)
	total := 0
	for _, s := range c.stats.Summaries() {
		total += s.Success
		fmt.Printf("%-34s 成功: %5d 失败: %4d 平均: %10v P95: %10v 最大: %10v\n",
			s.Endpoint, s.Success, s.Failed, s.Average, s.P95, s.Max)
	}
	if took > 0 {
		fmt.Printf("QPS: %.2f\n", float64(total)/took.Seconds())
	}
	for _, err := range failed {
		fmt.Println("场景失败:", err)
	}
	if len(failed) > 0 {
		os.Exit(1)
	}
}
