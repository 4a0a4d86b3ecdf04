package probe

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const databaseTimeout = 10 * time.Second

// DatabaseProbe checks the InfluxDB /health endpoint over HTTP.
type DatabaseProbe struct {
	url    string
	client *http.Client
}

func NewDatabaseProbe(url string) *DatabaseProbe {
	return &DatabaseProbe{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Timeout: databaseTimeout},
	}
}

func (p *DatabaseProbe) Name() string {
	return "database"
}

// Check issues a GET against the health endpoint. A 200 is healthy with the
// observed response time; any other status is unhealthy; transport faults
// and timeouts become error results.
func (p *DatabaseProbe) Check(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url+"/health", nil)
	if err != nil {
		return Errorf("build health request: %v", err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return Error(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unhealthy(map[string]any{"status_code": resp.StatusCode})
	}

	return Healthy(map[string]any{"response_time": time.Since(start).Seconds()})
}
