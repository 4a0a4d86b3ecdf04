package main

import (
	"fmt"
	"log"
	"net/http"
)

// Stands in for an InfluxDB instance during manual testing. Run it, point
// [influxdb] url at :8086 and watch the monitor's /metrics output.
func main() {
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Received request: %s %s", r.Method, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": "pass", "name": "influxdb", "message": "ready for queries and writes"}`)
	})

	log.Println("Stub InfluxDB starting on :8086")
	if err := http.ListenAndServe(":8086", nil); err != nil {
		log.Fatal(err)
	}
}
