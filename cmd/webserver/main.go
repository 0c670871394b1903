package main

import (
	"fmt"
	"os"

	"github.com/cileamzh/cileamzh-web/request"
	"github.com/cileamzh/cileamzh-web/response"
	"github.com/cileamzh/cileamzh-web/server"
)

func main() {
	srv, err := server.New(":8080")
	if err != nil {
		fmt.Fprintf(os.Stderr, "webserver: %v\n", err)
		os.Exit(1)
	}

	srv.AddMiddleware(server.LoggingMiddleware(srv.Logger))
	srv.AddMiddleware(server.RequestIDMiddleware())
	srv.AddMiddleware(server.ServerHeaderMiddleware("cileamzh-web"))

	srv.AddGet("/home", handleHome)
	srv.AddPost("/echo", handleEcho)
	srv.AddGet("/metrics", func(req *request.Request, res *response.Response) {
		snap := srv.Metrics.Snapshot()
		res.JSON(fmt.Sprintf(
			`{"connections":%d,"requests":%d,"route_hits":%d,"static_hits":%d,"not_found":%d,"malformed":%d,"bytes_written":%d,"avg_latency_ms":%d}`,
			snap.ConnectionsTotal,
			snap.RequestsTotal,
			snap.RouteHits,
			snap.StaticHits,
			snap.NotFound,
			snap.MalformedRequests,
			snap.BytesWritten,
			snap.AverageLatency.Milliseconds(),
		))
	})

	srv.AddStaticDir("/static", "./public")

	fmt.Printf("Listening on %s\n", srv.Addr())
	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "webserver: %v\n", err)
		os.Exit(1)
	}
}

func handleHome(req *request.Request, res *response.Response) {
	res.HTML("<h1>Welcome home!</h1>")
}

func handleEcho(req *request.Request, res *response.Response) {
	res.Text("You sent: " + req.Body)
}
