package main

import (
	"fmt"
	"net"

	"github.com/cileamzh/cileamzh-web/request"
	"github.com/cileamzh/cileamzh-web/response"
	"github.com/cileamzh/cileamzh-web/server"
)

func main() {
	listener, err := net.Listen("tcp", ":42069")
	if err != nil {
		return
	}
	defer listener.Close()
	fmt.Println("Listening on port 42069...")

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	raw, err := server.ReadRequestText(conn)
	if err != nil {
		fmt.Println("failed to read request:", err)
		return
	}

	req, err := request.Parse(raw)
	if err != nil {
		fmt.Println("failed to parse request:", err)
		return
	}

	fmt.Println("Request Line")
	fmt.Printf("Method: %s\n", req.Method)
	fmt.Printf("Path: %s\n", req.Path)
	fmt.Printf("Query: %s\n", req.Query)
	fmt.Printf("Version: %s\n", req.Version)

	fmt.Println("Headers")
	for key, value := range req.Headers {
		fmt.Printf("%s: %s\n", key, value)
	}

	fmt.Println("Body")
	fmt.Println(req.Body)

	res := response.New()
	res.Text("Hello from your HTTP server!\n")
	res.SetHeader("Connection", "close")
	conn.Write(res.Serialize())
}
